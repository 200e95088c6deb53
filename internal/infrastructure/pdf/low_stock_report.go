// Package pdf genera el reporte de stock bajo en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + umbral       │  fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cant. | Mín. | Unidad | Déficit     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
)

var _ alert.ReportExporter = (*LowStockPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Exporter ──────────────────────────────────────────────────────────────────

// LowStockPDF implementa alert.ReportExporter.
type LowStockPDF struct {
	title string
}

// NewLowStockPDF construye el exportador; title aparece en el encabezado.
func NewLowStockPDF(title string) *LowStockPDF {
	if title == "" {
		title = "Reporte de stock bajo"
	}
	return &LowStockPDF{title: title}
}

func (g *LowStockPDF) Format() string      { return "pdf" }
func (g *LowStockPDF) ContentType() string { return "application/pdf" }
func (g *LowStockPDF) Extension() string   { return "pdf" }

// Write genera el documento y lo escribe en w. Las opciones de charset no aplican.
func (g *LowStockPDF) Write(w io.Writer, report dto.LowStockReportDTO, _ alert.ExportOptions) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report dto.LowStockReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Productos con cantidad menor a %d", report.Threshold), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow cabecera con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Unidad", 1, align.Center),
		h("Déficit", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(items []dto.LowStockProductDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		deficitColor := colorGray
		if it.Deficit > 0 {
			deficitColor = colorAlert
		}
		cell := func(value string, size int, a align.Type, c *props.Color) core.Col {
			return col.New(size).Add(text.New(value, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
			}))
		}
		r := row.New(7).Add(
			cell(it.SKU, 2, align.Left, nil),
			cell(it.Name, 4, align.Left, nil),
			cell(strconv.Itoa(it.CurrentQuantity), 2, align.Right, nil),
			cell(strconv.Itoa(it.MinOrderLevel), 1, align.Right, nil),
			cell(it.Unit, 1, align.Center, nil),
			cell(strconv.Itoa(it.Deficit), 2, align.Right, deficitColor),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	if len(result) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("Sin productos por debajo del umbral.", props.Text{Size: 9, Top: 2, Align: align.Center, Color: colorGray}),
		)))
	}
	return result
}

func footerRow(report dto.LowStockReportDTO) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Total de productos: %d", report.Count), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}
