package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
)

const sheetName = "Low stock"

var _ alert.ReportExporter = (*XLSXExporter)(nil)

// XLSXExporter reporte en planilla Excel con números como celdas numéricas.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() string { return "xlsx" }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Write arma la hoja con encabezado en negrita y una fila por producto.
func (e *XLSXExporter) Write(w io.Writer, report dto.LowStockReportDTO, _ alert.ExportOptions) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]interface{}, 0, len(Header))
	for _, h := range Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, it := range report.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		values := []interface{}{it.SKU, it.Name, it.CurrentQuantity, it.MinOrderLevel, it.Unit, it.Deficit}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %s: %w", it.SKU, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "A", 16)
	_ = f.SetColWidth(sheetName, "B", "B", 36)
	_ = f.SetColWidth(sheetName, "C", "F", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}
