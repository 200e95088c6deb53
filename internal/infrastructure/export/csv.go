// Package export serializa el reporte de stock bajo en CSV y XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
)

// Header columnas del reporte, en el mismo orden para CSV y XLSX.
var Header = []string{"SKU", "Product Name", "Current Quantity", "Min Order Level", "Unit", "Deficit"}

// Charsets aceptados por el CSV.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
)

var _ alert.ReportExporter = (*CSVExporter)(nil)

// CSVExporter reporte en CSV (RFC 4180): comillas en valores con coma, comilla o salto de línea.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv" }
func (e *CSVExporter) Extension() string   { return "csv" }

// Write escribe encabezado y filas. Con charset windows-1252 los caracteres sin equivalente se reemplazan.
func (e *CSVExporter) Write(w io.Writer, report dto.LowStockReportDTO, opts alert.ExportOptions) error {
	out, closeFn, err := charsetWriter(w, opts.Charset)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, it := range report.Items {
		if err := cw.Write(Row(it)); err != nil {
			return fmt.Errorf("csv: fila %s: %w", it.SKU, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return closeFn()
}

// Row valores de una fila del reporte como texto.
func Row(it dto.LowStockProductDTO) []string {
	return []string{
		it.SKU,
		it.Name,
		strconv.Itoa(it.CurrentQuantity),
		strconv.Itoa(it.MinOrderLevel),
		it.Unit,
		strconv.Itoa(it.Deficit),
	}
}

func charsetWriter(w io.Writer, charset string) (io.Writer, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return w, func() error { return nil }, nil
	case CharsetWindows1252, "cp1252":
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		return tw, tw.Close, nil
	default:
		return nil, nil, domain.Invalid("charset", fmt.Sprintf("charset no soportado: %s", charset))
	}
}
