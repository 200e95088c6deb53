// Package catalog lee catálogos de productos desde CSV o XLSX para la carga inicial.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bodega/internal/application/dto"
)

// Columns columnas reconocidas (la fila de encabezado puede traerlas en cualquier orden).
// sku, name y unit son obligatorias.
var Columns = []string{"sku", "name", "unit", "min_order_level", "unit_price", "quantity", "description"}

// RowError fila que no se pudo interpretar. Line es la línea del archivo donde empieza.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// ReadCSV lee un catálogo CSV. charset "" o utf-8; latin1/windows-1252 para archivos guardados desde Excel.
func ReadCSV(r io.Reader, charset string) ([]dto.CreateProductRequest, []RowError, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "iso-8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer CSV: %w", err)
		}
		// línea del archivo donde empieza el registro (un campo entre comillas puede ocupar varias)
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return parseRows(records, lines)
}

// ReadXLSX lee la primera hoja de un libro XLSX.
func ReadXLSX(r io.Reader) ([]dto.CreateProductRequest, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}
	return parseRows(rows, lines)
}

// parseRows interpreta las filas; lines[i] es la línea del archivo donde empieza rows[i].
func parseRows(rows [][]string, lines []int) ([]dto.CreateProductRequest, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío")
	}
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"sku", "name", "unit"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var (
		out  []dto.CreateProductRequest
		errs []RowError
	)
	for n, row := range rows[1:] {
		line := lines[n+1]
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if get("sku") == "" && get("name") == "" {
			continue
		}
		p := dto.CreateProductRequest{
			SKU:         get("sku"),
			Name:        get("name"),
			Unit:        get("unit"),
			Description: get("description"),
		}
		var err error
		if p.MinOrderLevel, err = atoiDefault(get("min_order_level")); err != nil {
			errs = append(errs, RowError{Line: line, Err: fmt.Errorf("min_order_level: %w", err)})
			continue
		}
		if p.Quantity, err = atoiDefault(get("quantity")); err != nil {
			errs = append(errs, RowError{Line: line, Err: fmt.Errorf("quantity: %w", err)})
			continue
		}
		if raw := get("unit_price"); raw != "" {
			price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
			if err != nil {
				errs = append(errs, RowError{Line: line, Err: fmt.Errorf("unit_price: %w", err)})
				continue
			}
			p.UnitPrice = &price
		}
		out = append(out, p)
	}
	return out, errs, nil
}

func atoiDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
