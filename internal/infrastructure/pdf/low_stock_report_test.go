package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/infrastructure/pdf"
)

func TestLowStockPDF_GeneraDocumento(t *testing.T) {
	report := dto.LowStockReportDTO{
		Threshold:   10,
		GeneratedAt: time.Now(),
		Count:       2,
		Items: []dto.LowStockProductDTO{
			{SKU: "A-1", Name: "Cinta aislante", CurrentQuantity: 1, MinOrderLevel: 6, Unit: "rollo", Deficit: 5},
			{SKU: "B-2", Name: "Guantes", CurrentQuantity: 4, MinOrderLevel: 2, Unit: "par", Deficit: -2},
		},
	}
	g := pdf.NewLowStockPDF("")

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, report, alert.ExportOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "application/pdf", g.ContentType())
}

func TestLowStockPDF_ReporteVacio(t *testing.T) {
	var buf bytes.Buffer
	err := pdf.NewLowStockPDF("Bodega central").Write(&buf, dto.LowStockReportDTO{Threshold: 5, GeneratedAt: time.Now()}, alert.ExportOptions{})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
