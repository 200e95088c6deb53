package alert_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/export"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
)

// ────────────────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────────────────

type fakeNotifier struct {
	mu    sync.Mutex
	calls [][]dto.LowStockProductDTO
	err   error
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, items []dto.LowStockProductDTO) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, items)
	return f.err
}

func addProduct(t *testing.T, store *memory.Store, sku string, qty, minLevel int, deleted bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: uuid.New().String(), Name: "Prod " + sku, SKU: sku, Unit: "pcs",
		Quantity: qty, MinOrderLevel: minLevel, Deleted: deleted,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func seeded(t *testing.T) *memory.Store {
	store := memory.NewStore()
	addProduct(t, store, "B", 3, 5, false)
	addProduct(t, store, "A", 3, 8, false)
	addProduct(t, store, "C", 0, 2, false)
	addProduct(t, store, "D", 10, 20, false) // igual al umbral: no entra
	addProduct(t, store, "E", 1, 5, true)    // eliminado: no entra
	return store
}

// ────────────────────────────────────────────────────────────────────────────
// Reporte
// ────────────────────────────────────────────────────────────────────────────

func TestProductsBelowThreshold_EstrictoYOrdenado(t *testing.T) {
	uc := alert.NewAlertUseCase(seeded(t).Products(), nil, 0, nil)

	report, err := uc.ProductsBelowThreshold(context.Background(), 10)
	require.NoError(t, err)

	require.Equal(t, 3, report.Count)
	skus := []string{report.Items[0].SKU, report.Items[1].SKU, report.Items[2].SKU}
	assert.Equal(t, []string{"C", "A", "B"}, skus, "por cantidad ascendente y luego SKU")
	assert.Equal(t, 5, report.Items[1].Deficit)
	assert.Equal(t, 10, report.Threshold)
	assert.Equal(t, alert.DefaultThreshold, uc.DefaultThreshold())
}

func TestProductsBelowThreshold_UmbralNegativo(t *testing.T) {
	uc := alert.NewAlertUseCase(memory.NewStore().Products(), nil, 0, nil)
	_, err := uc.ProductsBelowThreshold(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	report, err := uc.ProductsBelowThreshold(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, report.Items, "umbral 0 nunca incluye productos")
}

func TestExport_CSVConNombreConFecha(t *testing.T) {
	uc := alert.NewAlertUseCase(seeded(t).Products(), nil, 10, nil, export.NewCSVExporter(), export.NewXLSXExporter())

	file, err := uc.Export(context.Background(), 10, "", alert.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "low_stock_report_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	assert.Len(t, lines, 4, "encabezado + 3 productos")

	xlsx, err := uc.Export(context.Background(), 10, "XLSX", alert.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Data, []byte("PK")), "xlsx es un zip")

	_, err = uc.Export(context.Background(), 10, "docx", alert.ExportOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 1, 31, 7, 5, 9, 0, time.UTC)
	assert.Equal(t, "low_stock_report_20260131_070509.csv", alert.ReportFilename(at, "csv"))
}

// ────────────────────────────────────────────────────────────────────────────
// Avisos
// ────────────────────────────────────────────────────────────────────────────

func TestCheckProduct_AvisaSoloBajoMinimo(t *testing.T) {
	store := memory.NewStore()
	low := addProduct(t, store, "L", 2, 5, false)
	ok := addProduct(t, store, "O", 9, 5, false)
	n := &fakeNotifier{}
	uc := alert.NewAlertUseCase(store.Products(), n, 10, nil)

	sent, err := uc.CheckProduct(context.Background(), low.ID)
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = uc.CheckProduct(context.Background(), ok.ID)
	require.NoError(t, err)
	assert.False(t, sent)

	require.Len(t, n.calls, 1)
	assert.Equal(t, "L", n.calls[0][0].SKU)
}

func TestScanBelowMinOrderLevel_UnSoloAviso(t *testing.T) {
	n := &fakeNotifier{}
	uc := alert.NewAlertUseCase(seeded(t).Products(), n, 10, nil)

	count, err := uc.ScanBelowMinOrderLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count, "A, B, C y D están bajo su mínimo")
	require.Len(t, n.calls, 1)
	assert.Len(t, n.calls[0], 4)
}

func TestStockChanged_RevisionEnLinea(t *testing.T) {
	store := memory.NewStore()
	p := addProduct(t, store, "S", 1, 5, false)
	n := &fakeNotifier{err: errors.New("telegram caído")}
	uc := alert.NewAlertUseCase(store.Products(), n, 10, nil)

	uc.StockChanged(context.Background(), inventory.StockChange{ProductID: p.ID, NewQuantity: 8, MinOrderLevel: 5})
	assert.Empty(t, n.calls, "sobre el mínimo no avisa")

	// El error del notificador solo se registra
	uc.StockChanged(context.Background(), inventory.StockChange{ProductID: p.ID, NewQuantity: 1, MinOrderLevel: 5})
	assert.Len(t, n.calls, 1)
}

func TestMultiNotifier_JuntaErrores(t *testing.T) {
	okN := &fakeNotifier{}
	badN := &fakeNotifier{err: errors.New("falla")}
	err := alert.MultiNotifier{badN, nil, okN}.NotifyLowStock(context.Background(), []dto.LowStockProductDTO{{SKU: "X"}})
	assert.Error(t, err)
	assert.Len(t, okN.calls, 1, "los demás notificadores igual reciben el aviso")
}
