package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/inventory"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
)

func newProductRequest(sku, name string) dto.CreateProductRequest {
	price := decimal.RequireFromString("12.50")
	return dto.CreateProductRequest{
		Name: name, SKU: sku, Unit: "pcs", MinOrderLevel: 5, UnitPrice: &price, Quantity: 3,
	}
}

func TestProductUseCase_CreateYGet(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, newProductRequest(" TOR-01 ", "Tornillo"))
	require.NoError(t, err)
	assert.Equal(t, "TOR-01", created.SKU, "el SKU se guarda sin espacios")
	assert.Equal(t, 3, created.Quantity)
	require.NotNil(t, created.UnitPrice)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*created.UnitPrice))

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", got.Name)
}

func TestProductUseCase_CantidadSobreMaximo(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	in := newProductRequest("MAX-1", "Arandela")
	in.Quantity = inventory.MaxQuantity + 1
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newProductRequest("MAX-2", "Arandela")
	in.MinOrderLevel = inventory.MaxQuantity + 1
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	first, err := uc.Create(ctx, newProductRequest("DUP-1", "Uno"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, newProductRequest("DUP-1", "Dos"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El SKU sigue reservado aunque el producto se elimine
	require.NoError(t, uc.SoftDelete(ctx, first.ID))
	_, err = uc.Create(ctx, newProductRequest("DUP-1", "Tres"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_ValidaCampos(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	in := newProductRequest("V-1", "  ")
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newProductRequest("V-1", "Valido")
	in.MinOrderLevel = -1
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newProductRequest("V-1", "Valido")
	neg := decimal.NewFromInt(-1)
	in.UnitPrice = &neg
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newProductRequest("V-1", "Valido")
	in.Quantity = -2
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateConservaCantidad(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, newProductRequest("UP-1", "Original"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, newProductRequest("UP-2", "Otro"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name: "Renombrado", SKU: "UP-1B", Unit: "caja", MinOrderLevel: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)
	assert.Equal(t, 3, updated.Quantity, "la cantidad no se modifica por Update")
	assert.Nil(t, updated.UnitPrice, "sin precio el campo queda nulo")

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: "X", SKU: "UP-2", Unit: "pcs"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, uuid.New().String(), dto.UpdateProductRequest{Name: "X", SKU: "UP-9", Unit: "pcs"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_SoftDeleteOcultaProducto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	b, err := uc.Create(ctx, newProductRequest("B", "Beta"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, newProductRequest("A", "Alfa"))
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(ctx, b.ID))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Alfa", list.Items[0].Name)

	_, err = uc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.SoftDelete(ctx, b.ID), domain.ErrNotFound, "eliminar dos veces responde no encontrado")

	raw, err := store.Products().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, raw.Deleted, "la fila se conserva marcada como eliminada")
}

func TestProductUseCase_ListOrdenadoPorNombre(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()
	for i, name := range []string{"Cinta", "Alambre", "Brocha"} {
		_, err := uc.Create(ctx, newProductRequest(string(rune('X'+i)), name))
		require.NoError(t, err)
	}
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, []string{"Alambre", "Brocha", "Cinta"},
		[]string{list.Items[0].Name, list.Items[1].Name, list.Items[2].Name})
}

func TestHistoryUseCase_LineaDeTiempo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	p := &entity.Product{ID: uuid.New().String(), Name: "Guantes", SKU: "G-1", Unit: "par", Quantity: 10}
	require.NoError(t, store.Products().Create(ctx, p))

	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Arrivals().Create(ctx, &entity.ProductArrival{
		ID: "a1", ProductID: p.ID, Quantity: 20, Source: "Proveedor", ArrivalDate: base, CreatedBy: "ana",
	}))
	require.NoError(t, store.Corrections().Create(ctx, &entity.StockCorrection{
		ID: "c1", ProductID: p.ID, Quantity: -10, Reason: "rotura", CorrectionDate: base.Add(time.Hour), CreatedBy: "luis",
	}))
	require.NoError(t, store.Arrivals().Create(ctx, &entity.ProductArrival{
		ID: "a2", ProductID: p.ID, Quantity: 5, Source: "Proveedor", ArrivalDate: base.Add(2 * time.Hour), CreatedBy: "ana",
	}))

	uc := usecase.NewHistoryUseCase(store.Products(), store.Arrivals(), store.Corrections())
	h, err := uc.ProductHistory(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, "G-1", h.Product.SKU)
	require.Len(t, h.Arrivals, 2)
	assert.Equal(t, "a2", h.Arrivals[0].ID)
	require.Len(t, h.Corrections, 1)
	require.Len(t, h.Timeline, 3)
	assert.Equal(t, []string{"a2", "c1", "a1"}, []string{h.Timeline[0].ID, h.Timeline[1].ID, h.Timeline[2].ID})
	assert.Equal(t, entity.MovementTypeCorrection, h.Timeline[1].Type)
	assert.Equal(t, -10, h.Timeline[1].Delta)
	assert.Equal(t, "rotura", h.Timeline[1].Note)

	_, err = uc.ProductHistory(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
