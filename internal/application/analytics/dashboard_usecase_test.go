package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/application/analytics"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
)

func TestDashboard_GetSummary(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	price := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "P1", Name: "Uno", Unit: "pcs", Quantity: 4, MinOrderLevel: 5, UnitPrice: price("2.50")}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "P2", Name: "Dos", Unit: "pcs", Quantity: 20, MinOrderLevel: 5}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p3", SKU: "P3", Name: "Tres", Unit: "pcs", Quantity: 1, MinOrderLevel: 5, UnitPrice: price("100"), Deleted: true}))

	now := time.Now()
	require.NoError(t, store.Arrivals().Create(ctx, &entity.ProductArrival{ID: "a1", ProductID: "p1", Quantity: 1, Source: "X", ArrivalDate: now}))
	require.NoError(t, store.Arrivals().Create(ctx, &entity.ProductArrival{ID: "a2", ProductID: "p1", Quantity: 1, Source: "X", ArrivalDate: now.AddDate(0, 0, -2)}))
	require.NoError(t, store.Corrections().Create(ctx, &entity.StockCorrection{ID: "c1", ProductID: "p2", Quantity: -1, Reason: "r", CorrectionDate: now}))

	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.Products(), 10)
	s, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, s.ActiveProducts)
	assert.Equal(t, int64(24), s.TotalUnits)
	assert.True(t, decimal.RequireFromString("10").Equal(s.StockValue), "4 × 2.50; sin precio suma 0")
	assert.Equal(t, 1, s.BelowMinLevel)
	assert.Equal(t, 1, s.ArrivalsToday)
	assert.Equal(t, 1, s.CorrectionsToday)
	assert.Equal(t, 1, s.BelowThreshold)
	assert.Equal(t, 10, s.LowStockThreshold)
}
