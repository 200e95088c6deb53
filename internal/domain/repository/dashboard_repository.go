package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals agregados del inventario activo.
type StockTotals struct {
	ActiveProducts int
	TotalUnits     int64
	StockValue     decimal.Decimal // Σ quantity × unit_price (productos sin precio suman 0)
	BelowMinLevel  int
}

// DashboardRepository consultas de lectura para el resumen del dashboard.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)
	// CountArrivalsSince cuenta llegadas con arrival_date >= since.
	CountArrivalsSince(ctx context.Context, since time.Time) (int, error)
	// CountCorrectionsSince cuenta correcciones con correction_date >= since.
	CountCorrectionsSince(ctx context.Context, since time.Time) (int, error)
}
