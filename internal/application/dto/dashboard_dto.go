package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ActiveProducts    int             `json:"active_products"`
	TotalUnits        int64           `json:"total_units"`
	StockValue        decimal.Decimal `json:"stock_value"` // Σ quantity × unit_price
	BelowMinLevel     int             `json:"below_min_level"`
	ArrivalsToday     int             `json:"arrivals_today"`
	CorrectionsToday  int             `json:"corrections_today"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	BelowThreshold    int             `json:"below_threshold"`
	GeneratedAt       time.Time       `json:"generated_at"`
}
