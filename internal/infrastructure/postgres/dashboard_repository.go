package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el resumen del inventario.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetStockTotals agrega cantidad, valor y productos bajo mínimo del inventario activo.
// Usa COALESCE para devolver cero si no hay productos.
func (r *DashboardRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                 AS active_products,
	    COALESCE(SUM(quantity), 0)                               AS total_units,
	    COALESCE(SUM(quantity * COALESCE(unit_price, 0)), 0)     AS stock_value,
	    COUNT(*) FILTER (WHERE quantity < min_order_level)       AS below_min
	FROM products
	WHERE NOT deleted`

	var t repository.StockTotals
	err := r.q.QueryRow(ctx, query).Scan(&t.ActiveProducts, &t.TotalUnits, &t.StockValue, &t.BelowMinLevel)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("dashboard.GetStockTotals: %w", err)
	}
	return t, nil
}

// CountArrivalsSince cuenta llegadas desde la fecha dada.
func (r *DashboardRepo) CountArrivalsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_arrivals WHERE arrival_date >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountArrivalsSince: %w", err)
	}
	return n, nil
}

// CountCorrectionsSince cuenta correcciones desde la fecha dada.
func (r *DashboardRepo) CountCorrectionsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_corrections WHERE correction_date >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountCorrectionsSince: %w", err)
	}
	return n, nil
}
