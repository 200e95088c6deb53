package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados calculados sobre el store.
type DashboardRepo struct {
	s *Store
}

// GetStockTotals suma cantidades y valor de los productos activos.
func (r *DashboardRepo) GetStockTotals(_ context.Context) (repository.StockTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := repository.StockTotals{StockValue: decimal.Zero}
	for _, p := range r.s.products {
		if p.Deleted {
			continue
		}
		t.ActiveProducts++
		t.TotalUnits += int64(p.Quantity)
		t.StockValue = t.StockValue.Add(p.StockValue())
		if p.Quantity < p.MinOrderLevel {
			t.BelowMinLevel++
		}
	}
	return t, nil
}

// CountArrivalsSince cuenta llegadas desde since (inclusive).
func (r *DashboardRepo) CountArrivalsSince(_ context.Context, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.arrivals {
		if !a.ArrivalDate.Before(since) {
			n++
		}
	}
	return n, nil
}

// CountCorrectionsSince cuenta correcciones desde since (inclusive).
func (r *DashboardRepo) CountCorrectionsSince(_ context.Context, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.corrections {
		if !c.CorrectionDate.Before(since) {
			n++
		}
	}
	return n, nil
}
