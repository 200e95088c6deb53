package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var (
	_ repository.ArrivalRepository    = (*ArrivalRepo)(nil)
	_ repository.CorrectionRepository = (*CorrectionRepo)(nil)
)

// ArrivalRepo llegadas en memoria.
type ArrivalRepo struct {
	s    *Store
	inTx bool
}

// Create agrega una copia de la llegada.
func (r *ArrivalRepo) Create(_ context.Context, a *entity.ProductArrival) error {
	r.s.do(r.inTx, func() {
		cp := *a
		r.s.arrivals = append(r.s.arrivals, &cp)
	})
	return nil
}

// ListByProduct llegadas del producto, más recientes primero.
func (r *ArrivalRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductArrival, error) {
	var out []*entity.ProductArrival
	r.s.do(r.inTx, func() {
		for _, a := range r.s.arrivals {
			if a.ProductID == productID {
				cp := *a
				out = append(out, &cp)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ArrivalDate.Equal(out[j].ArrivalDate) {
			return out[i].ArrivalDate.After(out[j].ArrivalDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CorrectionRepo correcciones en memoria.
type CorrectionRepo struct {
	s    *Store
	inTx bool
}

// Create agrega una copia de la corrección.
func (r *CorrectionRepo) Create(_ context.Context, c *entity.StockCorrection) error {
	r.s.do(r.inTx, func() {
		cp := *c
		r.s.corrections = append(r.s.corrections, &cp)
	})
	return nil
}

// ListByProduct correcciones del producto, más recientes primero.
func (r *CorrectionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockCorrection, error) {
	var out []*entity.StockCorrection
	r.s.do(r.inTx, func() {
		for _, c := range r.s.corrections {
			if c.ProductID == productID {
				cp := *c
				out = append(out, &cp)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CorrectionDate.Equal(out[j].CorrectionDate) {
			return out[i].CorrectionDate.After(out[j].CorrectionDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
