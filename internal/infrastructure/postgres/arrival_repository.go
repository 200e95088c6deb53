package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.ArrivalRepository = (*ArrivalRepo)(nil)

// ArrivalRepo adaptador de llegadas sobre PostgreSQL (pool o tx).
type ArrivalRepo struct {
	q Querier
}

// NewArrivalRepository construye el adaptador.
func NewArrivalRepository(q Querier) *ArrivalRepo {
	return &ArrivalRepo{q: q}
}

// Create inserta la llegada.
func (r *ArrivalRepo) Create(ctx context.Context, a *entity.ProductArrival) error {
	query := `
		INSERT INTO product_arrivals (id, product_id, quantity, source, arrival_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.ProductID, a.Quantity, a.Source, a.ArrivalDate, a.CreatedBy); err != nil {
		return fmt.Errorf("insert arrival: %w", err)
	}
	return nil
}

// ListByProduct llegadas del producto, más recientes primero.
func (r *ArrivalRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductArrival, error) {
	query := `
		SELECT id, product_id, quantity, source, arrival_date, created_by
		FROM product_arrivals WHERE product_id = $1 ORDER BY arrival_date DESC, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list arrivals: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductArrival
	for rows.Next() {
		var a entity.ProductArrival
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Quantity, &a.Source, &a.ArrivalDate, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan arrival: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
