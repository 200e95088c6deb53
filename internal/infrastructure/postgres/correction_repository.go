package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.CorrectionRepository = (*CorrectionRepo)(nil)

// CorrectionRepo adaptador de correcciones de stock sobre PostgreSQL (pool o tx).
type CorrectionRepo struct {
	q Querier
}

// NewCorrectionRepository construye el adaptador.
func NewCorrectionRepository(q Querier) *CorrectionRepo {
	return &CorrectionRepo{q: q}
}

// Create inserta la corrección.
func (r *CorrectionRepo) Create(ctx context.Context, c *entity.StockCorrection) error {
	query := `
		INSERT INTO stock_corrections (id, product_id, quantity, reason, correction_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.ProductID, c.Quantity, c.Reason, c.CorrectionDate, c.CreatedBy); err != nil {
		return fmt.Errorf("insert correction: %w", err)
	}
	return nil
}

// ListByProduct correcciones del producto, más recientes primero.
func (r *CorrectionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockCorrection, error) {
	query := `
		SELECT id, product_id, quantity, reason, correction_date, created_by
		FROM stock_corrections WHERE product_id = $1 ORDER BY correction_date DESC, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list corrections: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCorrection
	for rows.Next() {
		var c entity.StockCorrection
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Quantity, &c.Reason, &c.CorrectionDate, &c.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
