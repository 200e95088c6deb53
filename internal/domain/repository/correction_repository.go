package repository

import (
	"context"

	"github.com/jhoicas/bodega/internal/domain/entity"
)

// CorrectionRepository puerto de persistencia para correcciones de stock.
type CorrectionRepository interface {
	Create(ctx context.Context, correction *entity.StockCorrection) error
	// ListByProduct devuelve las correcciones del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockCorrection, error)
}
