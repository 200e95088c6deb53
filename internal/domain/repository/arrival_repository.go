package repository

import (
	"context"

	"github.com/jhoicas/bodega/internal/domain/entity"
)

// ArrivalRepository puerto de persistencia para llegadas de mercancía.
type ArrivalRepository interface {
	Create(ctx context.Context, arrival *entity.ProductArrival) error
	// ListByProduct devuelve las llegadas del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductArrival, error)
}
