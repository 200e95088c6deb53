package repository

import (
	"context"

	"github.com/jhoicas/bodega/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID incluye productos eliminados; el use case decide si los oculta.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica los datos de catálogo; no toca Quantity ni Deleted.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	SoftDelete(ctx context.Context, id string) error
	// ListActive lista productos no eliminados ordenados por nombre.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// ListBelowThreshold productos activos con quantity < threshold, por cantidad ascendente y SKU.
	ListBelowThreshold(ctx context.Context, threshold int) ([]*entity.Product, error)
	// ListBelowMinOrderLevel productos activos con quantity < min_order_level.
	ListBelowMinOrderLevel(ctx context.Context) ([]*entity.Product, error)
}
