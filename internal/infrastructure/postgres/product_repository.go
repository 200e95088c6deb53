package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, description, unit, min_order_level, unit_price, quantity, deleted, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.SKU, product.Description, product.Unit,
		product.MinOrderLevel, product.UnitPrice, product.Quantity, product.Deleted,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluye eliminados).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando la fila. Solo tiene sentido dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU (incluye eliminados: el SKU sigue reservado).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo. No modifica quantity ni deleted (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, description = $4, unit = $5, min_order_level = $6, unit_price = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.SKU, product.Description, product.Unit,
		product.MinOrderLevel, product.UnitPrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible (usado por llegadas y correcciones).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el producto como eliminado.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista los productos no eliminados ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products",
		`SELECT `+productColumns+` FROM products WHERE NOT deleted ORDER BY name, sku`)
}

// ListBelowThreshold productos activos con quantity estrictamente menor al umbral.
func (r *ProductRepo) ListBelowThreshold(ctx context.Context, threshold int) ([]*entity.Product, error) {
	return r.list(ctx, "list products below threshold",
		`SELECT `+productColumns+` FROM products WHERE NOT deleted AND quantity < $1 ORDER BY quantity, sku`,
		threshold)
}

// ListBelowMinOrderLevel productos activos por debajo de su nivel mínimo de pedido.
func (r *ProductRepo) ListBelowMinOrderLevel(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products below min order level",
		`SELECT `+productColumns+` FROM products WHERE NOT deleted AND quantity < min_order_level ORDER BY quantity, sku`)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.Unit, &p.MinOrderLevel,
			&p.UnitPrice, &p.Quantity, &p.Deleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// scanProduct devuelve (nil, nil) si no hay fila.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.Unit, &p.MinOrderLevel,
		&p.UnitPrice, &p.Quantity, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
