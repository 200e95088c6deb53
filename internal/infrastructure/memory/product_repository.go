package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// Create guarda una copia del producto. SKU repetido: ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	var err error
	r.s.do(r.inTx, func() {
		if r.skuTaken(product.SKU, "") {
			err = domain.ErrDuplicate
			return
		}
		cp := *product
		r.s.products[product.ID] = &cp
	})
	return err
}

// GetByID devuelve una copia o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.do(r.inTx, func() {
		if p, ok := r.s.products[id]; ok {
			cp := *p
			out = &cp
		}
	})
	return out, nil
}

// GetForUpdate igual que GetByID; el bloqueo lo da la tx del store.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU busca por SKU (incluye eliminados).
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.s.do(r.inTx, func() {
		for _, p := range r.s.products {
			if p.SKU == sku {
				cp := *p
				out = &cp
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza los datos de catálogo conservando quantity y deleted.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.s.do(r.inTx, func() {
		cur, ok := r.s.products[product.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if r.skuTaken(product.SKU, product.ID) {
			err = domain.ErrDuplicate
			return
		}
		cur.Name = product.Name
		cur.SKU = product.SKU
		cur.Description = product.Description
		cur.Unit = product.Unit
		cur.MinOrderLevel = product.MinOrderLevel
		cur.UnitPrice = product.UnitPrice
		cur.UpdatedAt = product.UpdatedAt
	})
	return err
}

// UpdateQuantity fija la cantidad; negativa equivale al CHECK de la tabla.
func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	var err error
	r.s.do(r.inTx, func() {
		cur, ok := r.s.products[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if quantity < 0 {
			err = domain.ErrInsufficientStock
			return
		}
		cur.Quantity = quantity
		cur.UpdatedAt = time.Now()
	})
	return err
}

// SoftDelete marca el producto como eliminado.
func (r *ProductRepo) SoftDelete(_ context.Context, id string) error {
	var err error
	r.s.do(r.inTx, func() {
		cur, ok := r.s.products[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		cur.Deleted = true
		cur.UpdatedAt = time.Now()
	})
	return err
}

// ListActive productos no eliminados por nombre.
func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	list := r.filter(func(*entity.Product) bool { return true })
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].SKU < list[j].SKU
	})
	return list, nil
}

// ListBelowThreshold activos con quantity < threshold, por cantidad y SKU.
func (r *ProductRepo) ListBelowThreshold(_ context.Context, threshold int) ([]*entity.Product, error) {
	list := r.filter(func(p *entity.Product) bool { return p.Quantity < threshold })
	sortByQuantity(list)
	return list, nil
}

// ListBelowMinOrderLevel activos con quantity < min_order_level.
func (r *ProductRepo) ListBelowMinOrderLevel(_ context.Context) ([]*entity.Product, error) {
	list := r.filter(func(p *entity.Product) bool { return p.Quantity < p.MinOrderLevel })
	sortByQuantity(list)
	return list, nil
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	r.s.do(r.inTx, func() {
		for _, p := range r.s.products {
			if !p.Deleted && keep(p) {
				cp := *p
				out = append(out, &cp)
			}
		}
	})
	return out
}

// skuTaken requiere el lock tomado.
func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	for _, p := range r.s.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

func sortByQuantity(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity < list[j].Quantity
		}
		return list[i].SKU < list[j].SKU
	})
}
