package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/inventory"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Quantity se maneja vía llegadas y correcciones.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List lista los productos activos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un producto activo. Eliminado o inexistente: ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Create crea un nuevo producto. SKU repetido (aunque el otro esté eliminado): ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	fields := catalogFields{
		Name: in.Name, SKU: in.SKU, Description: in.Description, Unit: in.Unit,
		MinOrderLevel: in.MinOrderLevel, UnitPrice: in.UnitPrice,
	}
	if err := fields.normalize(); err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, domain.Invalid("quantity", "la cantidad no puede ser negativa")
	}
	if in.Quantity > inventory.MaxQuantity {
		return nil, domain.Invalid("quantity", "la cantidad supera el máximo permitido")
	}
	existing, err := uc.repo.GetBySKU(ctx, fields.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields.apply(product)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update reemplaza los datos de catálogo. Quantity y Deleted se conservan.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	fields := catalogFields{
		Name: in.Name, SKU: in.SKU, Description: in.Description, Unit: in.Unit,
		MinOrderLevel: in.MinOrderLevel, UnitPrice: in.UnitPrice,
	}
	if err := fields.normalize(); err != nil {
		return nil, err
	}
	product, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if fields.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, fields.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}
	fields.apply(product)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// SoftDelete marca el producto como eliminado; deja de aparecer en listados y reportes.
func (uc *ProductUseCase) SoftDelete(ctx context.Context, id string) error {
	if _, err := uc.active(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *ProductUseCase) active(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// catalogFields datos editables del producto, compartidos por Create y Update.
type catalogFields struct {
	Name          string
	SKU           string
	Description   string
	Unit          string
	MinOrderLevel int
	UnitPrice     *decimal.Decimal
}

func (f *catalogFields) normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.SKU = strings.TrimSpace(f.SKU)
	f.Unit = strings.TrimSpace(f.Unit)
	f.Description = strings.TrimSpace(f.Description)
	switch {
	case f.Name == "":
		return domain.Invalid("name", "el nombre es obligatorio")
	case f.SKU == "":
		return domain.Invalid("sku", "el SKU es obligatorio")
	case f.Unit == "":
		return domain.Invalid("unit", "la unidad es obligatoria")
	case f.MinOrderLevel < 0:
		return domain.Invalid("min_order_level", "el nivel mínimo no puede ser negativo")
	case f.MinOrderLevel > inventory.MaxQuantity:
		return domain.Invalid("min_order_level", "el nivel mínimo supera el máximo permitido")
	case f.UnitPrice != nil && f.UnitPrice.IsNegative():
		return domain.Invalid("unit_price", "el precio no puede ser negativo")
	}
	return nil
}

func (f *catalogFields) apply(p *entity.Product) {
	p.Name = f.Name
	p.SKU = f.SKU
	p.Description = f.Description
	p.Unit = f.Unit
	p.MinOrderLevel = f.MinOrderLevel
	p.UnitPrice = decimal.NullDecimal{}
	if f.UnitPrice != nil {
		p.UnitPrice = decimal.NewNullDecimal(*f.UnitPrice)
	}
}
