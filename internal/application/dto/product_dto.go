package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"notblank,max=200"`
	SKU           string           `json:"sku" validate:"notblank,max=100"`
	Description   string           `json:"description" validate:"max=2000"`
	Unit          string           `json:"unit" validate:"notblank,max=50"`
	MinOrderLevel int              `json:"min_order_level" validate:"min=0,max=2147483647"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Quantity      int              `json:"quantity" validate:"min=0,max=2147483647"`
}

// UpdateProductRequest reemplaza los datos de catálogo (sin Quantity: cambia solo vía llegadas y correcciones).
type UpdateProductRequest struct {
	Name          string           `json:"name" validate:"notblank,max=200"`
	SKU           string           `json:"sku" validate:"notblank,max=100"`
	Description   string           `json:"description" validate:"max=2000"`
	Unit          string           `json:"unit" validate:"notblank,max=50"`
	MinOrderLevel int              `json:"min_order_level" validate:"min=0,max=2147483647"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Description   string           `json:"description"`
	Unit          string           `json:"unit"`
	MinOrderLevel int              `json:"min_order_level"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Quantity      int              `json:"quantity"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista de productos activos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
