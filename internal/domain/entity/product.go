package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la bodega.
// Quantity solo cambia vía llegadas y correcciones; Deleted es borrado lógico.
type Product struct {
	ID            string
	Name          string
	SKU           string // único en todo el catálogo (incluye eliminados)
	Description   string
	Unit          string // unidad de medida: pcs, kg, caja...
	MinOrderLevel int
	UnitPrice     decimal.NullDecimal
	Quantity      int
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBelow indica si la cantidad actual es estrictamente menor al umbral.
func (p *Product) IsBelow(threshold int) bool {
	return p.Quantity < threshold
}

// Deficit unidades faltantes para alcanzar el nivel mínimo de pedido (negativo si sobra).
func (p *Product) Deficit() int {
	return p.MinOrderLevel - p.Quantity
}

// StockValue valor del stock disponible (0 si no tiene precio).
func (p *Product) StockValue() decimal.Decimal {
	if !p.UnitPrice.Valid {
		return decimal.Zero
	}
	return p.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
