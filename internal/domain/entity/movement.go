package entity

import "time"

// Tipos de movimiento del historial de un producto.
const (
	MovementTypeArrival    = "ARRIVAL"
	MovementTypeCorrection = "CORRECTION"
)

// Movement entrada del historial unificado (llegada o corrección).
type Movement struct {
	ID        string
	ProductID string
	Type      string // ARRIVAL, CORRECTION
	Delta     int    // con signo
	Note      string // proveedor en llegadas, motivo en correcciones
	Date      time.Time
	CreatedBy string
}

// MovementFromArrival convierte una llegada al formato del historial.
func MovementFromArrival(a *ProductArrival) Movement {
	return Movement{
		ID:        a.ID,
		ProductID: a.ProductID,
		Type:      MovementTypeArrival,
		Delta:     a.Quantity,
		Note:      a.Source,
		Date:      a.ArrivalDate,
		CreatedBy: a.CreatedBy,
	}
}

// MovementFromCorrection convierte una corrección al formato del historial.
func MovementFromCorrection(c *StockCorrection) Movement {
	return Movement{
		ID:        c.ID,
		ProductID: c.ProductID,
		Type:      MovementTypeCorrection,
		Delta:     c.Quantity,
		Note:      c.Reason,
		Date:      c.CorrectionDate,
		CreatedBy: c.CreatedBy,
	}
}
