package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/bodega/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad de llegadas y correcciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		arrivalRepo repository.ArrivalRepository,
		correctionRepo repository.CorrectionRepository,
	) error) error
}

// Tipos de cambio de stock.
const (
	ChangeArrival    = "ARRIVAL"
	ChangeCorrection = "CORRECTION"
)

// StockChange evento emitido después del commit de una llegada o corrección.
type StockChange struct {
	Kind          string    `json:"kind"` // ARRIVAL, CORRECTION
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	OldQuantity   int       `json:"old_quantity"`
	NewQuantity   int       `json:"new_quantity"`
	Delta         int       `json:"delta"`
	MinOrderLevel int       `json:"min_order_level"`
	Username      string    `json:"username"`
	At            time.Time `json:"at"`
}

// CrossedBelowMin indica si el cambio dejó el producto por debajo de su nivel mínimo.
func (c StockChange) CrossedBelowMin() bool {
	return c.NewQuantity < c.MinOrderLevel
}

// StockEvents recibe los cambios de stock confirmados (websocket, cola, métricas).
// Las implementaciones no deben fallar la operación: solo registran sus errores.
type StockEvents interface {
	StockChanged(ctx context.Context, change StockChange)
}

// NopEvents descarta los eventos.
type NopEvents struct{}

// StockChanged no hace nada.
func (NopEvents) StockChanged(context.Context, StockChange) {}

// MultiEvents reparte el evento a varios receptores en orden.
type MultiEvents []StockEvents

// StockChanged notifica a todos los receptores.
func (m MultiEvents) StockChanged(ctx context.Context, change StockChange) {
	for _, e := range m {
		if e != nil {
			e.StockChanged(ctx, change)
		}
	}
}
