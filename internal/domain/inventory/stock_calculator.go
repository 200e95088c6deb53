package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/bodega/internal/domain"
)

// MaxReasonLength largo máximo del motivo de una corrección.
const MaxReasonLength = 500

// MaxQuantity tope de stock por producto (columna INTEGER de products.quantity).
const MaxQuantity = math.MaxInt32

var errExceedsMax = domain.Invalid("quantity", fmt.Sprintf("el stock resultante supera el máximo permitido (%d)", MaxQuantity))

// ApplyArrival calcula el nuevo stock tras una llegada (servicio de dominio).
// NuevoStock = StockActual + CantLlegada, con CantLlegada >= 1.
func ApplyArrival(current, quantity int) (int, error) {
	if quantity < 1 {
		return 0, domain.Invalid("quantity", "la cantidad de la llegada debe ser al menos 1")
	}
	if quantity > MaxQuantity-current {
		return 0, errExceedsMax
	}
	return current + quantity, nil
}

// ApplyCorrection calcula el nuevo stock tras una corrección con signo.
// El resultado nunca puede quedar negativo.
func ApplyCorrection(current, delta int) (int, error) {
	if delta == 0 {
		return 0, domain.Invalid("quantity", "la corrección no puede ser cero")
	}
	if delta > 0 && delta > MaxQuantity-current {
		return 0, errExceedsMax
	}
	if delta < -current {
		return 0, domain.ErrInsufficientStock
	}
	return current + delta, nil
}

// ValidateReason exige un motivo no vacío y acotado.
func ValidateReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if r == "" {
		return "", domain.Invalid("reason", "debe indicar el motivo de la corrección")
	}
	if len([]rune(r)) > MaxReasonLength {
		return "", domain.Invalid("reason", "el motivo no puede superar 500 caracteres")
	}
	return r, nil
}
