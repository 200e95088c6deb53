package dto

import "time"

// RegisterArrivalRequest entrada para registrar una llegada de mercancía.
type RegisterArrivalRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1,max=2147483647"`
	Source    string `json:"source" validate:"notblank,max=200"`
}

// ArrivalResponse salida de una llegada.
type ArrivalResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Source      string    `json:"source"`
	ArrivalDate time.Time `json:"arrival_date"`
	CreatedBy   string    `json:"created_by"`
}

// RegisterCorrectionRequest entrada para registrar una corrección (cantidad con signo).
type RegisterCorrectionRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=-2147483647,max=2147483647"`
	Reason    string `json:"reason" validate:"notblank,max=500"`
}

// CorrectionResponse salida de una corrección.
type CorrectionResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Quantity       int       `json:"quantity"`
	Reason         string    `json:"reason"`
	CorrectionDate time.Time `json:"correction_date"`
	CreatedBy      string    `json:"created_by"`
}

// StockChangeResponse resultado de una llegada o corrección con el stock resultante.
type StockChangeResponse struct {
	Arrival     *ArrivalResponse    `json:"arrival,omitempty"`
	Correction  *CorrectionResponse `json:"correction,omitempty"`
	NewQuantity int                 `json:"new_quantity"`
}

// MovementResponse entrada del historial unificado.
type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // ARRIVAL, CORRECTION
	Delta     int       `json:"delta"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
}

// ProductHistoryResponse producto con sus llegadas, correcciones y la línea de tiempo combinada.
type ProductHistoryResponse struct {
	Product     ProductResponse      `json:"product"`
	Arrivals    []ArrivalResponse    `json:"arrivals"`
	Corrections []CorrectionResponse `json:"corrections"`
	Timeline    []MovementResponse   `json:"timeline"`
}
