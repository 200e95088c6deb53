package entity

import "time"

// StockCorrection ajuste manual del stock con motivo obligatorio.
// Quantity es con signo: positivo suma, negativo resta.
type StockCorrection struct {
	ID             string
	ProductID      string
	Quantity       int
	Reason         string
	CorrectionDate time.Time
	CreatedBy      string // username
}
