package entity

import "time"

// ProductArrival llegada de mercancía de un proveedor; suma Quantity al producto.
type ProductArrival struct {
	ID          string
	ProductID   string
	Quantity    int    // siempre >= 1
	Source      string // proveedor u origen
	ArrivalDate time.Time
	CreatedBy   string // username
}
