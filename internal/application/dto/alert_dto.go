package dto

import "time"

// LowStockProductDTO fila del reporte de stock bajo.
type LowStockProductDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	CurrentQuantity int    `json:"current_quantity"`
	MinOrderLevel   int    `json:"min_order_level"`
	Unit            string `json:"unit"`
	Deficit         int    `json:"deficit"` // min_order_level - current_quantity
}

// LowStockReportDTO respuesta de GET /api/alerts/low-stock.
type LowStockReportDTO struct {
	Threshold   int                  `json:"threshold"`
	GeneratedAt time.Time            `json:"generated_at"`
	Count       int                  `json:"count"`
	Items       []LowStockProductDTO `json:"items"`
}
