// Package queue encola y procesa con asynq las revisiones de stock bajo.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Tipos de tarea.
const (
	TypeCheckLowStock = "stock:check_low"
	TypeScanLowStock  = "stock:scan_low"
)

// QueueAlerts cola donde viajan las tareas de alertas.
const QueueAlerts = "alerts"

// CheckLowStockPayload producto a revisar tras un cambio de stock.
type CheckLowStockPayload struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

// NewCheckLowStockTask tarea de revisión de un producto. Se deduplica por producto durante un minuto.
func NewCheckLowStockTask(p CheckLowStockPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializar payload %s: %w", TypeCheckLowStock, err)
	}
	return asynq.NewTask(TypeCheckLowStock, data,
		asynq.Queue(QueueAlerts),
		asynq.MaxRetry(3),
		asynq.Unique(time.Minute),
	), nil
}

// NewScanLowStockTask tarea periódica que recorre todo el catálogo.
func NewScanLowStockTask() *asynq.Task {
	return asynq.NewTask(TypeScanLowStock, nil, asynq.Queue(QueueAlerts), asynq.MaxRetry(1))
}
