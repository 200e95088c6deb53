package queue

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/pkg/logger"
)

var _ inventory.StockEvents = (*Publisher)(nil)

// enqueuer parte de *asynq.Client que usa el publicador.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher encola una revisión de stock bajo cuando un cambio deja el producto bajo mínimo.
type Publisher struct {
	client enqueuer
	closer func() error
	log    *logger.Logger
}

// NewPublisher crea el cliente asynq contra Redis.
func NewPublisher(opt asynq.RedisConnOpt, log *logger.Logger) *Publisher {
	c := asynq.NewClient(opt)
	p := newPublisher(c, log)
	p.closer = c.Close
	return p
}

func newPublisher(c enqueuer, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{client: c, closer: func() error { return nil }, log: log}
}

// StockChanged implementa inventory.StockEvents.
func (p *Publisher) StockChanged(ctx context.Context, change inventory.StockChange) {
	if !change.CrossedBelowMin() {
		return
	}
	task, err := NewCheckLowStockTask(CheckLowStockPayload{
		ProductID: change.ProductID,
		SKU:       change.SKU,
		Quantity:  change.NewQuantity,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("cola: crear tarea")
		return
	}
	info, err := p.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		p.log.Debug().Str("product_id", change.ProductID).Msg("revisión de stock bajo ya encolada")
		return
	}
	if err != nil {
		p.log.Warn().Err(err).Str("product_id", change.ProductID).Msg("cola: no se pudo encolar revisión de stock bajo")
		return
	}
	p.log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("revisión de stock bajo encolada")
}

// Close cierra la conexión con Redis.
func (p *Publisher) Close() error {
	return p.closer()
}
