package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/bodega/pkg/logger"
)

// AlertChecker operaciones de alertas que ejecutan las tareas.
type AlertChecker interface {
	CheckProduct(ctx context.Context, productID string) (bool, error)
	ScanBelowMinOrderLevel(ctx context.Context) (int, error)
}

// Handlers procesadores de las tareas de stock bajo.
type Handlers struct {
	alerts AlertChecker
	log    *logger.Logger
}

// NewHandlers crea los procesadores.
func NewHandlers(alerts AlertChecker, log *logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{alerts: alerts, log: log}
}

// Mux enruta cada tipo de tarea a su procesador.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCheckLowStock, h.HandleCheckLowStock)
	mux.HandleFunc(TypeScanLowStock, h.HandleScanLowStock)
	return mux
}

// HandleCheckLowStock revisa un producto y avisa si sigue bajo su nivel mínimo.
func (h *Handlers) HandleCheckLowStock(ctx context.Context, t *asynq.Task) error {
	var p CheckLowStockPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
	}
	if p.ProductID == "" {
		return fmt.Errorf("payload sin product_id: %w", asynq.SkipRetry)
	}
	notified, err := h.alerts.CheckProduct(ctx, p.ProductID)
	if err != nil {
		return fmt.Errorf("revisar producto %s: %w", p.ProductID, err)
	}
	h.log.Info().Str("product_id", p.ProductID).Str("sku", p.SKU).Bool("notified", notified).Msg("revisión de stock bajo")
	return nil
}

// HandleScanLowStock recorre el catálogo completo.
func (h *Handlers) HandleScanLowStock(ctx context.Context, _ *asynq.Task) error {
	n, err := h.alerts.ScanBelowMinOrderLevel(ctx)
	if err != nil {
		return fmt.Errorf("escaneo de stock bajo: %w", err)
	}
	h.log.Info().Int("products", n).Msg("escaneo de stock bajo completado")
	return nil
}

// WorkerConfig parámetros del servidor y del planificador.
type WorkerConfig struct {
	Concurrency int
	ScanCron    string // vacío = sin escaneo periódico
}

// Worker servidor asynq más el planificador del escaneo periódico.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	handlers  *Handlers
	cron      string
	log       *logger.Logger
}

// NewWorker crea servidor y planificador; no arranca nada hasta Start.
func NewWorker(opt asynq.RedisClientOpt, cfg WorkerConfig, handlers *Handlers, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	al := asynqLogger{log: log.Named("asynq")}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{QueueAlerts: 1},
		Logger:      al,
	})
	w := &Worker{server: srv, handlers: handlers, cron: cfg.ScanCron, log: log}
	if cfg.ScanCron != "" {
		w.scheduler = asynq.NewScheduler(opt, &asynq.SchedulerOpts{Logger: al})
	}
	return w
}

// Start arranca el procesamiento y registra el escaneo periódico.
func (w *Worker) Start() error {
	if err := w.server.Start(w.handlers.Mux()); err != nil {
		return fmt.Errorf("iniciar worker asynq: %w", err)
	}
	if w.scheduler == nil {
		return nil
	}
	entryID, err := w.scheduler.Register(w.cron, NewScanLowStockTask())
	if err != nil {
		return fmt.Errorf("registrar escaneo %q: %w", w.cron, err)
	}
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("iniciar planificador asynq: %w", err)
	}
	w.log.Info().Str("cron", w.cron).Str("entry_id", entryID).Msg("escaneo de stock bajo programado")
	return nil
}

// Shutdown detiene planificador y servidor esperando las tareas en curso.
func (w *Worker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
}

// asynqLogger adapta pkg/logger a asynq.Logger.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
