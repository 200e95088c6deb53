package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"

	"github.com/jhoicas/bodega/internal/application/alert"
	appanalytics "github.com/jhoicas/bodega/internal/application/analytics"
	"github.com/jhoicas/bodega/internal/application/auth"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/export"
	"github.com/jhoicas/bodega/internal/infrastructure/metrics"
	"github.com/jhoicas/bodega/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/bodega/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega/internal/infrastructure/queue"
	"github.com/jhoicas/bodega/internal/infrastructure/realtime"
	"github.com/jhoicas/bodega/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/bodega/internal/interfaces/http"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer repos.Close()

	userUC := usecase.NewUserUseCase(repos.Users)
	bootstrapAdmin(ctx, userUC, cfg.Admin, log)

	// Hub websocket: recibe cambios de stock y avisos de stock bajo
	hub := realtime.NewHub(log.Named("ws"))
	go hub.Run(ctx)

	notifiers := alert.MultiNotifier{hub}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Error().Err(err).Msg("telegram deshabilitado")
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	alertUC := alert.NewAlertUseCase(
		repos.Products, notifiers, cfg.Alerts.DefaultThreshold, log.Named("alerts"),
		export.NewCSVExporter(),
		export.NewXLSXExporter(),
		infrapdf.NewLowStockPDF("Reporte de stock bajo"),
	)

	events := inventory.MultiEvents{hub}
	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New("bodega")
		events = append(events, appMetrics)
	}

	// Con Redis la revisión de stock bajo va por asynq; sin Redis se hace en línea
	var (
		worker    *queue.Worker
		publisher *queue.Publisher
		monitor   *asynqmon.HTTPHandler
	)
	if cfg.Redis.Enabled() {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		publisher = queue.NewPublisher(redisOpt, log.Named("queue"))
		events = append(events, publisher)

		worker = queue.NewWorker(redisOpt, queue.WorkerConfig{ScanCron: cfg.Alerts.ScanCron},
			queue.NewHandlers(alertUC, log.Named("worker")), log.Named("worker"))
		if err := worker.Start(); err != nil {
			log.Fatal().Err(err).Msg("worker asynq")
		}
		monitor = asynqmon.New(asynqmon.Options{RootPath: "/monitor", RedisConnOpt: redisOpt})
	} else {
		events = append(events, alertUC)
	}

	productUC := usecase.NewProductUseCase(repos.Products)
	arrivalUC := inventory.NewArrivalUseCase(repos.TxRunner, repos.Products, repos.Arrivals, events)
	correctionUC := inventory.NewCorrectionUseCase(repos.TxRunner, repos.Products, repos.Corrections, events)
	historyUC := usecase.NewHistoryUseCase(repos.Products, repos.Arrivals, repos.Corrections)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Dashboard, repos.Products, alertUC.DefaultThreshold())
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: cfg.HTTP.CORSOrigins != "*",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	if appMetrics != nil {
		app.Use(appMetrics.Middleware())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Bodega API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		ArrivalUC:    arrivalUC,
		CorrectionUC: correctionUC,
		HistoryUC:    historyUC,
		AlertUC:      alertUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		CookieName:   cfg.JWT.CookieName,
		SecureCookie: cfg.JWT.SecureCookie,
		Hub:          hub,
		Metrics:      appMetrics,
	}
	if monitor != nil {
		deps.Monitor = monitor
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if worker != nil {
		worker.Shutdown()
	}
	if publisher != nil {
		_ = publisher.Close()
	}
	if monitor != nil {
		_ = monitor.Close()
	}
	stop()

	log.Info().Msg("aplicación detenida")
}

// bootstrapAdmin crea el administrador inicial si está configurado y aún no existe.
func bootstrapAdmin(ctx context.Context, users *usecase.UserUseCase, cfg config.AdminConfig, log *logger.Logger) {
	if cfg.Username == "" || cfg.Password == "" {
		return
	}
	_, err := users.CreateUser(ctx, dto.CreateUserRequest{
		Username: cfg.Username,
		Password: cfg.Password,
		Roles:    []string{entity.RoleAdmin, entity.RoleUser},
	})
	switch {
	case err == nil:
		log.Info().Str("username", cfg.Username).Msg("administrador inicial creado")
	case errors.Is(err, domain.ErrUsernameTaken):
		log.Debug().Str("username", cfg.Username).Msg("administrador inicial ya existe")
	default:
		log.Error().Err(err).Msg("crear administrador inicial")
	}
}
