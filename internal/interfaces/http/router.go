package http

import (
	nethttp "net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega/internal/application/alert"
	appanalytics "github.com/jhoicas/bodega/internal/application/analytics"
	"github.com/jhoicas/bodega/internal/application/auth"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/metrics"
	"github.com/jhoicas/bodega/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router. Hub, Metrics y Monitor son opcionales.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	ArrivalUC    *inventory.ArrivalUseCase
	CorrectionUC *inventory.CorrectionUseCase
	HistoryUC    *usecase.HistoryUseCase
	AlertUC      *alert.AlertUseCase
	DashboardUC  *appanalytics.DashboardUseCase

	JWTSecret    string
	CookieName   string
	SecureCookie bool

	Hub     *realtime.Hub
	Metrics *metrics.Metrics
	Monitor nethttp.Handler // asynqmon montado en /monitor
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authMw := AuthMiddlewareWithCookie(deps.JWTSecret, deps.CookieName)
	adminOnly := RequireRole(entity.RoleAdmin)

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.CookieName, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie)
	api.Get("/profile", authMw, authHandler.Profile)
	api.Post("/users", authMw, adminOnly, authHandler.CreateUser)

	// Products: lectura para cualquier usuario, escritura solo admin
	products := api.Group("/products", authMw)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Llegadas, correcciones e historial
	invHandler := NewInventoryHandler(deps.ArrivalUC, deps.CorrectionUC, deps.HistoryUC)
	arrivals := api.Group("/arrivals", authMw)
	arrivals.Post("/", invHandler.RegisterArrival)
	arrivals.Get("/product/:productId", invHandler.ListArrivals)

	corrections := api.Group("/corrections", authMw)
	corrections.Post("/", invHandler.RegisterCorrection)
	corrections.Get("/product/:productId", invHandler.ListCorrections)

	api.Get("/history/:productId", authMw, invHandler.History)

	// Alertas de stock bajo
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := api.Group("/alerts", authMw)
	alerts.Get("/low-stock", alertHandler.LowStock)
	alerts.Get("/low-stock/export", alertHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", authMw, dashboardHandler.GetSummary)

	// Eventos de stock en vivo
	if deps.Hub != nil {
		app.Get("/ws", authMw, RequireWebSocketUpgrade, StockWebSocket(deps.Hub))
	}

	// Panel de colas asynq (solo admin)
	if deps.Monitor != nil {
		app.Use("/monitor", authMw, adminOnly, adaptor.HTTPHandler(deps.Monitor))
	}
}
