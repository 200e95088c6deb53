package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/infrastructure/realtime"
)

// RequireWebSocketUpgrade responde 426 si la petición no pide upgrade a websocket.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(fiber.StatusUpgradeRequired).JSON(dto.ErrorResponse{Code: "UPGRADE_REQUIRED", Message: "se requiere conexión websocket"})
}

// StockWebSocket registra la conexión en el hub hasta que el cliente se desconecta.
// Los mensajes que envía el cliente se ignoran.
func StockWebSocket(hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if !hub.Join(conn) {
			return
		}
		defer hub.Leave(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
