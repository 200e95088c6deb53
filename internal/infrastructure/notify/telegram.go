// Package notify envía los avisos de stock bajo por Telegram.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
)

var _ alert.LowStockNotifier = (*TelegramNotifier)(nil)

// maxItemsPerMessage límite de filas por mensaje (Telegram corta en 4096 caracteres).
const maxItemsPerMessage = 40

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier publica en un chat fijo.
type TelegramNotifier struct {
	api    sender
	chatID int64
}

// NewTelegramNotifier conecta con la API de bots.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram: TELEGRAM_CHAT_ID es obligatorio")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// NotifyLowStock envía uno o más mensajes con los productos bajo mínimo.
func (n *TelegramNotifier) NotifyLowStock(ctx context.Context, items []dto.LowStockProductDTO) error {
	for start := 0; start < len(items); start += maxItemsPerMessage {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + maxItemsPerMessage
		if end > len(items) {
			end = len(items)
		}
		msg := tgbotapi.NewMessage(n.chatID, FormatLowStock(items[start:end]))
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("telegram: enviar aviso: %w", err)
		}
	}
	return nil
}

// FormatLowStock texto plano del aviso.
func FormatLowStock(items []dto.LowStockProductDTO) string {
	var b strings.Builder
	if len(items) == 1 {
		b.WriteString("⚠️ Producto por debajo del nivel mínimo\n")
	} else {
		fmt.Fprintf(&b, "⚠️ %d productos por debajo del nivel mínimo\n", len(items))
	}
	for _, it := range items {
		fmt.Fprintf(&b, "\n• %s (%s): %d %s, mínimo %d, faltan %d",
			it.Name, it.SKU, it.CurrentQuantity, it.Unit, it.MinOrderLevel, it.Deficit)
	}
	return b.String()
}
