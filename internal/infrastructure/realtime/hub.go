// Package realtime difunde por websocket los cambios de stock y los avisos de stock bajo.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/pkg/logger"
)

var (
	_ inventory.StockEvents  = (*Hub)(nil)
	_ alert.LowStockNotifier = (*Hub)(nil)
)

// Tipos de mensaje enviados a los clientes.
const (
	MessageStockChanged = "stock_changed"
	MessageLowStock     = "low_stock"
)

const (
	// writeWait tiempo máximo para escribir un mensaje a un cliente.
	writeWait = 10 * time.Second
	// clientBuffer mensajes pendientes por cliente; si se llena se descartan.
	clientBuffer = 64
)

// Client conexión registrada en el hub (*websocket.Conn la cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Message sobre JSON enviado por el socket.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// Hub registro de clientes y difusión de mensajes. Run debe estar corriendo para que lleguen.
// Cada cliente tiene su propia goroutine de escritura, así un socket lento no frena al resto.
type Hub struct {
	Broadcast chan []byte

	register   chan Client
	unregister chan Client
	done       chan struct{}

	mu      sync.Mutex
	clients map[Client]chan []byte
	log     *logger.Logger
}

// NewHub crea el hub con un buffer de difusión.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		register:   make(chan Client),
		unregister: make(chan Client),
		done:       make(chan struct{}),
		clients:    make(map[Client]chan []byte),
		log:        log,
	}
}

// Join registra el cliente. Devuelve false si el hub ya se detuvo.
func (h *Hub) Join(c Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave da de baja al cliente; no bloquea si el hub ya se detuvo.
func (h *Hub) Leave(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run atiende altas, bajas y difusiones hasta que se cancele ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			send := make(chan []byte, clientBuffer)
			h.mu.Lock()
			h.clients[c] = send
			n := len(h.clients)
			h.mu.Unlock()
			go h.writePump(c, send)
			h.log.Debug().Int("clients", n).Msg("cliente websocket conectado")

		case c := <-h.unregister:
			h.mu.Lock()
			if send, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for _, send := range h.clients {
				select {
				case send <- message:
				default:
					h.log.Warn().Msg("websocket: cliente lento, mensaje descartado")
				}
			}
			h.mu.Unlock()
		}
	}
}

// writePump escribe los mensajes del cliente hasta que se cierre send o falle la escritura.
func (h *Hub) writePump(c Client, send <-chan []byte) {
	defer func() { _ = c.Close() }()
	for message := range send {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Debug().Err(err).Msg("websocket: escritura fallida, cliente dado de baja")
			go h.Leave(c)
			return
		}
	}
}

// Clients cantidad de clientes conectados.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish serializa y encola el mensaje; si el buffer está lleno se descarta.
func (h *Hub) Publish(msgType string, data interface{}) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data, At: time.Now()})
	if err != nil {
		h.log.Error().Err(err).Str("type", msgType).Msg("websocket: serializar mensaje")
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		h.log.Warn().Str("type", msgType).Msg("websocket: buffer lleno, mensaje descartado")
	}
}

// StockChanged implementa inventory.StockEvents.
func (h *Hub) StockChanged(_ context.Context, change inventory.StockChange) {
	h.Publish(MessageStockChanged, change)
}

// NotifyLowStock implementa alert.LowStockNotifier.
func (h *Hub) NotifyLowStock(_ context.Context, items []dto.LowStockProductDTO) error {
	h.Publish(MessageLowStock, items)
	return nil
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c, send := range h.clients {
		delete(h.clients, c)
		close(send)
	}
}
