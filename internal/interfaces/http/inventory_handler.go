package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/application/usecase"
)

// InventoryHandler llegadas, correcciones e historial de stock.
type InventoryHandler struct {
	arrivals    *inventory.ArrivalUseCase
	corrections *inventory.CorrectionUseCase
	history     *usecase.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(arrivals *inventory.ArrivalUseCase, corrections *inventory.CorrectionUseCase, history *usecase.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{arrivals: arrivals, corrections: corrections, history: history}
}

// RegisterArrival godoc
// @Summary      Registrar llegada de mercancía
// @Description  Suma la cantidad al stock del producto y guarda la llegada en una sola transacción.
// @Tags         arrivals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterArrivalRequest  true  "product_id, quantity, source"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/arrivals [post]
func (h *InventoryHandler) RegisterArrival(c *fiber.Ctx) error {
	var in dto.RegisterArrivalRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.arrivals.RegisterArrival(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListArrivals godoc
// @Summary      Llegadas de un producto
// @Tags         arrivals
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}   dto.ArrivalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arrivals/product/{productId} [get]
func (h *InventoryHandler) ListArrivals(c *fiber.Ctx) error {
	id, err := uuidParam(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.arrivals.ListForProduct(c.UserContext(), id)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(out)
}

// RegisterCorrection godoc
// @Summary      Registrar corrección de stock
// @Description  Ajuste con signo y motivo obligatorio. Si el stock resultante es negativo responde 409 y no guarda nada.
// @Tags         corrections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCorrectionRequest  true  "product_id, quantity, reason"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/corrections [post]
func (h *InventoryHandler) RegisterCorrection(c *fiber.Ctx) error {
	var in dto.RegisterCorrectionRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.corrections.RegisterCorrection(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCorrections godoc
// @Summary      Correcciones de un producto
// @Tags         corrections
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}   dto.CorrectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/corrections/product/{productId} [get]
func (h *InventoryHandler) ListCorrections(c *fiber.Ctx) error {
	id, err := uuidParam(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.corrections.ListForProduct(c.UserContext(), id)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un producto
// @Description  Producto con sus llegadas, correcciones y la línea de tiempo combinada (más recientes primero).
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/history/{productId} [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	id, err := uuidParam(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.history.ProductHistory(c.UserContext(), id)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(out)
}
