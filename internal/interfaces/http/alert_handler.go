package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega/internal/application/alert"
	"github.com/jhoicas/bodega/internal/domain"
)

// AlertHandler reporte de stock bajo y sus descargas.
type AlertHandler struct {
	uc *alert.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alert.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos activos con cantidad estrictamente menor al umbral, de menor a mayor cantidad.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral"  default(10)
// @Success      200  {object}  dto.LowStockReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := h.threshold(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ProductsBelowThreshold(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar reporte de stock bajo
// @Tags         alerts
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        threshold  query  int     false  "Umbral"  default(10)
// @Param        format     query  string  false  "csv, xlsx o pdf"  default(csv)
// @Param        charset    query  string  false  "Solo CSV: utf-8 o windows-1252"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock/export [get]
func (h *AlertHandler) Export(c *fiber.Ctx) error {
	threshold, err := h.threshold(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), threshold, c.Query("format"), alert.ExportOptions{Charset: c.Query("charset")})
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

func (h *AlertHandler) threshold(c *fiber.Ctx) (int, error) {
	raw := c.Query("threshold")
	if raw == "" {
		return h.uc.DefaultThreshold(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid("threshold", "debe ser un número entero")
	}
	return n, nil
}
