package alert

import (
	"context"
	"errors"
	"io"

	"github.com/jhoicas/bodega/internal/application/dto"
)

// LowStockNotifier envía avisos de productos por debajo de su nivel mínimo (Telegram, websocket).
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, items []dto.LowStockProductDTO) error
}

// MultiNotifier reparte el aviso a varios notificadores; junta los errores.
type MultiNotifier []LowStockNotifier

// NotifyLowStock notifica a todos aunque alguno falle.
func (m MultiNotifier) NotifyLowStock(ctx context.Context, items []dto.LowStockProductDTO) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyLowStock(ctx, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExportOptions opciones de formato del archivo exportado.
type ExportOptions struct {
	Charset string // solo CSV: "" o utf-8, windows-1252
}

// ReportExporter serializa el reporte de stock bajo en un formato de archivo.
type ReportExporter interface {
	Format() string // csv, xlsx, pdf
	ContentType() string
	Extension() string
	Write(w io.Writer, report dto.LowStockReportDTO, opts ExportOptions) error
}
