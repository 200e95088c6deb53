// Package alert contiene el reporte de stock bajo, sus exportaciones y los avisos
// cuando un producto queda por debajo de su nivel mínimo de pedido.
package alert

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/repository"
	"github.com/jhoicas/bodega/pkg/logger"
)

// DefaultThreshold umbral del reporte cuando no se indica otro.
const DefaultThreshold = 10

// reportTimeLayout sello de tiempo del nombre de archivo (yyyyMMdd_HHmmss).
const reportTimeLayout = "20060102_150405"

var _ inventory.StockEvents = (*AlertUseCase)(nil)

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AlertUseCase reporte de stock bajo y avisos.
type AlertUseCase struct {
	productRepo      repository.ProductRepository
	notifier         LowStockNotifier
	exporters        map[string]ReportExporter
	defaultThreshold int
	log              *logger.Logger
	now              func() time.Time
}

// NewAlertUseCase construye el caso de uso. notifier puede ser nil; threshold <= 0 usa DefaultThreshold.
func NewAlertUseCase(
	productRepo repository.ProductRepository,
	notifier LowStockNotifier,
	defaultThreshold int,
	log *logger.Logger,
	exporters ...ReportExporter,
) *AlertUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}
	if log == nil {
		log = logger.Nop()
	}
	byFormat := make(map[string]ReportExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &AlertUseCase{
		productRepo:      productRepo,
		notifier:         notifier,
		exporters:        byFormat,
		defaultThreshold: defaultThreshold,
		log:              log,
		now:              time.Now,
	}
}

// DefaultThreshold umbral configurado para el formulario del reporte.
func (uc *AlertUseCase) DefaultThreshold() int {
	return uc.defaultThreshold
}

// ProductsBelowThreshold productos activos con cantidad estrictamente menor al umbral,
// ordenados por cantidad ascendente (y SKU).
func (uc *AlertUseCase) ProductsBelowThreshold(ctx context.Context, threshold int) (*dto.LowStockReportDTO, error) {
	if threshold < 0 {
		return nil, domain.Invalid("threshold", "el umbral no puede ser negativo")
	}
	list, err := uc.productRepo.ListBelowThreshold(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToLowStockProduct(p))
	}
	sortLowStock(items)
	return &dto.LowStockReportDTO{
		Threshold:   threshold,
		GeneratedAt: uc.now(),
		Count:       len(items),
		Items:       items,
	}, nil
}

// ProductsBelowMinOrderLevel productos activos por debajo de su propio nivel mínimo.
func (uc *AlertUseCase) ProductsBelowMinOrderLevel(ctx context.Context) ([]dto.LowStockProductDTO, error) {
	list, err := uc.productRepo.ListBelowMinOrderLevel(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToLowStockProduct(p))
	}
	sortLowStock(items)
	return items, nil
}

// Export genera el reporte en el formato pedido (csv, xlsx, pdf).
func (uc *AlertUseCase) Export(ctx context.Context, threshold int, format string, opts ExportOptions) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, domain.Invalid("format", fmt.Sprintf("formato no soportado: %s", format))
	}
	report, err := uc.ProductsBelowThreshold(ctx, threshold)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := exporter.Write(&buf, *report, opts); err != nil {
		return nil, fmt.Errorf("exportar reporte %s: %w", format, err)
	}
	return &ExportFile{
		Filename:    ReportFilename(report.GeneratedAt, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// ReportFilename nombre del archivo: low_stock_report_yyyyMMdd_HHmmss.<ext>.
func ReportFilename(at time.Time, ext string) string {
	return "low_stock_report_" + at.Format(reportTimeLayout) + "." + ext
}

// CheckProduct avisa si el producto quedó por debajo de su nivel mínimo. Devuelve true si se avisó.
func (uc *AlertUseCase) CheckProduct(ctx context.Context, productID string) (bool, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if p == nil || p.Deleted || !p.IsBelow(p.MinOrderLevel) {
		return false, nil
	}
	if err := uc.notify(ctx, []dto.LowStockProductDTO{dto.ToLowStockProduct(p)}); err != nil {
		return false, err
	}
	return true, nil
}

// ScanBelowMinOrderLevel recorre el catálogo y envía un único aviso con todos los productos bajo mínimo.
func (uc *AlertUseCase) ScanBelowMinOrderLevel(ctx context.Context) (int, error) {
	items, err := uc.ProductsBelowMinOrderLevel(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	if err := uc.notify(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// StockChanged revisión en línea (sin cola): avisa cuando el cambio deja el producto bajo mínimo.
func (uc *AlertUseCase) StockChanged(ctx context.Context, change inventory.StockChange) {
	if !change.CrossedBelowMin() {
		return
	}
	if _, err := uc.CheckProduct(ctx, change.ProductID); err != nil {
		uc.log.Warn().Err(err).Str("product_id", change.ProductID).Msg("alerta de stock bajo no enviada")
	}
}

func (uc *AlertUseCase) notify(ctx context.Context, items []dto.LowStockProductDTO) error {
	if uc.notifier == nil {
		return nil
	}
	return uc.notifier.NotifyLowStock(ctx, items)
}

func sortLowStock(items []dto.LowStockProductDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CurrentQuantity != items[j].CurrentQuantity {
			return items[i].CurrentQuantity < items[j].CurrentQuantity
		}
		return items[i].SKU < items[j].SKU
	})
}
