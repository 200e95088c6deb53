// Package analytics contiene el resumen del inventario para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// DashboardUseCase genera el resumen del inventario y de los movimientos del día.
//
// Fuente de datos: DashboardRepository y ProductRepository (consultas read-only).
type DashboardUseCase struct {
	dashboardRepo     repository.DashboardRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold es el umbral del reporte de stock bajo.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	lowStockThreshold int,
) *DashboardUseCase {
	return &DashboardUseCase{
		dashboardRepo:     dashboardRepo,
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetStockTotals              → productos, unidades, valor, bajo mínimo
//  2. CountArrivalsSince(hoy)     → llegadas de hoy
//  3. CountCorrectionsSince(hoy)  → correcciones de hoy
//  4. ListBelowThreshold(umbral)  → productos bajo el umbral del reporte
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type totalsResult struct {
		totals repository.StockTotals
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	arrivalsCh := make(chan countResult, 1)
	correctionsCh := make(chan countResult, 1)
	belowCh := make(chan countResult, 1)

	go func() {
		t, err := uc.dashboardRepo.GetStockTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountArrivalsSince(ctx, todayStart)
		arrivalsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountCorrectionsSince(ctx, todayStart)
		correctionsCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.productRepo.ListBelowThreshold(ctx, uc.lowStockThreshold)
		belowCh <- countResult{len(list), err}
	}()

	totals := <-totalsCh
	arrivals := <-arrivalsCh
	corrections := <-correctionsCh
	below := <-belowCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", totals.err)
	}
	if arrivals.err != nil {
		return nil, fmt.Errorf("dashboard: llegadas de hoy: %w", arrivals.err)
	}
	if corrections.err != nil {
		return nil, fmt.Errorf("dashboard: correcciones de hoy: %w", corrections.err)
	}
	if below.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", below.err)
	}

	return &dto.DashboardSummaryDTO{
		ActiveProducts:    totals.totals.ActiveProducts,
		TotalUnits:        totals.totals.TotalUnits,
		StockValue:        totals.totals.StockValue.Round(2),
		BelowMinLevel:     totals.totals.BelowMinLevel,
		ArrivalsToday:     arrivals.n,
		CorrectionsToday:  corrections.n,
		LowStockThreshold: uc.lowStockThreshold,
		BelowThreshold:    below.n,
		GeneratedAt:       now,
	}, nil
}
