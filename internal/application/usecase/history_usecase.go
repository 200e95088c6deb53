package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// HistoryUseCase arma el historial de un producto: llegadas, correcciones y línea de tiempo combinada.
type HistoryUseCase struct {
	productRepo    repository.ProductRepository
	arrivalRepo    repository.ArrivalRepository
	correctionRepo repository.CorrectionRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	productRepo repository.ProductRepository,
	arrivalRepo repository.ArrivalRepository,
	correctionRepo repository.CorrectionRepository,
) *HistoryUseCase {
	return &HistoryUseCase{productRepo: productRepo, arrivalRepo: arrivalRepo, correctionRepo: correctionRepo}
}

// ProductHistory devuelve el historial del producto. Eliminado o inexistente: ErrNotFound.
func (uc *HistoryUseCase) ProductHistory(ctx context.Context, productID string) (*dto.ProductHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted {
		return nil, domain.ErrNotFound
	}
	arrivals, err := uc.arrivalRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	corrections, err := uc.correctionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductHistoryResponse{
		Product:     dto.ToProductResponse(product),
		Arrivals:    make([]dto.ArrivalResponse, 0, len(arrivals)),
		Corrections: make([]dto.CorrectionResponse, 0, len(corrections)),
	}
	movements := make([]entity.Movement, 0, len(arrivals)+len(corrections))
	for _, a := range arrivals {
		out.Arrivals = append(out.Arrivals, dto.ToArrivalResponse(a))
		movements = append(movements, entity.MovementFromArrival(a))
	}
	for _, c := range corrections {
		out.Corrections = append(out.Corrections, dto.ToCorrectionResponse(c))
		movements = append(movements, entity.MovementFromCorrection(c))
	}

	// Más reciente primero; a igual fecha, llegadas antes que correcciones
	sort.SliceStable(movements, func(i, j int) bool {
		if !movements[i].Date.Equal(movements[j].Date) {
			return movements[i].Date.After(movements[j].Date)
		}
		return movements[i].Type < movements[j].Type
	})
	out.Timeline = make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out.Timeline = append(out.Timeline, dto.ToMovementResponse(m))
	}
	return out, nil
}
