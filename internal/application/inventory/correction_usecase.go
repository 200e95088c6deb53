package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/inventory"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// CorrectionUseCase registra ajustes manuales de stock con motivo obligatorio.
type CorrectionUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	correctionRepo repository.CorrectionRepository
	events         StockEvents
	now            func() time.Time
}

// NewCorrectionUseCase construye el caso de uso. events puede ser nil.
func NewCorrectionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	correctionRepo repository.CorrectionRepository,
	events StockEvents,
) *CorrectionUseCase {
	if events == nil {
		events = NopEvents{}
	}
	return &CorrectionUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		correctionRepo: correctionRepo,
		events:         events,
		now:            time.Now,
	}
}

// RegisterCorrection aplica la cantidad con signo al producto.
// Si el stock resultante queda negativo retorna ErrInsufficientStock y no escribe nada.
func (uc *CorrectionUseCase) RegisterCorrection(ctx context.Context, username string, in dto.RegisterCorrectionRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "el producto es obligatorio")
	}
	reason, err := inventory.ValidateReason(in.Reason)
	if err != nil {
		return nil, err
	}
	if in.Quantity == 0 {
		return nil, domain.Invalid("quantity", "la corrección no puede ser cero")
	}

	now := uc.now()
	correction := &entity.StockCorrection{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		Reason:         reason,
		CorrectionDate: now,
		CreatedBy:      username,
	}
	var change StockChange

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.ArrivalRepository,
		correctionRepo repository.CorrectionRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.Deleted {
			return domain.ErrNotFound
		}
		newQty, err := inventory.ApplyCorrection(product.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty); err != nil {
			return err
		}
		if err := correctionRepo.Create(ctx, correction); err != nil {
			return err
		}
		change = newStockChange(ChangeCorrection, product, newQty, in.Quantity, username, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.StockChanged(ctx, change)

	resp := dto.ToCorrectionResponse(correction)
	return &dto.StockChangeResponse{Correction: &resp, NewQuantity: change.NewQuantity}, nil
}

// ListForProduct devuelve las correcciones del producto, más recientes primero.
func (uc *CorrectionUseCase) ListForProduct(ctx context.Context, productID string) ([]dto.CorrectionResponse, error) {
	if err := ensureActiveProduct(ctx, uc.productRepo, productID); err != nil {
		return nil, err
	}
	list, err := uc.correctionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CorrectionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCorrectionResponse(c))
	}
	return out, nil
}
