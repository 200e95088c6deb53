package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/inventory"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// ArrivalUseCase registra llegadas de mercancía de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ArrivalUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	arrivalRepo repository.ArrivalRepository
	events      StockEvents
	now         func() time.Time
}

// NewArrivalUseCase construye el caso de uso. events puede ser nil.
func NewArrivalUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	arrivalRepo repository.ArrivalRepository,
	events StockEvents,
) *ArrivalUseCase {
	if events == nil {
		events = NopEvents{}
	}
	return &ArrivalUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		arrivalRepo: arrivalRepo,
		events:      events,
		now:         time.Now,
	}
}

// RegisterArrival suma la cantidad al producto y guarda la llegada atribuida a username.
// Producto inexistente o eliminado: ErrNotFound.
func (uc *ArrivalUseCase) RegisterArrival(ctx context.Context, username string, in dto.RegisterArrivalRequest) (*dto.StockChangeResponse, error) {
	source := strings.TrimSpace(in.Source)
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "el producto es obligatorio")
	}
	if source == "" {
		return nil, domain.Invalid("source", "el origen de la llegada es obligatorio")
	}
	if in.Quantity < 1 {
		return nil, domain.Invalid("quantity", "la cantidad de la llegada debe ser al menos 1")
	}

	now := uc.now()
	arrival := &entity.ProductArrival{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Source:      source,
		ArrivalDate: now,
		CreatedBy:   username,
	}
	var change StockChange

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		arrivalRepo repository.ArrivalRepository,
		_ repository.CorrectionRepository,
	) error {
		// Bloquea la fila del producto para evitar condiciones de carrera
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.Deleted {
			return domain.ErrNotFound
		}
		newQty, err := inventory.ApplyArrival(product.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty); err != nil {
			return err
		}
		if err := arrivalRepo.Create(ctx, arrival); err != nil {
			return err
		}
		change = newStockChange(ChangeArrival, product, newQty, in.Quantity, username, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.StockChanged(ctx, change)

	resp := dto.ToArrivalResponse(arrival)
	return &dto.StockChangeResponse{Arrival: &resp, NewQuantity: change.NewQuantity}, nil
}

// ListForProduct devuelve las llegadas del producto, más recientes primero.
func (uc *ArrivalUseCase) ListForProduct(ctx context.Context, productID string) ([]dto.ArrivalResponse, error) {
	if err := ensureActiveProduct(ctx, uc.productRepo, productID); err != nil {
		return nil, err
	}
	list, err := uc.arrivalRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArrivalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToArrivalResponse(a))
	}
	return out, nil
}

func newStockChange(kind string, p *entity.Product, newQty, delta int, username string, at time.Time) StockChange {
	return StockChange{
		Kind:          kind,
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Unit:          p.Unit,
		OldQuantity:   p.Quantity,
		NewQuantity:   newQty,
		Delta:         delta,
		MinOrderLevel: p.MinOrderLevel,
		Username:      username,
		At:            at,
	}
}

func ensureActiveProduct(ctx context.Context, repo repository.ProductRepository, id string) error {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.Deleted {
		return domain.ErrNotFound
	}
	return nil
}
