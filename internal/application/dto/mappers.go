package dto

import (
	"github.com/jhoicas/bodega/internal/domain/entity"
)

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Unit:          p.Unit,
		MinOrderLevel: p.MinOrderLevel,
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.UnitPrice.Valid {
		price := p.UnitPrice.Decimal
		out.UnitPrice = &price
	}
	return out
}

// ToArrivalResponse convierte la entidad a DTO.
func ToArrivalResponse(a *entity.ProductArrival) ArrivalResponse {
	return ArrivalResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		Quantity:    a.Quantity,
		Source:      a.Source,
		ArrivalDate: a.ArrivalDate,
		CreatedBy:   a.CreatedBy,
	}
}

// ToCorrectionResponse convierte la entidad a DTO.
func ToCorrectionResponse(c *entity.StockCorrection) CorrectionResponse {
	return CorrectionResponse{
		ID:             c.ID,
		ProductID:      c.ProductID,
		Quantity:       c.Quantity,
		Reason:         c.Reason,
		CorrectionDate: c.CorrectionDate,
		CreatedBy:      c.CreatedBy,
	}
}

// ToMovementResponse convierte una entrada del historial a DTO.
func ToMovementResponse(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		Delta:     m.Delta,
		Note:      m.Note,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}

// ToLowStockProduct arma la fila del reporte de stock bajo.
func ToLowStockProduct(p *entity.Product) LowStockProductDTO {
	return LowStockProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		CurrentQuantity: p.Quantity,
		MinOrderLevel:   p.MinOrderLevel,
		Unit:            p.Unit,
		Deficit:         p.Deficit(),
	}
}

// ToUserResponse convierte la entidad a DTO (sin password).
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     u.RoleList(),
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}
