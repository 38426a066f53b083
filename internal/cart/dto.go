package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// customNameSuffix marks custom blends on line-item name snapshots.
const customNameSuffix = " (Personalizado)"

// CartDTO is the flattened wire view of a cart.
type CartDTO struct {
	ID            uuid.UUID      `json:"id"`
	Usuario       *users.UserDTO `json:"usuario"`
	FechaCreacion time.Time      `json:"fechaCreacion"`
	Estado        string         `json:"estado"`
	Detalles      []CartItemDTO  `json:"detalles"`
}

// CartItemDTO is one flattened cart line.
type CartItemDTO struct {
	ID                     uuid.UUID  `json:"id"`
	PerfumeID              *uuid.UUID `json:"perfumeId,omitempty"`
	PerfumePersonalizadoID *uuid.UUID `json:"perfumePersonalizadoId,omitempty"`
	NombreProducto         string     `json:"nombreProducto"`
	Cantidad               int        `json:"cantidad"`
	PrecioUnitario         float64    `json:"precioUnitario"`
	Subtotal               float64    `json:"subtotal"`
}

func itemToDTO(item *models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:                     item.ID,
		PerfumeID:              item.PerfumeID,
		PerfumePersonalizadoID: item.CustomPerfumeID,
		Cantidad:               item.Quantity,
		PrecioUnitario:         item.UnitPrice.InexactFloat64(),
		Subtotal:               item.Subtotal.InexactFloat64(),
	}
	switch {
	case item.Perfume != nil:
		dto.NombreProducto = item.Perfume.Name
	case item.CustomPerfume != nil:
		dto.NombreProducto = item.CustomPerfume.Name + customNameSuffix
	}
	return dto
}

func cartToDTO(cart *models.Cart, owner *models.User) *CartDTO {
	if cart == nil {
		return nil
	}
	detalles := make([]CartItemDTO, 0, len(cart.Items))
	for i := range cart.Items {
		detalles = append(detalles, itemToDTO(&cart.Items[i]))
	}
	return &CartDTO{
		ID:            cart.ID,
		Usuario:       users.ToDTO(owner),
		FechaCreacion: cart.CreatedAt,
		Estado:        string(cart.Status),
		Detalles:      detalles,
	}
}
