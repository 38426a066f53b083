package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// InvoiceDTO is the flattened wire view of an invoice.
type InvoiceDTO struct {
	ID             uuid.UUID        `json:"id"`
	Usuario        *users.UserDTO   `json:"usuario,omitempty"`
	UsuarioID      uuid.UUID        `json:"usuarioId"`
	FechaEmision   time.Time        `json:"fechaEmision"`
	MetodoPago     string           `json:"metodoPago"`
	DireccionEnvio string           `json:"direccionEnvio"`
	Total          float64          `json:"total"`
	Detalles       []InvoiceItemDTO `json:"detalles"`
}

// InvoiceItemDTO is one flattened invoice line.
type InvoiceItemDTO struct {
	ID                     uuid.UUID  `json:"id"`
	PerfumeID              *uuid.UUID `json:"perfumeId,omitempty"`
	PerfumePersonalizadoID *uuid.UUID `json:"perfumePersonalizadoId,omitempty"`
	NombreProducto         string     `json:"nombreProducto"`
	Cantidad               int        `json:"cantidad"`
	PrecioUnitario         float64    `json:"precioUnitario"`
	Subtotal               float64    `json:"subtotal"`
}

// ToDTO flattens an invoice model.
func ToDTO(invoice *models.Invoice) *InvoiceDTO {
	if invoice == nil {
		return nil
	}
	detalles := make([]InvoiceItemDTO, 0, len(invoice.Items))
	for i := range invoice.Items {
		item := &invoice.Items[i]
		detalles = append(detalles, InvoiceItemDTO{
			ID:                     item.ID,
			PerfumeID:              item.PerfumeID,
			PerfumePersonalizadoID: item.CustomPerfumeID,
			NombreProducto:         item.ProductName,
			Cantidad:               item.Quantity,
			PrecioUnitario:         item.UnitPrice.InexactFloat64(),
			Subtotal:               item.Subtotal.InexactFloat64(),
		})
	}
	return &InvoiceDTO{
		ID:             invoice.ID,
		Usuario:        users.ToDTO(invoice.User),
		UsuarioID:      invoice.UserID,
		FechaEmision:   invoice.IssuedAt,
		MetodoPago:     invoice.PaymentMethod,
		DireccionEnvio: invoice.ShippingAddress,
		Total:          invoice.Total.InexactFloat64(),
		Detalles:       detalles,
	}
}

// ToDTOs flattens a slice of invoices.
func ToDTOs(rows []models.Invoice) []InvoiceDTO {
	out := make([]InvoiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out
}
