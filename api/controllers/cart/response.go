package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

type checkoutResponse struct {
	ID           uuid.UUID `json:"id"`
	FechaEmision time.Time `json:"fechaEmision"`
	Total        float64   `json:"total"`
	Mensaje      string    `json:"mensaje"`
}

func newCheckoutResponse(invoice *models.Invoice) checkoutResponse {
	return checkoutResponse{
		ID:           invoice.ID,
		FechaEmision: invoice.IssuedAt,
		Total:        invoice.Total.InexactFloat64(),
		Mensaje:      "compra procesada",
	}
}
