package cart

import "github.com/google/uuid"

type addItemRequest struct {
	UsuarioID uuid.UUID `json:"usuarioId" validate:"required"`
	PerfumeID uuid.UUID `json:"perfumeId" validate:"required"`
	Cantidad  int       `json:"cantidad" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type checkoutRequest struct {
	UsuarioID      uuid.UUID `json:"usuarioId" validate:"required"`
	DireccionEnvio string    `json:"direccionEnvio" validate:"required"`
	MetodoPago     string    `json:"metodoPago" validate:"required"`
}
