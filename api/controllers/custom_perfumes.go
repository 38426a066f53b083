package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/api/responses"
	"github.com/jpcardenasg/esencia-backend/api/validators"
	"github.com/jpcardenasg/esencia-backend/internal/custom"
	"github.com/jpcardenasg/esencia-backend/pkg/logger"
	"github.com/jpcardenasg/esencia-backend/pkg/types"
)

type createCustomPerfumeRequest struct {
	Nombre      string      `json:"nombre" validate:"required"`
	Descripcion string      `json:"descripcion,omitempty"`
	UsuarioID   uuid.UUID   `json:"usuarioId" validate:"required"`
	NotaIDs     []uuid.UUID `json:"notaIds" validate:"required,min=1"`
	ImagenURL   string      `json:"imagenUrl,omitempty"`
}

type updateCustomPerfumeRequest struct {
	Nombre      *string      `json:"nombre,omitempty"`
	Descripcion *string      `json:"descripcion,omitempty"`
	NotaIDs     *[]uuid.UUID `json:"notaIds,omitempty"`
	ImagenURL   *string      `json:"imagenUrl,omitempty"`
	Aprobado    *bool        `json:"aprobado,omitempty"`
}

func CustomPerfumesCreate(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCustomPerfumeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		perfume, err := svc.CreateCustomPerfume(r.Context(), custom.CreateInput{
			Name:        payload.Nombre,
			Description: payload.Descripcion,
			UserID:      payload.UsuarioID,
			NoteIDs:     payload.NotaIDs,
			ImageURL:    payload.ImagenURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, perfume)
	}
}

func CustomPerfumesUpdate(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomPerfumeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		perfume, err := svc.UpdateCustomPerfume(r.Context(), id, custom.UpdateInput{
			Name:        payload.Nombre,
			Description: payload.Descripcion,
			NoteIDs:     payload.NotaIDs,
			ImageURL:    payload.ImagenURL,
			Approved:    payload.Aprobado,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}

func CustomPerfumesDelete(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCustomPerfume(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Message{Mensaje: "perfume personalizado eliminado"})
	}
}

func CustomPerfumesGet(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perfume, err := svc.GetCustomPerfume(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}

func CustomPerfumesList(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListCustomPerfumes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func CustomPerfumesByUser(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseUUIDParam(r, "usuarioId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func CustomPerfumesApproved(svc custom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListApproved(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
