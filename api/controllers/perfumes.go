package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpcardenasg/esencia-backend/api/responses"
	"github.com/jpcardenasg/esencia-backend/api/validators"
	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
	"github.com/jpcardenasg/esencia-backend/pkg/logger"
	"github.com/jpcardenasg/esencia-backend/pkg/types"
)

type createPerfumeRequest struct {
	Nombre       string      `json:"nombre" validate:"required"`
	Precio       float64     `json:"precio" validate:"required,gt=0"`
	Descripcion  string      `json:"descripcion,omitempty"`
	ImagenURL    string      `json:"imagenUrl,omitempty"`
	CategoriaIDs []uuid.UUID `json:"categoriaIds,omitempty"`
	NotaIDs      []uuid.UUID `json:"notaIds,omitempty"`
}

type updatePerfumeRequest struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Precio      *float64 `json:"precio,omitempty" validate:"omitempty,gt=0"`
	Descripcion *string  `json:"descripcion,omitempty"`
	ImagenURL   *string  `json:"imagenUrl,omitempty"`
}

type idListRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

func PerfumesCreate(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPerfumeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		perfume, err := svc.CreatePerfume(r.Context(), catalog.CreatePerfumeInput{
			Name:        payload.Nombre,
			Price:       decimal.NewFromFloat(payload.Precio),
			Description: payload.Descripcion,
			ImageURL:    payload.ImagenURL,
			CategoryIDs: payload.CategoriaIDs,
			NoteIDs:     payload.NotaIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, perfume)
	}
}

func PerfumesUpdate(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePerfumeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdatePerfumeInput{
			Name:        payload.Nombre,
			Description: payload.Descripcion,
			ImageURL:    payload.ImagenURL,
		}
		if payload.Precio != nil {
			price := decimal.NewFromFloat(*payload.Precio)
			input.Price = &price
		}

		perfume, err := svc.UpdatePerfume(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}

func PerfumesDelete(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePerfume(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Message{Mensaje: "perfume eliminado"})
	}
}

func PerfumesGet(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perfume, err := svc.GetPerfume(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}

func PerfumesList(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListPerfumes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func PerfumesByCategory(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseUUIDParam(r, "categoriaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func PerfumesSearch(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nombre := strings.TrimSpace(r.URL.Query().Get("nombre"))
		if nombre == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nombre query parameter is required"))
			return
		}
		rows, err := svc.SearchPerfumes(r.Context(), nombre)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func PerfumesUpdateCategories(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload idListRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perfume, err := svc.UpdateCategories(r.Context(), id, payload.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}

func PerfumesUpdateNotes(svc catalog.PerfumeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "perfumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload idListRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perfume, err := svc.UpdateNotes(r.Context(), id, payload.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perfume)
	}
}
