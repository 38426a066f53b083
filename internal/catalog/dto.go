package catalog

import (
	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// CategoryDTO is the wire view of a category.
type CategoryDTO struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

// NoteDTO is the wire view of an olfactory note.
type NoteDTO struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
}

// PerfumeDTO is the flattened one-way view of a perfume. Associations are
// embedded as their own DTOs so no cycle ever reaches the encoder.
type PerfumeDTO struct {
	ID          uuid.UUID     `json:"id"`
	Nombre      string        `json:"nombre"`
	Precio      float64       `json:"precio"`
	Descripcion string        `json:"descripcion,omitempty"`
	ImagenURL   string        `json:"imagenUrl,omitempty"`
	Categorias  []CategoryDTO `json:"categorias"`
	Notas       []NoteDTO     `json:"notas"`
}

func categoryToDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Nombre: c.Name}
}

func categoriesToDTOs(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, categoryToDTO(&rows[i]))
	}
	return out
}

func noteToDTO(n *models.OlfactoryNote) NoteDTO {
	return NoteDTO{ID: n.ID, Nombre: n.Name, Descripcion: n.Description}
}

func notesToDTOs(rows []models.OlfactoryNote) []NoteDTO {
	out := make([]NoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, noteToDTO(&rows[i]))
	}
	return out
}

func perfumeToDTO(p *models.Perfume) *PerfumeDTO {
	if p == nil {
		return nil
	}
	return &PerfumeDTO{
		ID:          p.ID,
		Nombre:      p.Name,
		Precio:      p.Price.InexactFloat64(),
		Descripcion: p.Description,
		ImagenURL:   p.ImageURL,
		Categorias:  categoriesToDTOs(p.Categories),
		Notas:       notesToDTOs(p.Notes),
	}
}

func perfumesToDTOs(rows []models.Perfume) []PerfumeDTO {
	out := make([]PerfumeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *perfumeToDTO(&rows[i]))
	}
	return out
}
