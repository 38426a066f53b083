package custom

import (
	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// CustomPerfumeDTO is the flattened wire view of a custom blend.
type CustomPerfumeDTO struct {
	ID          uuid.UUID         `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion string            `json:"descripcion,omitempty"`
	Precio      float64           `json:"precio"`
	Aprobado    bool              `json:"aprobado"`
	ImagenURL   string            `json:"imagenUrl,omitempty"`
	UsuarioID   uuid.UUID         `json:"usuarioId"`
	Notas       []catalog.NoteDTO `json:"notas"`
}

// ToDTO flattens a custom perfume model.
func ToDTO(p *models.CustomPerfume) *CustomPerfumeDTO {
	if p == nil {
		return nil
	}
	notas := make([]catalog.NoteDTO, 0, len(p.Notes))
	for i := range p.Notes {
		note := &p.Notes[i]
		notas = append(notas, catalog.NoteDTO{ID: note.ID, Nombre: note.Name, Descripcion: note.Description})
	}
	return &CustomPerfumeDTO{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price.InexactFloat64(),
		Aprobado:    p.Approved,
		ImagenURL:   p.ImageURL,
		UsuarioID:   p.UserID,
		Notas:       notas,
	}
}

// ToDTOs flattens a slice of custom perfumes.
func ToDTOs(rows []models.CustomPerfume) []CustomPerfumeDTO {
	out := make([]CustomPerfumeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out
}
