package users

import (
	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// UserDTO is the one-way wire view of a user. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	Correo string    `json:"correo"`
	Rol    string    `json:"rol"`
}

// ToDTO flattens a user model.
func ToDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:     user.ID,
		Nombre: user.Name,
		Correo: user.Email,
		Rol:    string(user.Role),
	}
}

// ToDTOs flattens a slice of user models.
func ToDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *ToDTO(&users[i]))
	}
	return out
}
