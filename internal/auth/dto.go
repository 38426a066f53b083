package auth

import (
	"github.com/jpcardenasg/esencia-backend/internal/users"
)

// AuthResult pairs the signed token with the flattened user it belongs to.
type AuthResult struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"usuario"`
}
