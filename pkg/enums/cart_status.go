package enums

import "fmt"

// CartStatus tracks the lifecycle of a shopping cart. A user has at most one
// ACTIVO cart; checkout moves it to PROCESADO and duplicate actives found
// during reads are demoted to INACTIVO.
type CartStatus string

const (
	CartStatusActivo    CartStatus = "ACTIVO"
	CartStatusProcesado CartStatus = "PROCESADO"
	CartStatusInactivo  CartStatus = "INACTIVO"
)

var validCartStatuses = []CartStatus{
	CartStatusActivo,
	CartStatusProcesado,
	CartStatusInactivo,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
