package dto

// Límites de los listados de asistencia.
const (
	DefaultRecentLimit   = 500
	DefaultEmployeeLimit = 50
	MaxListLimit         = 500
)

// ClampLimit aplica el valor por defecto si limit <= 0 y lo acota a MaxListLimit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// SuccessResponse confirmación genérica.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RejectionResponse cuerpo de error para una marcación rechazada.
// Incluye los valores numéricos necesarios para que el cliente arme el mensaje sin recalcular.
type RejectionResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	ClientIP    string   `json:"client_ip,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	MaxAccuracy *float64 `json:"max_accuracy,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	Required    *float64 `json:"required,omitempty"`
}
