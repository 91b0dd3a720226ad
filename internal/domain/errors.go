package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ValidationError indica un campo obligatorio ausente o con formato inválido.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnknownDeviceError la dirección que envía no está vinculada a ningún empleado.
// Address se devuelve al cliente para que el administrador pueda registrarla.
type UnknownDeviceError struct {
	Address string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("IP no registrada: %s", e.Address)
}

// LowAccuracyError la precisión GPS reportada supera el máximo permitido por la empresa.
type LowAccuracyError struct {
	Accuracy    float64
	MaxAccuracy float64
}

func (e *LowAccuracyError) Error() string {
	return fmt.Sprintf("precisión GPS insuficiente (%.0f m, máximo %.0f m)", e.Accuracy, e.MaxAccuracy)
}

// OutOfRangeError la posición está fuera del radio de la geocerca.
// Distance ya viene redondeada a metros enteros.
type OutOfRangeError struct {
	Distance float64
	Radius   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("fuera del rango de trabajo: distancia %.0f m, requerido menos de %.0f m", e.Distance, e.Radius)
}
