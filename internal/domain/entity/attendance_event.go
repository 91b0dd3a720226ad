package entity

import "time"

// Acciones de asistencia (value object conceptual).
const (
	ActionCheckIn  = "checkin"  // entrada
	ActionCheckOut = "checkout" // salida
)

// AttendanceEvent representa una marcación de asistencia. Inmutable una vez creada.
type AttendanceEvent struct {
	ID         int64
	EmployeeID int64
	CompanyID  int64 // desnormalizado desde el empleado
	Action     string // checkin, checkout
	Lat        float64
	Lng        float64
	Accuracy   float64 // metros
	IP         string
	DeviceID   string
	Time       time.Time // asignado por el servidor
}
