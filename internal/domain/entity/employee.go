package entity

import "time"

// Estados válidos para Employee.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// Employee representa un empleado de una Company.
type Employee struct {
	ID           int64
	CompanyID    int64
	Name         string
	Department   string
	Phone        *string // opcional
	EmployeeCode string  // {prefijo}-EMP-{000001}
	MobileIP     *string // nil = sin dispositivo vinculado; único entre empleados
	Status       string  // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMobileIP informa si el empleado tiene una IP móvil vinculada.
func (e *Employee) HasMobileIP() bool {
	return e.MobileIP != nil && *e.MobileIP != ""
}
