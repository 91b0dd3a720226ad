package dto

import "time"

// CreateEmployeeRequest entrada para registrar un empleado (el código se genera en el servidor).
type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Phone      string `json:"phone"`
	Department string `json:"department" validate:"required,min=1,max=200"`
}

// BindIPRequest entrada para vincular la IP móvil de un empleado.
type BindIPRequest struct {
	IP string `json:"ip" validate:"required,ip"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	Phone        *string   `json:"phone"`
	EmployeeCode string    `json:"employee_code"`
	MobileIP     *string   `json:"mobile_ip"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmployeeDetailResponse empleado junto con su empresa.
type EmployeeDetailResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Company  CompanyResponse  `json:"company"`
}

// DetectResponse resultado de la autodetección del empleado por IP.
type DetectResponse struct {
	Detected bool              `json:"detected"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
	Company  *CompanyResponse  `json:"company,omitempty"`
	ClientIP string            `json:"client_ip"`
	Message  string            `json:"message,omitempty"`
}

// NextCodeResponse próximo código de empleado de una empresa.
type NextCodeResponse struct {
	EmployeeCode string `json:"employee_code"`
}
