package dto

import "time"

// SubmitAttendanceBody cuerpo HTTP de una marcación. Los punteros permiten detectar campos ausentes.
type SubmitAttendanceBody struct {
	Lat      *float64 `json:"lat" validate:"required"`
	Lng      *float64 `json:"lng" validate:"required"`
	Accuracy *float64 `json:"accuracy" validate:"required,min=0"`
}

// SubmitAttendanceRequest entrada validada del caso de uso de marcación.
type SubmitAttendanceRequest struct {
	Address  string
	Lat      float64
	Lng      float64
	Accuracy float64
}

// AttendanceEventResponse salida de una marcación.
type AttendanceEventResponse struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	CompanyID  int64     `json:"company_id"`
	Action     string    `json:"action"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	IP         string    `json:"ip"`
	DeviceID   string    `json:"device_id"`
	Time       time.Time `json:"time"`
}

// SubmitAttendanceResponse confirmación de una marcación aceptada.
type SubmitAttendanceResponse struct {
	Success      bool                    `json:"success"`
	Action       string                  `json:"action"`
	Time         time.Time               `json:"time"`
	Distance     float64                 `json:"distance"`
	EmployeeName string                  `json:"employee_name"`
	EmployeeCode string                  `json:"employee_code"`
	Event        AttendanceEventResponse `json:"event"`
}

// AttendanceListResponse listado de marcaciones, más reciente primero.
type AttendanceListResponse struct {
	Items []AttendanceEventResponse `json:"items"`
	Limit int                       `json:"limit"`
}
