package entity

import "time"

// DefaultCompanyCode prefijo usado en los códigos de empleado cuando la empresa no define uno.
const DefaultCompanyCode = "EMP"

// Company representa una empresa con su geocerca y políticas de marcación.
type Company struct {
	ID                int64
	Name              string
	Code              string  // prefijo corto de los códigos de empleado (puede estar vacío)
	Lat               float64 // centro de la geocerca
	Lng               float64
	RadiusMeters      float64 // siempre > 0
	AllowMockLocation bool    // permite GPS de baja precisión
	AllowVPN          bool    // reservado
	DeviceLimit       bool    // reservado
	LogoURL           string
	BrandColor        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CodePrefix devuelve el prefijo para códigos de empleado.
func (c *Company) CodePrefix() string {
	if c == nil || c.Code == "" {
		return DefaultCompanyCode
	}
	return c.Code
}
