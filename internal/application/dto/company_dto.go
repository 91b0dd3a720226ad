package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name              string  `json:"name" validate:"required,min=1,max=200"`
	Code              string  `json:"company_code" validate:"omitempty,max=20"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	RadiusMeters      float64 `json:"radius_meters" validate:"gt=0"`
	AllowMockLocation bool    `json:"allow_mock_location"`
	AllowVPN          bool    `json:"allow_vpn"`
	DeviceLimit       bool    `json:"device_limit"`
	LogoURL           string  `json:"logo_url"`
	BrandColor        string  `json:"brand_color"`
}

// UpdateCompanySettingsRequest entrada para actualizar la configuración (campos opcionales).
type UpdateCompanySettingsRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Code              *string  `json:"company_code" validate:"omitempty,max=20"`
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	RadiusMeters      *float64 `json:"radius_meters" validate:"omitempty,gt=0"`
	AllowMockLocation *bool    `json:"allow_mock_location"`
	AllowVPN          *bool    `json:"allow_vpn"`
	DeviceLimit       *bool    `json:"device_limit"`
	LogoURL           *string  `json:"logo_url"`
	BrandColor        *string  `json:"brand_color"`
}

// CompanyResponse salida de una empresa con su geocerca y políticas.
type CompanyResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"company_code"`
	Lat               float64   `json:"lat"`
	Lng               float64   `json:"lng"`
	RadiusMeters      float64   `json:"radius_meters"`
	AllowMockLocation bool      `json:"allow_mock_location"`
	AllowVPN          bool      `json:"allow_vpn"`
	DeviceLimit       bool      `json:"device_limit"`
	LogoURL           string    `json:"logo_url,omitempty"`
	BrandColor        string    `json:"brand_color,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
