package usecase

import (
	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Code:              c.Code,
		Lat:               c.Lat,
		Lng:               c.Lng,
		RadiusMeters:      c.RadiusMeters,
		AllowMockLocation: c.AllowMockLocation,
		AllowVPN:          c.AllowVPN,
		DeviceLimit:       c.DeviceLimit,
		LogoURL:           c.LogoURL,
		BrandColor:        c.BrandColor,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		Name:         e.Name,
		Department:   e.Department,
		Phone:        e.Phone,
		EmployeeCode: e.EmployeeCode,
		MobileIP:     e.MobileIP,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toAttendanceEventResponse(ev *entity.AttendanceEvent) *dto.AttendanceEventResponse {
	if ev == nil {
		return nil
	}
	return &dto.AttendanceEventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		CompanyID:  ev.CompanyID,
		Action:     ev.Action,
		Lat:        ev.Lat,
		Lng:        ev.Lng,
		Accuracy:   ev.Accuracy,
		IP:         ev.IP,
		DeviceID:   ev.DeviceID,
		Time:       ev.Time,
	}
}

func toAttendanceList(events []*entity.AttendanceEvent, limit int) *dto.AttendanceListResponse {
	items := make([]dto.AttendanceEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, *toAttendanceEventResponse(ev))
	}
	return &dto.AttendanceListResponse{Items: items, Limit: limit}
}
