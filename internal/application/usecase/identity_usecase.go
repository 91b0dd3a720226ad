package usecase

import (
	"context"
	"net"
	"strings"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// IdentityUseCase resuelve el empleado a partir de la IP del cliente y administra el vínculo IP ↔ empleado.
type IdentityUseCase struct {
	employees repository.EmployeeRepository
	companies repository.CompanyRepository
}

// NewIdentityUseCase construye el caso de uso.
func NewIdentityUseCase(employees repository.EmployeeRepository, companies repository.CompanyRepository) *IdentityUseCase {
	return &IdentityUseCase{employees: employees, companies: companies}
}

// ResolveByAddress devuelve el empleado vinculado a la dirección, o (nil, nil) si no hay ninguno.
// "No detectado" es un resultado normal, no un error.
func (uc *IdentityUseCase) ResolveByAddress(ctx context.Context, address string) (*entity.Employee, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}
	return uc.employees.GetByMobileIP(ctx, address)
}

// Detect autodetección para la app móvil: empleado y empresa si la IP está vinculada.
func (uc *IdentityUseCase) Detect(ctx context.Context, address string) (*dto.DetectResponse, error) {
	employee, err := uc.ResolveByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return &dto.DetectResponse{Detected: false, ClientIP: address, Message: "IP no registrada"}, nil
	}
	company, err := uc.companies.GetByID(ctx, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	return &dto.DetectResponse{
		Detected: true,
		Employee: toEmployeeResponse(employee),
		Company:  toCompanyResponse(company),
		ClientIP: address,
	}, nil
}

// Bind vincula la IP al empleado. Devuelve domain.ErrConflict si otro empleado ya la tiene.
// La verificación previa da un error claro; el índice único en el almacén cierra la carrera
// entre dos vínculos simultáneos.
func (uc *IdentityUseCase) Bind(ctx context.Context, employeeID int64, address string) (*dto.EmployeeResponse, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.NewValidationError("ip", "es requerida")
	}
	if net.ParseIP(address) == nil {
		return nil, domain.NewValidationError("ip", "formato de IP inválido")
	}
	holder, err := uc.employees.GetByMobileIP(ctx, address)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != employeeID {
		return nil, domain.ErrConflict
	}
	employee, err := uc.employees.SetMobileIP(ctx, employeeID, &address)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(employee), nil
}

// Unbind elimina la IP vinculada sin condiciones. Idempotente.
func (uc *IdentityUseCase) Unbind(ctx context.Context, employeeID int64) (*dto.EmployeeResponse, error) {
	employee, err := uc.employees.SetMobileIP(ctx, employeeID, nil)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(employee), nil
}
