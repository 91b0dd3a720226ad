package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/ports"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// Tamaños permitidos para el QR del carné.
const (
	DefaultQRSize = 128
	MaxQRSize     = 1024
)

// EmployeeUseCase registro, consulta y baja de empleados.
type EmployeeUseCase struct {
	txRunner  TxRunner
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	codes     CodeGenerator
	qr        ports.QREncoder
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	txRunner TxRunner,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	codes CodeGenerator,
	qr ports.QREncoder,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		txRunner:  txRunner,
		companies: companies,
		employees: employees,
		codes:     codes,
		qr:        qr,
	}
}

// Create registra un empleado con el próximo código de la empresa.
// La fila de la empresa queda bloqueada durante la transacción para que dos altas
// simultáneas no deriven el mismo código.
func (uc *EmployeeUseCase) Create(ctx context.Context, companyID int64, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.Name)
	department := strings.TrimSpace(in.Department)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	if department == "" {
		return nil, domain.NewValidationError("department", "el departamento es requerido")
	}
	var phone *string
	if p := strings.TrimSpace(in.Phone); p != "" {
		phone = &p
	}

	var created *entity.Employee
	err := uc.txRunner.Run(ctx, func(
		companies repository.CompanyRepository,
		employees repository.EmployeeRepository,
		_ repository.AttendanceRepository,
	) error {
		company, err := companies.GetForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		code, err := uc.codes.NextCode(ctx, companies, employees, companyID)
		if err != nil {
			return err
		}
		employee := &entity.Employee{
			CompanyID:    companyID,
			Name:         name,
			Department:   department,
			Phone:        phone,
			EmployeeCode: code,
			Status:       entity.EmployeeStatusActive,
		}
		if err := employees.Create(ctx, employee); err != nil {
			return err
		}
		created = employee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(created), nil
}

// NextCode devuelve el código que recibiría el próximo empleado de la empresa (solo lectura).
func (uc *EmployeeUseCase) NextCode(ctx context.Context, companyID int64) (*dto.NextCodeResponse, error) {
	code, err := uc.codes.NextCode(ctx, uc.companies, uc.employees, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.NextCodeResponse{EmployeeCode: code}, nil
}

// Get obtiene el empleado junto con su empresa.
func (uc *EmployeeUseCase) Get(ctx context.Context, id int64) (*dto.EmployeeDetailResponse, error) {
	employee, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(ctx, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.EmployeeDetailResponse{
		Employee: *toEmployeeResponse(employee),
		Company:  *toCompanyResponse(company),
	}, nil
}

// Delete elimina el empleado y sus marcaciones en una sola transacción.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.CompanyRepository,
		employees repository.EmployeeRepository,
		events repository.AttendanceRepository,
	) error {
		employee, err := employees.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrNotFound
		}
		if err := events.DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		_, err = employees.Delete(ctx, id)
		return err
	})
}

// QRCode genera el PNG del QR del carné con el código del empleado.
func (uc *EmployeeUseCase) QRCode(ctx context.Context, id int64, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		size = MaxQRSize
	}
	employee, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return uc.qr.EncodePNG(employee.EmployeeCode, size)
}
