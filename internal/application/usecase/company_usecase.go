package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas y su configuración de geocerca.
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	employees repository.EmployeeRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, employees repository.EmployeeRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, employees: employees}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.RadiusMeters <= 0 {
		return nil, domain.NewValidationError("radius_meters", "debe ser mayor que cero")
	}
	if in.Code != "" {
		existing, err := uc.repo.GetByCode(ctx, in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	company := &entity.Company{
		Name:              in.Name,
		Code:              in.Code,
		Lat:               in.Lat,
		Lng:               in.Lng,
		RadiusMeters:      in.RadiusMeters,
		AllowMockLocation: in.AllowMockLocation,
		AllowVPN:          in.AllowVPN,
		DeviceLimit:       in.DeviceLimit,
		LogoURL:           in.LogoURL,
		BrandColor:        in.BrandColor,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// EnsureSeed crea la empresa si ninguna tiene ese código. Idempotente; usado al arrancar.
// Devuelve la empresa existente o la recién creada y si fue creada.
func (uc *CompanyUseCase) EnsureSeed(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, bool, error) {
	code := strings.TrimSpace(in.Code)
	if code != "" {
		existing, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return toCompanyResponse(existing), false, nil
		}
	}
	out, err := uc.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// GetSettings obtiene la empresa con su geocerca y políticas.
func (uc *CompanyUseCase) GetSettings(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// UpdateSettings aplica una actualización parcial. El radio debe seguir siendo > 0.
func (uc *CompanyUseCase) UpdateSettings(ctx context.Context, id int64, in dto.UpdateCompanySettingsRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		company.Name = name
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code != "" && code != company.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != company.ID {
				return nil, domain.ErrDuplicate
			}
		}
		company.Code = code
	}
	if in.RadiusMeters != nil {
		if *in.RadiusMeters <= 0 {
			return nil, domain.NewValidationError("radius_meters", "debe ser mayor que cero")
		}
		company.RadiusMeters = *in.RadiusMeters
	}
	if in.Lat != nil {
		company.Lat = *in.Lat
	}
	if in.Lng != nil {
		company.Lng = *in.Lng
	}
	if in.AllowMockLocation != nil {
		company.AllowMockLocation = *in.AllowMockLocation
	}
	if in.AllowVPN != nil {
		company.AllowVPN = *in.AllowVPN
	}
	if in.DeviceLimit != nil {
		company.DeviceLimit = *in.DeviceLimit
	}
	if in.LogoURL != nil {
		company.LogoURL = *in.LogoURL
	}
	if in.BrandColor != nil {
		company.BrandColor = *in.BrandColor
	}
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// ListEmployees lista los empleados de la empresa, el más reciente primero.
func (uc *CompanyUseCase) ListEmployees(ctx context.Context, companyID int64) ([]dto.EmployeeResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.employees.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}
