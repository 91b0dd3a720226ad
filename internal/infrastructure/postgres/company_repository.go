package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, company_code, lat, lng, radius_meters,
	allow_mock_location, allow_vpn, device_limit, logo_url, brand_color, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y completa ID y fechas.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (name, company_code, lat, lng, radius_meters,
			allow_mock_location, allow_vpn, device_limit, logo_url, brand_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		company.Name, company.Code, company.Lat, company.Lng, company.RadiusMeters,
		company.AllowMockLocation, company.AllowVPN, company.DeviceLimit,
		company.LogoURL, company.BrandColor,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetForUpdate obtiene la empresa y bloquea la fila (SELECT FOR UPDATE).
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode obtiene una empresa por su prefijo de código.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_code = $1 LIMIT 1`, code)
}

// Update actualiza la configuración de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, company_code = $3, lat = $4, lng = $5, radius_meters = $6,
			allow_mock_location = $7, allow_vpn = $8, device_limit = $9,
			logo_url = $10, brand_color = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		company.ID, company.Name, company.Code, company.Lat, company.Lng, company.RadiusMeters,
		company.AllowMockLocation, company.AllowVPN, company.DeviceLimit,
		company.LogoURL, company.BrandColor,
	).Scan(&company.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Lat, &c.Lng, &c.RadiusMeters,
		&c.AllowMockLocation, &c.AllowVPN, &c.DeviceLimit, &c.LogoURL, &c.BrandColor,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
