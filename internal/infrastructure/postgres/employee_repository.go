package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, name, department, phone, employee_code, mobile_ip, status, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
// La unicidad de employee_code y mobile_ip la garantizan índices únicos; una violación se traduce a domain.ErrConflict.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	query := `
		INSERT INTO employees (company_id, name, department, phone, employee_code, mobile_ip, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		employee.CompanyID, employee.Name, employee.Department, employee.Phone,
		employee.EmployeeCode, employee.MobileIP, employee.Status,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetForUpdate obtiene el empleado y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

// GetByMobileIP obtiene el empleado vinculado a la IP.
func (r *EmployeeRepo) GetByMobileIP(ctx context.Context, ip string) (*entity.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE mobile_ip = $1`, ip)
}

// LastByCompany devuelve el empleado de mayor ID de la empresa.
func (r *EmployeeRepo) LastByCompany(ctx context.Context, companyID int64) (*entity.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 ORDER BY id DESC LIMIT 1`, companyID)
}

// ListByCompany lista los empleados de la empresa por ID descendente.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 ORDER BY id DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SetMobileIP vincula o desvincula la IP móvil en una sola sentencia.
func (r *EmployeeRepo) SetMobileIP(ctx context.Context, id int64, ip *string) (*entity.Employee, error) {
	query := `
		UPDATE employees SET mobile_ip = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + employeeColumns
	e, err := scanEmployee(r.q.QueryRow(ctx, query, id, ip))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update employee mobile_ip: %w", err)
	}
	return e, nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func scanEmployee(row rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.Department, &e.Phone, &e.EmployeeCode,
		&e.MobileIP, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
