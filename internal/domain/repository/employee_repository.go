package repository

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Las lecturas puntuales devuelven (nil, nil) si no hay coincidencia.
type EmployeeRepository interface {
	// Create inserta el empleado y completa ID, CreatedAt y UpdatedAt.
	// Devuelve domain.ErrConflict si employee_code o mobile_ip ya existen.
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	// GetForUpdate obtiene el empleado y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Employee, error)
	GetByMobileIP(ctx context.Context, ip string) (*entity.Employee, error)
	// LastByCompany devuelve el empleado de la empresa con el ID más alto.
	LastByCompany(ctx context.Context, companyID int64) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Employee, error)
	// SetMobileIP vincula (ip != nil) o desvincula (ip == nil) la IP móvil.
	// Devuelve domain.ErrConflict si otra fila ya tiene esa IP y (nil, nil) si el empleado no existe.
	SetMobileIP(ctx context.Context, id int64, ip *string) (*entity.Employee, error)
	// Delete elimina el empleado; informa si existía.
	Delete(ctx context.Context, id int64) (bool, error)
}
