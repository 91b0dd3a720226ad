package usecase

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada queda visible; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		employees repository.EmployeeRepository,
		events repository.AttendanceRepository,
	) error) error
}
