package repository

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia del registro de asistencia (solo inserción).
type AttendanceRepository interface {
	// Create inserta el evento y completa ID y Time (asignado por el servidor).
	Create(ctx context.Context, event *entity.AttendanceEvent) error
	// LastByEmployee devuelve la marcación más reciente del empleado o nil.
	LastByEmployee(ctx context.Context, employeeID int64) (*entity.AttendanceEvent, error)
	// ListRecent y ListByEmployee ordenan por time DESC, id DESC.
	ListRecent(ctx context.Context, limit int) ([]*entity.AttendanceEvent, error)
	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]*entity.AttendanceEvent, error)
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}
