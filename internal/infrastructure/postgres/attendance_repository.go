package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, employee_id, company_id, action, lat, lng, accuracy, ip, device_id, time`

// AttendanceRepo implementación del registro de asistencia sobre PostgreSQL (usable con pool o tx).
// time lo asigna la base con clock_timestamp(); el desempate de orden es por id.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Create inserta la marcación y completa ID y Time.
func (r *AttendanceRepo) Create(ctx context.Context, event *entity.AttendanceEvent) error {
	query := `
		INSERT INTO attendance (employee_id, company_id, action, lat, lng, accuracy, ip, device_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, time`
	err := r.q.QueryRow(ctx, query,
		event.EmployeeID, event.CompanyID, event.Action,
		event.Lat, event.Lng, event.Accuracy, event.IP, event.DeviceID,
	).Scan(&event.ID, &event.Time)
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// LastByEmployee devuelve la marcación más reciente del empleado.
func (r *AttendanceRepo) LastByEmployee(ctx context.Context, employeeID int64) (*entity.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE employee_id = $1 ORDER BY time DESC, id DESC LIMIT 1`
	ev, err := scanAttendance(r.q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last attendance: %w", err)
	}
	return ev, nil
}

// ListRecent devuelve las últimas marcaciones globales.
func (r *AttendanceRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance ORDER BY time DESC, id DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListByEmployee devuelve las últimas marcaciones del empleado.
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]*entity.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE employee_id = $1 ORDER BY time DESC, id DESC LIMIT $2`
	return r.list(ctx, query, employeeID, limit)
}

// DeleteByEmployee elimina todas las marcaciones del empleado.
func (r *AttendanceRepo) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AttendanceEvent, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.AttendanceEvent, 0)
	for rows.Next() {
		ev, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

func scanAttendance(row rowScanner) (*entity.AttendanceEvent, error) {
	var ev entity.AttendanceEvent
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.Action,
		&ev.Lat, &ev.Lng, &ev.Accuracy, &ev.IP, &ev.DeviceID, &ev.Time,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
