package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// AttendanceConfig parámetros de la política de marcación.
type AttendanceConfig struct {
	MaxAccuracyMeters float64 // 0 = attendance.DefaultMaxAccuracyMeters
}

// AttendanceUseCase máquina de estados entrada/salida con verificación de geocerca.
type AttendanceUseCase struct {
	txRunner  TxRunner
	identity  *IdentityUseCase
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	events    repository.AttendanceRepository
	cfg       AttendanceConfig
	log       zerolog.Logger
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(
	txRunner TxRunner,
	identity *IdentityUseCase,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	events repository.AttendanceRepository,
	cfg AttendanceConfig,
	log zerolog.Logger,
) *AttendanceUseCase {
	if cfg.MaxAccuracyMeters <= 0 {
		cfg.MaxAccuracyMeters = attendance.DefaultMaxAccuracyMeters
	}
	return &AttendanceUseCase{
		txRunner:  txRunner,
		identity:  identity,
		companies: companies,
		employees: employees,
		events:    events,
		cfg:       cfg,
		log:       log.With().Str("component", "attendance").Logger(),
	}
}

// Submit registra la próxima marcación del empleado vinculado a in.Address.
//
//  1. IP sin empleado → *domain.UnknownDeviceError
//  2. empresa sin ubicación simulada y accuracy > máximo → *domain.LowAccuracyError
//  3. distancia > radio → *domain.OutOfRangeError
//  4. en una transacción: bloquea al empleado, lee su última marcación, decide la acción e inserta
//
// Un rechazo no deja nada persistido.
func (uc *AttendanceUseCase) Submit(ctx context.Context, in dto.SubmitAttendanceRequest) (*dto.SubmitAttendanceResponse, error) {
	employee, err := uc.identity.ResolveByAddress(ctx, in.Address)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		uc.log.Warn().Str("client_ip", in.Address).Msg("marcación desde IP no registrada")
		return nil, &domain.UnknownDeviceError{Address: in.Address}
	}

	company, err := uc.companies.GetByID(ctx, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	distance, err := attendance.Evaluate(company, in.Lat, in.Lng, in.Accuracy, uc.cfg.MaxAccuracyMeters)
	if err != nil {
		uc.logRejection(employee, in, err)
		return nil, err
	}

	var event *entity.AttendanceEvent
	err = uc.txRunner.Run(ctx, func(
		_ repository.CompanyRepository,
		employees repository.EmployeeRepository,
		events repository.AttendanceRepository,
	) error {
		// Serializa lectura-decisión-inserción por empleado.
		locked, err := employees.GetForUpdate(ctx, employee.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		last, err := events.LastByEmployee(ctx, employee.ID)
		if err != nil {
			return err
		}
		ev := &entity.AttendanceEvent{
			EmployeeID: employee.ID,
			CompanyID:  company.ID,
			Action:     attendance.NextActionAfter(last),
			Lat:        in.Lat,
			Lng:        in.Lng,
			Accuracy:   in.Accuracy,
			IP:         in.Address,
			DeviceID:   in.Address,
		}
		if err := events.Create(ctx, ev); err != nil {
			return err
		}
		event = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	rounded := math.Round(distance)
	uc.log.Info().
		Int64("employee_id", employee.ID).
		Int64("company_id", company.ID).
		Str("action", event.Action).
		Float64("distance", rounded).
		Msg("marcación registrada")

	return &dto.SubmitAttendanceResponse{
		Success:      true,
		Action:       event.Action,
		Time:         event.Time,
		Distance:     rounded,
		EmployeeName: employee.Name,
		EmployeeCode: employee.EmployeeCode,
		Event:        *toAttendanceEventResponse(event),
	}, nil
}

// ListRecent últimas marcaciones de todas las empresas (tablero).
func (uc *AttendanceUseCase) ListRecent(ctx context.Context, limit int) (*dto.AttendanceListResponse, error) {
	limit = dto.ClampLimit(limit, dto.DefaultRecentLimit)
	list, err := uc.events.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toAttendanceList(list, limit), nil
}

// ListForEmployee historial del empleado, más reciente primero.
func (uc *AttendanceUseCase) ListForEmployee(ctx context.Context, employeeID int64, limit int) (*dto.AttendanceListResponse, error) {
	limit = dto.ClampLimit(limit, dto.DefaultEmployeeLimit)
	employee, err := uc.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.events.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}
	return toAttendanceList(list, limit), nil
}

func (uc *AttendanceUseCase) logRejection(employee *entity.Employee, in dto.SubmitAttendanceRequest, err error) {
	evt := uc.log.Warn().Int64("employee_id", employee.ID).Str("client_ip", in.Address)
	var lowErr *domain.LowAccuracyError
	var rangeErr *domain.OutOfRangeError
	switch {
	case errors.As(err, &lowErr):
		evt.Str("reason", "low_accuracy").Float64("accuracy", lowErr.Accuracy)
	case errors.As(err, &rangeErr):
		evt.Str("reason", "out_of_range").Float64("distance", rangeErr.Distance).Float64("required", rangeErr.Radius)
	}
	evt.Msg("marcación rechazada")
}
