package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.EmployeeRepository   = (*EmployeeRepo)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepo)(nil)
	_ usecase.TxRunner                = (*Store)(nil)
)

// Store almacén en memoria seguro para concurrencia (desarrollo y tests).
// Un único mutex protege todas las tablas; Run lo mantiene tomado durante toda la
// transacción, lo que serializa las secuencias leer-decidir-escribir.
type Store struct {
	mu sync.Mutex

	companies map[int64]*entity.Company
	employees map[int64]*entity.Employee
	events    []*entity.AttendanceEvent

	// índices únicos
	byMobileIP map[string]int64
	byCode     map[string]int64

	nextCompanyID  int64
	nextEmployeeID int64
	nextEventID    int64
	lastEventTime  time.Time

	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:  make(map[int64]*entity.Company),
		employees:  make(map[int64]*entity.Employee),
		byMobileIP: make(map[string]int64),
		byCode:     make(map[string]int64),
		now:        time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Companies devuelve el repositorio de empresas con bloqueo por operación.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s, lock: true} }

// Employees devuelve el repositorio de empleados con bloqueo por operación.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s, lock: true} }

// Attendance devuelve el repositorio de marcaciones con bloqueo por operación.
func (s *Store) Attendance() *AttendanceRepo { return &AttendanceRepo{s: s, lock: true} }

// Run ejecuta fn con el almacén bloqueado. Los repositorios escriben sobre una copia
// de trabajo que solo se publica si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	events repository.AttendanceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	err := fn(
		&CompanyRepo{s: s},
		&EmployeeRepo{s: s},
		&AttendanceRepo{s: s},
	)
	if err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeState struct {
	companies      map[int64]*entity.Company
	employees      map[int64]*entity.Employee
	events         []*entity.AttendanceEvent
	byMobileIP     map[string]int64
	byCode         map[string]int64
	nextCompanyID  int64
	nextEmployeeID int64
	nextEventID    int64
	lastEventTime  time.Time
}

// snapshot copia superficial de los índices; las entidades se reemplazan, nunca se mutan en sitio.
func (s *Store) snapshot() storeState {
	st := storeState{
		companies:      make(map[int64]*entity.Company, len(s.companies)),
		employees:      make(map[int64]*entity.Employee, len(s.employees)),
		events:         append([]*entity.AttendanceEvent(nil), s.events...),
		byMobileIP:     make(map[string]int64, len(s.byMobileIP)),
		byCode:         make(map[string]int64, len(s.byCode)),
		nextCompanyID:  s.nextCompanyID,
		nextEmployeeID: s.nextEmployeeID,
		nextEventID:    s.nextEventID,
		lastEventTime:  s.lastEventTime,
	}
	for k, v := range s.companies {
		st.companies[k] = v
	}
	for k, v := range s.employees {
		st.employees[k] = v
	}
	for k, v := range s.byMobileIP {
		st.byMobileIP[k] = v
	}
	for k, v := range s.byCode {
		st.byCode[k] = v
	}
	return st
}

func (s *Store) restore(st storeState) {
	s.companies = st.companies
	s.employees = st.employees
	s.events = st.events
	s.byMobileIP = st.byMobileIP
	s.byCode = st.byCode
	s.nextCompanyID = st.nextCompanyID
	s.nextEmployeeID = st.nextEmployeeID
	s.nextEventID = st.nextEventID
	s.lastEventTime = st.lastEventTime
}

// eventTime devuelve un instante estrictamente mayor que el de la marcación anterior.
func (s *Store) eventTime() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastEventTime) {
		t = s.lastEventTime.Add(time.Nanosecond)
	}
	s.lastEventTime = t
	return t
}

// ─── Companies ───────────────────────────────────────────────────────────────

// CompanyRepo implementación en memoria de repository.CompanyRepository.
type CompanyRepo struct {
	s    *Store
	lock bool
}

func (r *CompanyRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// Create persiste una nueva empresa y asigna su ID.
func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	defer r.acquire()()
	s := r.s
	s.nextCompanyID++
	now := s.now().UTC()
	c := *company
	c.ID = s.nextCompanyID
	c.CreatedAt = now
	c.UpdatedAt = now
	s.companies[c.ID] = &c
	*company = c
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	defer r.acquire()()
	return copyCompany(r.s.companies[id]), nil
}

// GetForUpdate igual que GetByID; el bloqueo lo da Run.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

// GetByCode obtiene una empresa por su prefijo de código.
func (r *CompanyRepo) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	defer r.acquire()()
	for _, c := range r.s.companies {
		if c.Code == code {
			return copyCompany(c), nil
		}
	}
	return nil, nil
}

// Update reemplaza la empresa existente.
func (r *CompanyRepo) Update(_ context.Context, company *entity.Company) error {
	defer r.acquire()()
	s := r.s
	current, ok := s.companies[company.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *company
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now().UTC()
	s.companies[c.ID] = &c
	*company = c
	return nil
}

func copyCompany(c *entity.Company) *entity.Company {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// ─── Employees ───────────────────────────────────────────────────────────────

// EmployeeRepo implementación en memoria de repository.EmployeeRepository.
type EmployeeRepo struct {
	s    *Store
	lock bool
}

func (r *EmployeeRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// Create persiste un empleado respetando la unicidad de employee_code y mobile_ip.
func (r *EmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	defer r.acquire()()
	s := r.s
	if _, taken := s.byCode[employee.EmployeeCode]; taken {
		return domain.ErrConflict
	}
	if employee.HasMobileIP() {
		if _, taken := s.byMobileIP[*employee.MobileIP]; taken {
			return domain.ErrConflict
		}
	}
	s.nextEmployeeID++
	now := s.now().UTC()
	e := copyEmployee(employee)
	e.ID = s.nextEmployeeID
	e.CreatedAt = now
	e.UpdatedAt = now
	s.employees[e.ID] = e
	s.byCode[e.EmployeeCode] = e.ID
	if e.HasMobileIP() {
		s.byMobileIP[*e.MobileIP] = e.ID
	}
	*employee = *copyEmployee(e)
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	defer r.acquire()()
	return copyEmployee(r.s.employees[id]), nil
}

// GetForUpdate igual que GetByID; el bloqueo lo da Run.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.GetByID(ctx, id)
}

// GetByMobileIP obtiene el empleado vinculado a la IP.
func (r *EmployeeRepo) GetByMobileIP(_ context.Context, ip string) (*entity.Employee, error) {
	defer r.acquire()()
	id, ok := r.s.byMobileIP[ip]
	if !ok {
		return nil, nil
	}
	return copyEmployee(r.s.employees[id]), nil
}

// LastByCompany devuelve el empleado de mayor ID de la empresa.
func (r *EmployeeRepo) LastByCompany(_ context.Context, companyID int64) (*entity.Employee, error) {
	defer r.acquire()()
	var last *entity.Employee
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && (last == nil || e.ID > last.ID) {
			last = e
		}
	}
	return copyEmployee(last), nil
}

// ListByCompany lista los empleados de la empresa por ID descendente.
func (r *EmployeeRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Employee, error) {
	defer r.acquire()()
	list := make([]*entity.Employee, 0)
	for _, e := range r.s.employees {
		if e.CompanyID == companyID {
			list = append(list, copyEmployee(e))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// SetMobileIP comprueba y asigna la IP bajo el mismo bloqueo (equivalente al índice único).
func (r *EmployeeRepo) SetMobileIP(_ context.Context, id int64, ip *string) (*entity.Employee, error) {
	defer r.acquire()()
	s := r.s
	current, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	if ip != nil {
		if holder, taken := s.byMobileIP[*ip]; taken && holder != id {
			return nil, domain.ErrConflict
		}
	}
	e := copyEmployee(current)
	if e.HasMobileIP() {
		delete(s.byMobileIP, *e.MobileIP)
	}
	e.MobileIP = nil
	if ip != nil && *ip != "" {
		v := *ip
		e.MobileIP = &v
		s.byMobileIP[v] = id
	}
	e.UpdatedAt = s.now().UTC()
	s.employees[id] = e
	return copyEmployee(e), nil
}

// Delete elimina el empleado y libera sus índices únicos.
func (r *EmployeeRepo) Delete(_ context.Context, id int64) (bool, error) {
	defer r.acquire()()
	s := r.s
	e, ok := s.employees[id]
	if !ok {
		return false, nil
	}
	delete(s.employees, id)
	delete(s.byCode, e.EmployeeCode)
	if e.HasMobileIP() {
		delete(s.byMobileIP, *e.MobileIP)
	}
	return true, nil
}

func copyEmployee(e *entity.Employee) *entity.Employee {
	if e == nil {
		return nil
	}
	out := *e
	if e.Phone != nil {
		p := *e.Phone
		out.Phone = &p
	}
	if e.MobileIP != nil {
		ip := *e.MobileIP
		out.MobileIP = &ip
	}
	return &out
}

// ─── Attendance ──────────────────────────────────────────────────────────────

// AttendanceRepo implementación en memoria de repository.AttendanceRepository.
// s.events se mantiene en orden de inserción, que coincide con el orden por time.
type AttendanceRepo struct {
	s    *Store
	lock bool
}

func (r *AttendanceRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// Create agrega la marcación asignando ID y Time.
func (r *AttendanceRepo) Create(_ context.Context, event *entity.AttendanceEvent) error {
	defer r.acquire()()
	s := r.s
	s.nextEventID++
	ev := *event
	ev.ID = s.nextEventID
	ev.Time = s.eventTime()
	s.events = append(s.events, &ev)
	*event = ev
	return nil
}

// LastByEmployee devuelve la marcación más reciente del empleado.
func (r *AttendanceRepo) LastByEmployee(_ context.Context, employeeID int64) (*entity.AttendanceEvent, error) {
	defer r.acquire()()
	events := r.s.events
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].EmployeeID == employeeID {
			ev := *events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

// ListRecent devuelve las últimas marcaciones globales.
func (r *AttendanceRepo) ListRecent(_ context.Context, limit int) ([]*entity.AttendanceEvent, error) {
	defer r.acquire()()
	return r.s.collectEvents(limit, func(*entity.AttendanceEvent) bool { return true }), nil
}

// ListByEmployee devuelve las últimas marcaciones del empleado.
func (r *AttendanceRepo) ListByEmployee(_ context.Context, employeeID int64, limit int) ([]*entity.AttendanceEvent, error) {
	defer r.acquire()()
	return r.s.collectEvents(limit, func(ev *entity.AttendanceEvent) bool { return ev.EmployeeID == employeeID }), nil
}

// DeleteByEmployee elimina todas las marcaciones del empleado.
func (r *AttendanceRepo) DeleteByEmployee(_ context.Context, employeeID int64) error {
	defer r.acquire()()
	kept := make([]*entity.AttendanceEvent, 0, len(r.s.events))
	for _, ev := range r.s.events {
		if ev.EmployeeID != employeeID {
			kept = append(kept, ev)
		}
	}
	r.s.events = kept
	return nil
}

func (s *Store) collectEvents(limit int, match func(*entity.AttendanceEvent) bool) []*entity.AttendanceEvent {
	list := make([]*entity.AttendanceEvent, 0)
	for i := len(s.events) - 1; i >= 0 && (limit <= 0 || len(list) < limit); i-- {
		if match(s.events[i]) {
			ev := *s.events[i]
			list = append(list, &ev)
		}
	}
	return list
}
