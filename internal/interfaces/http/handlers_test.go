package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/qrcode"
	apphttp "github.com/jhoicas/asistencia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	officeLat = 4.60971
	officeLng = -74.08175
)

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	identityUC := usecase.NewIdentityUseCase(store.Employees(), store.Companies())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:    "asistencia-test",
		CompanyUC:  usecase.NewCompanyUseCase(store.Companies(), store.Employees()),
		EmployeeUC: usecase.NewEmployeeUseCase(store, store.Companies(), store.Employees(), usecase.NewSequentialCodeGenerator(), qrcode.NewEncoder()),
		IdentityUC: identityUC,
		AttendanceUC: usecase.NewAttendanceUseCase(store, identityUC, store.Companies(), store.Employees(), store.Attendance(),
			usecase.AttendanceConfig{MaxAccuracyMeters: 50}, zerolog.Nop()),
		Logger: zerolog.Nop(),
	})
	return app
}

// doJSON lanza la petición con cuerpo JSON opcional y cabeceras extra.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func fromIP(ip string) map[string]string {
	return map[string]string{"X-Forwarded-For": ip}
}

// seedCompany crea la empresa y n empleados; devuelve sus IDs.
func seedCompany(t *testing.T, app *fiber.App, n int) (int64, []int64) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/companies", dto.CreateCompanyRequest{
		Name: "Acme", Code: "ACME", Lat: officeLat, Lng: officeLng, RadiusMeters: 100,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	company := decode[dto.CompanyResponse](t, resp)

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/companies/%d/employees", company.ID),
			dto.CreateEmployeeRequest{Name: fmt.Sprintf("Empleado %d", i+1), Department: "Operaciones"}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[dto.EmployeeResponse](t, resp).ID)
	}
	return company.ID, ids
}

func bind(t *testing.T, app *fiber.App, employeeID int64, ip string) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/employees/%d/ip", employeeID), dto.BindIPRequest{IP: ip}, nil)
}

func submit(t *testing.T, app *fiber.App, ip string, lat, lng, accuracy float64) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodPost, "/api/attendance",
		map[string]float64{"lat": lat, "lng": lng, "accuracy": accuracy}, fromIP(ip))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de marcación
// ──────────────────────────────────────────────────────────────────────────────

func TestAttendance_EntradaSalidaYDispositivoDesconocido(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 1)
	require.Equal(t, http.StatusOK, bind(t, app, ids[0], "10.0.0.5").StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/attendance",
		map[string]float64{"lat": officeLat, "lng": officeLng, "accuracy": 10},
		fromIP("10.0.0.5, 172.16.0.1"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[dto.SubmitAttendanceResponse](t, resp)
	assert.True(t, first.Success)
	assert.Equal(t, "checkin", first.Action)
	assert.Equal(t, 0.0, first.Distance)
	assert.Equal(t, "ACME-EMP-000001", first.EmployeeCode)
	assert.Equal(t, "10.0.0.5", first.Event.IP)

	resp = submit(t, app, "10.0.0.5", officeLat, officeLng, 10)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[dto.SubmitAttendanceResponse](t, resp)
	assert.Equal(t, "checkout", second.Action)
	assert.False(t, second.Time.Before(first.Time))

	resp = submit(t, app, "10.0.0.99", officeLat, officeLng, 10)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	rej := decode[dto.RejectionResponse](t, resp)
	assert.Equal(t, apphttp.CodeUnknownDevice, rej.Code)
	assert.Equal(t, "10.0.0.99", rej.ClientIP)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%d/attendance", ids[0]), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.AttendanceListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "checkout", list.Items[0].Action)
	assert.Equal(t, "checkin", list.Items[1].Action)
	assert.Equal(t, dto.DefaultEmployeeLimit, list.Limit)
}

func TestAttendance_RechazosNoPersisten(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 1)
	require.Equal(t, http.StatusOK, bind(t, app, ids[0], "10.0.0.5").StatusCode)

	resp := submit(t, app, "10.0.0.5", officeLat, officeLng, 51)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	low := decode[dto.RejectionResponse](t, resp)
	assert.Equal(t, apphttp.CodeLowAccuracy, low.Code)
	require.NotNil(t, low.Accuracy)
	require.NotNil(t, low.MaxAccuracy)
	assert.Equal(t, 51.0, *low.Accuracy)
	assert.Equal(t, 50.0, *low.MaxAccuracy)

	// ~1.1 km al norte
	resp = submit(t, app, "10.0.0.5", officeLat+0.01, officeLng, 10)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	far := decode[dto.RejectionResponse](t, resp)
	assert.Equal(t, apphttp.CodeOutOfRange, far.Code)
	require.NotNil(t, far.Distance)
	require.NotNil(t, far.Required)
	assert.Greater(t, *far.Distance, 1000.0)
	assert.Equal(t, 100.0, *far.Required)

	resp = doJSON(t, app, http.MethodGet, "/api/attendance", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.AttendanceListResponse](t, resp).Items)

	// la siguiente marcación aceptada sigue siendo una entrada
	resp = submit(t, app, "10.0.0.5", officeLat, officeLng, 10)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "checkin", decode[dto.SubmitAttendanceResponse](t, resp).Action)
}

func TestAttendance_ValidacionDelCuerpo(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/attendance", map[string]float64{"lat": 1, "lng": 2}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/attendance", map[string]float64{"lat": 1, "lng": 2, "accuracy": -1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/attendance", bytes.NewBufferString("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidBody, decode[dto.ErrorResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// IP del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestDetect_PrecedenciaDeCabeceras(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"sin cabeceras", nil, "127.0.0.1"},
		{"solo X-Real-IP", map[string]string{"X-Real-IP": "192.168.1.7"}, "192.168.1.7"},
		{"X-Forwarded-For gana", map[string]string{"X-Forwarded-For": " 10.1.1.1 , 10.2.2.2", "X-Real-IP": "192.168.1.7"}, "10.1.1.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, "/api/employees/detect", nil, tc.headers)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			out := decode[dto.DetectResponse](t, resp)
			assert.False(t, out.Detected)
			assert.Equal(t, tc.want, out.ClientIP)
		})
	}
}

func TestDetect_EmpleadoVinculado(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 1)
	require.Equal(t, http.StatusOK, bind(t, app, ids[0], "10.0.0.5").StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/employees/detect", nil, map[string]string{"X-Real-IP": "10.0.0.5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DetectResponse](t, resp)
	assert.True(t, out.Detected)
	require.NotNil(t, out.Employee)
	require.NotNil(t, out.Company)
	assert.Equal(t, ids[0], out.Employee.ID)
	assert.Equal(t, "ACME", out.Company.Code)
}

func TestRequestID_SeDevuelveEnLaRespuesta(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	resp = doJSON(t, app, http.MethodGet, "/health", nil, map[string]string{apphttp.HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestResolveClientIP(t *testing.T) {
	assert.Equal(t, "1.1.1.1", apphttp.ResolveClientIP("1.1.1.1,2.2.2.2", "3.3.3.3"))
	assert.Equal(t, "3.3.3.3", apphttp.ResolveClientIP(" , 2.2.2.2", "3.3.3.3"))
	assert.Equal(t, "3.3.3.3", apphttp.ResolveClientIP("", " 3.3.3.3 "))
	assert.Equal(t, apphttp.FallbackClientIP, apphttp.ResolveClientIP("", ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados y empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployees_CodigosSecuenciales(t *testing.T) {
	app := buildTestApp(t)
	companyID, ids := seedCompany(t, app, 2)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%d", ids[1]), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.EmployeeDetailResponse](t, resp)
	assert.Equal(t, "ACME-EMP-000002", detail.Employee.EmployeeCode)
	assert.Equal(t, companyID, detail.Company.ID)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/companies/%d/next-code", companyID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ACME-EMP-000003", decode[dto.NextCodeResponse](t, resp).EmployeeCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/companies/%d/employees", companyID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.EmployeeResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, ids[1], list[0].ID)
}

func TestEmployees_VinculoDeIP(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 2)

	require.Equal(t, http.StatusOK, bind(t, app, ids[0], "10.0.0.5").StatusCode)
	// re-vincular la misma IP al mismo empleado es válido
	assert.Equal(t, http.StatusOK, bind(t, app, ids[0], "10.0.0.5").StatusCode)

	resp := bind(t, app, ids[1], "10.0.0.5")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, apphttp.CodeConflict, decode[dto.ErrorResponse](t, resp).Code)

	resp = bind(t, app, ids[1], "no-es-ip")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/employees/%d/ip", ids[0]), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.EmployeeResponse](t, resp).MobileIP)

	resp = bind(t, app, ids[1], "10.0.0.5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.EmployeeResponse](t, resp)
	require.NotNil(t, out.MobileIP)
	assert.Equal(t, "10.0.0.5", *out.MobileIP)
}

func TestEmployees_EliminarYNoEncontrado(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 1)
	path := fmt.Sprintf("/api/employees/%d", ids[0])

	resp := doJSON(t, app, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SuccessResponse](t, resp).Success)

	resp = doJSON(t, app, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/employees/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployees_QR(t *testing.T) {
	app := buildTestApp(t)
	_, ids := seedCompany(t, app, 1)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%d/qr?size=200", ids[0]), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestCompanies_Settings(t *testing.T) {
	app := buildTestApp(t)
	companyID, _ := seedCompany(t, app, 0)
	path := fmt.Sprintf("/api/companies/%d/settings", companyID)

	radius := 250.0
	allow := true
	resp := doJSON(t, app, http.MethodPut, path, dto.UpdateCompanySettingsRequest{RadiusMeters: &radius, AllowMockLocation: &allow}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.CompanyResponse](t, resp)
	assert.Equal(t, 250.0, updated.RadiusMeters)
	assert.True(t, updated.AllowMockLocation)
	assert.Equal(t, "Acme", updated.Name)

	zero := 0.0
	resp = doJSON(t, app, http.MethodPut, path, dto.UpdateCompanySettingsRequest{RadiusMeters: &zero}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 250.0, decode[dto.CompanyResponse](t, resp).RadiusMeters)

	resp = doJSON(t, app, http.MethodPost, "/api/companies", dto.CreateCompanyRequest{Name: "Otra", Code: "ACME", RadiusMeters: 10}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, apphttp.CodeDuplicate, decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/companies/999/settings", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
