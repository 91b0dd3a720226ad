package attendance_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/geo"
)

func TestNextAction(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"", entity.ActionCheckIn},
		{entity.ActionCheckOut, entity.ActionCheckIn},
		{entity.ActionCheckIn, entity.ActionCheckOut},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, attendance.NextAction(tc.last), "last=%q", tc.last)
	}
	assert.Equal(t, entity.ActionCheckIn, attendance.NextActionAfter(nil))
}

// La secuencia generada alterna estrictamente empezando por entrada.
func TestNextAction_LeyDeAlternancia(t *testing.T) {
	var last *entity.AttendanceEvent
	history := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		action := attendance.NextActionAfter(last)
		history = append(history, action)
		last = &entity.AttendanceEvent{Action: action}
	}
	require.Equal(t, entity.ActionCheckIn, history[0])
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i] == entity.ActionCheckIn, history[i-1] == entity.ActionCheckOut, "posición %d", i)
	}
}

func testCompany() *entity.Company {
	return &entity.Company{ID: 1, Name: "Acme", Code: "ACME", Lat: 4.711, Lng: -74.0721, RadiusMeters: 100}
}

func TestEvaluate_DentroDelRango(t *testing.T) {
	d, err := attendance.Evaluate(testCompany(), 4.711, -74.0721, 10, attendance.DefaultMaxAccuracyMeters)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestEvaluate_PrecisionBaja(t *testing.T) {
	c := testCompany()
	_, err := attendance.Evaluate(c, c.Lat, c.Lng, 51, attendance.DefaultMaxAccuracyMeters)
	var lowErr *domain.LowAccuracyError
	require.True(t, errors.As(err, &lowErr), "accuracy 51 sin allow_mock_location debe rechazarse")
	assert.Equal(t, 51.0, lowErr.Accuracy)
	assert.Equal(t, 50.0, lowErr.MaxAccuracy)

	_, err = attendance.Evaluate(c, c.Lat, c.Lng, 50, attendance.DefaultMaxAccuracyMeters)
	assert.NoError(t, err, "accuracy 50 está en el límite y se acepta")
}

func TestEvaluate_PrecisionBajaConUbicacionSimulada(t *testing.T) {
	c := testCompany()
	c.AllowMockLocation = true

	_, err := attendance.Evaluate(c, c.Lat, c.Lng, 51, attendance.DefaultMaxAccuracyMeters)
	assert.NoError(t, err)

	// Con allow_mock_location la precisión no importa, pero la distancia sí.
	_, err = attendance.Evaluate(c, 0, 0, 5000, attendance.DefaultMaxAccuracyMeters)
	var rangeErr *domain.OutOfRangeError
	assert.True(t, errors.As(err, &rangeErr))
}

func TestEvaluate_LimiteDeGeocerca(t *testing.T) {
	lat, lng := 4.7120, -74.0721
	c := testCompany()
	distance := geo.DistanceMeters(lat, lng, c.Lat, c.Lng)

	// distancia == radio: aceptada
	c.RadiusMeters = distance
	_, err := attendance.Evaluate(c, lat, lng, 5, attendance.DefaultMaxAccuracyMeters)
	assert.NoError(t, err, "el radio es inclusivo")

	// distancia == radio + 0.01: rechazada
	c.RadiusMeters = distance - 0.01
	_, err = attendance.Evaluate(c, lat, lng, 5, attendance.DefaultMaxAccuracyMeters)
	var rangeErr *domain.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, c.RadiusMeters, rangeErr.Radius)
}

func TestEvaluate_FueraDeRangoRedondeaDistancia(t *testing.T) {
	c := testCompany()
	_, err := attendance.Evaluate(c, 0, 0, 5, attendance.DefaultMaxAccuracyMeters)
	var rangeErr *domain.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, rangeErr.Distance, float64(int64(rangeErr.Distance)), "la distancia reportada debe venir redondeada")
	assert.Equal(t, 100.0, rangeErr.Radius)
}
