package attendance

import (
	"math"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/geo"
)

// DefaultMaxAccuracyMeters precisión GPS máxima aceptada cuando la empresa no permite ubicación simulada.
const DefaultMaxAccuracyMeters = 50.0

// Evaluate aplica la política de la empresa a una posición reportada:
//  1. si la empresa no permite ubicación simulada, accuracy > maxAccuracy → LowAccuracyError;
//  2. distancia haversine al centro > radio → OutOfRangeError (el radio es inclusivo).
//
// Devuelve la distancia sin redondear cuando la posición es aceptada.
func Evaluate(company *entity.Company, lat, lng, accuracy, maxAccuracy float64) (float64, error) {
	if !company.AllowMockLocation && accuracy > maxAccuracy {
		return 0, &domain.LowAccuracyError{Accuracy: accuracy, MaxAccuracy: maxAccuracy}
	}
	distance := geo.DistanceMeters(lat, lng, company.Lat, company.Lng)
	if distance > company.RadiusMeters {
		return distance, &domain.OutOfRangeError{Distance: math.Round(distance), Radius: company.RadiusMeters}
	}
	return distance, nil
}
