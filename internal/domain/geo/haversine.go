package geo

import "math"

// EarthRadiusMeters radio medio de la Tierra usado por la fórmula de haversine.
const EarthRadiusMeters = 6371000.0

// DistanceMeters calcula la distancia de gran círculo (haversine) en metros entre dos puntos en grados.
// a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2); c = 2·atan2(√a, √(1−a)); d = R·c
//
// No valida rangos: latitudes fuera de [-90, 90] o longitudes fuera de [-180, 180]
// devuelven un número finito sin sentido geográfico.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLon*sinLon

	// El redondeo puede dejar a apenas fuera de [0, 1] en antípodas.
	a = math.Max(0, math.Min(1, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
