package domain

import "math"

// Радиус Земли в километрах
const earthRadiusKm = 6371.0

// GeoPoint географическая точка (широта/долгота в градусах)
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm вычисляет расстояние между двумя точками по формуле гаверсинусов
// Для радиусов обслуживания бригад (десятки километров) точности достаточно
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := degreesToRadians(p.Latitude)
	lat2 := degreesToRadians(other.Latitude)
	dLat := degreesToRadians(other.Latitude - p.Latitude)
	dLon := degreesToRadians(other.Longitude - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
