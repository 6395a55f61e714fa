// Package geo holds great-circle distance and the longitude-based schedule arithmetic.
package geo

import (
	"math"

	"aerosense/estimator/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometres between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Distance is Haversine between two airports.
func Distance(from, to models.Airport) float64 {
	return Haversine(from.Lat, from.Lng, to.Lat, to.Lng)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
