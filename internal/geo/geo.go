// Package geo holds the small coordinate calculations behind meeting-point ranking.
package geo

import (
	"errors"
	"math"
)

const earthRadiusKm = 6371.0

// ErrNoPoints is returned when a centroid is requested for an empty set
var ErrNoPoints = errors.New("no points")

type Point struct {
	Latitude  float64
	Longitude float64
}

// Centroid is the arithmetic mean of latitudes and longitudes taken independently.
// There is no spherical correction, so it is only meaningful for small extents.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrNoPoints
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}

	n := float64(len(points))
	return Point{Latitude: sumLat / n, Longitude: sumLon / n}, nil
}

// Distance returns the haversine great-circle distance in kilometres
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RoundKm rounds a distance to two decimal places
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// ValidCoordinates reports whether lat/lon are valid degrees
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
