package utils

import "math"

const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox approximates the box around a point that contains every point
// within radius meters.
func BoundingBox(lat, lon, radius float64) (minLat, maxLat, minLon, maxLon float64) {
	// 1 degree of latitude is about 111km; longitude shrinks with latitude
	latDegrees := radius / 111000.0
	lonDegrees := radius / (111000.0 * math.Max(math.Cos(lat*math.Pi/180), 1e-6))

	return lat - latDegrees, lat + latDegrees, lon - lonDegrees, lon + lonDegrees
}
