package geo

import (
	"math"

	"github.com/yeremiapane/koko-king/models"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres (haversine).
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NearestBranch picks the closest branch that has coordinates. The bool is
// false when no branch carries coordinates.
func NearestBranch(lat, lng float64, branches []models.Branch) (models.Branch, float64, bool) {
	var (
		best  models.Branch
		bestD = math.Inf(1)
		found bool
	)
	for _, b := range branches {
		if b.Coordinates == nil {
			continue
		}
		d := Distance(lat, lng, b.Coordinates.Lat, b.Coordinates.Lng)
		if d < bestD {
			best, bestD, found = b, d, true
		}
	}
	return best, bestD, found
}
