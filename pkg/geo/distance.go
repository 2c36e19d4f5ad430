// Package geo computes great-circle distances on a spherical earth and
// filters house collections by radius.
package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"house-portal/models"
)

const earthRadiusKm = 6371.0

// kmPerDegree is the meridian arc length of one degree on the 6371 km
// sphere (~111.19 km). Used only for prescreen sizing, never for results.
const kmPerDegree = earthRadiusKm * math.Pi / 180

// DistanceKm returns the haversine distance in kilometers between two
// points given in degrees. Identical coordinates yield exactly 0.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Encode returns the geohash cell of a coordinate at full precision.
func Encode(lat, lon float64) string {
	return geohash.Encode(lat, lon)
}

// FilterWithinRadius returns the houses whose haversine distance from the
// center is at most radiusKm. A geohash neighborhood prescreen skips the
// exact computation for houses that are provably out of range; it never
// changes the inclusion set.
func FilterWithinRadius(houses []models.House, lat, lon, radiusKm float64) []models.House {
	var block map[string]struct{}
	precision := prescreenPrecision(lat, radiusKm)
	if precision > 0 {
		center := geohash.EncodeWithPrecision(lat, lon, precision)
		block = make(map[string]struct{}, 9)
		block[center] = struct{}{}
		for _, n := range geohash.Neighbors(center) {
			block[n] = struct{}{}
		}
	}

	var filtered []models.House
	for _, h := range houses {
		if block != nil {
			cell := geohash.EncodeWithPrecision(h.Latitude, h.Longitude, precision)
			if _, ok := block[cell]; !ok {
				continue
			}
		}
		if DistanceKm(lat, lon, h.Latitude, h.Longitude) <= radiusKm {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// prescreenPrecision picks the finest geohash precision whose cells span
// at least twice the search radius in both dimensions, so the center cell
// plus its eight neighbors always cover the whole circle. Returns 0 when
// no precision is safe (huge radius or near-polar center), which disables
// the prescreen.
func prescreenPrecision(lat, radiusKm float64) uint {
	best := uint(0)
	for p := uint(1); p <= 8; p++ {
		latBits := 5 * p / 2
		lonBits := 5*p - latBits

		cellLatDeg := 180 / math.Pow(2, float64(latBits))
		cellLonDeg := 360 / math.Pow(2, float64(lonBits))

		// Neighbor rows sit up to two cell heights poleward of the
		// center; clamp the longitude shrink factor there.
		maxLat := math.Abs(lat) + 2*cellLatDeg
		if maxLat >= 90 {
			continue
		}
		cosLat := math.Cos(degreesToRadians(maxLat))

		minSpanKm := math.Min(cellLatDeg*kmPerDegree, cellLonDeg*kmPerDegree*cosLat)
		if minSpanKm >= 2*radiusKm {
			best = p
		}
	}
	return best
}
