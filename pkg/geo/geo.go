// Package geo provides geographic helpers for the wash-center catalog.
//
// Distances use the Haversine formula on WGS-84 coordinates, good
// enough for "nearest center" sorting; this is not a routing engine.
package geo

import (
	"math"
	"sort"

	"github.com/arjun/bikewash/internal/model"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
//
// Complexity: O(1)
func HaversineKm(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// AnnotateDistances fills in DistanceKm for every center relative to
// the given point and sorts the slice nearest-first. The input slice is
// modified in place and returned. Distances are rounded to 0.1 km for
// display.
//
// Complexity: O(N log N) for the sort; N is small (a city's centers).
func AnnotateDistances(centers []model.WashCenter, from model.Location) []model.WashCenter {
	for i := range centers {
		km := HaversineKm(from, centers[i].Location)
		centers[i].DistanceKm = math.Round(km*10) / 10
	}
	sort.SliceStable(centers, func(i, j int) bool {
		return centers[i].DistanceKm < centers[j].DistanceKm
	})
	return centers
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
