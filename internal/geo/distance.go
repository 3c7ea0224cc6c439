package geo

import (
	"math"
	"sort"
)

// EarthRadiusKm is the mean radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two coordinates
// using the haversine formula (asin form, stable near antipodal points).
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Point locates one candidate for a proximity query.
type Point struct {
	Lat float64
	Lng float64
}

// Ranked pairs a candidate index with its distance from the query point.
type Ranked struct {
	Index      int
	DistanceKm float64
}

// RankWithin scans every candidate, keeps those within radiusKm of the
// query point, and returns them ordered by ascending distance. The sort
// is stable, so equidistant candidates keep their input order. This is
// a full O(n) scan; fine at the data scale this service handles.
func RankWithin(queryLat, queryLng, radiusKm float64, candidates []Point) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for i, p := range candidates {
		d := DistanceKm(queryLat, queryLng, p.Lat, p.Lng)
		if d <= radiusKm {
			ranked = append(ranked, Ranked{Index: i, DistanceKm: d})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].DistanceKm < ranked[b].DistanceKm
	})
	return ranked
}
