// Package geo holds the spherical distance and route projection math used by
// the corridor engine. All functions are pure and safe for concurrent use.
package geo

import (
	"math"

	"mixtrail-service/internal/domain"
)

// Mean Earth radius used by every distance in the service.
const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// DistanceKm returns the great-circle (haversine) distance between a and b.
func DistanceKm(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h marginally above 1 for antipodal points.
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(math.Min(1, h)))
}

// RouteLengthKm sums the consecutive pairwise distances of points.
// Sequences shorter than two points have length 0.
func RouteLengthKm(points []domain.GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}

// Projection locates a point relative to a route.
type Projection struct {
	// Index of the route vertex nearest to the target.
	Index int
	// Cumulative route distance from the first vertex to Index.
	KmMarker float64
}

// ProjectOntoRoute finds the route vertex nearest to target.
//
// The search is vertex-level: it does not interpolate along segments. Ties
// resolve to the lowest index. The route must hold at least one point.
func ProjectOntoRoute(route []domain.GeoPoint, target domain.GeoPoint) Projection {
	best := math.Inf(1)
	proj := Projection{}
	acc := 0.0

	for i := range route {
		if d := DistanceKm(route[i], target); d < best {
			best = d
			proj = Projection{Index: i, KmMarker: acc}
		}
		if i < len(route)-1 {
			acc += DistanceKm(route[i], route[i+1])
		}
	}

	return proj
}

// ElevationProfile pairs each vertex elevation with its cumulative distance.
// elevations must be parallel to points; missing trailing values count as 0.
func ElevationProfile(points []domain.GeoPoint, elevations []float64) []domain.ElevationSample {
	samples := make([]domain.ElevationSample, 0, len(points))
	km := 0.0
	for i, p := range points {
		if i > 0 {
			km += DistanceKm(points[i-1], p)
		}
		m := 0.0
		if i < len(elevations) {
			m = elevations[i]
		}
		samples = append(samples, domain.ElevationSample{KM: km, M: m})
	}
	return samples
}

// ElevationGain sums the positive steps of an elevation series.
func ElevationGain(elevations []float64) float64 {
	gain := 0.0
	for i := 1; i < len(elevations); i++ {
		if d := elevations[i] - elevations[i-1]; d > 0 {
			gain += d
		}
	}
	return gain
}

// CorridorBox returns the bounding box of route grown by meters on every
// side. The longitude margin is widened for the box's most poleward latitude.
func CorridorBox(route []domain.GeoPoint, meters float64) domain.BoundingBox {
	box := domain.BoundsOf(route)
	if len(route) == 0 {
		return box
	}

	latDeg := meters / 1000 / EarthRadiusKm * 180 / math.Pi
	poleward := max(math.Abs(box.MinLat), math.Abs(box.MaxLat))
	lngDeg := latDeg / max(math.Cos(toRad(min(poleward+latDeg, 90))), 0.01)

	return box.Expand(latDeg, min(lngDeg, 180))
}
