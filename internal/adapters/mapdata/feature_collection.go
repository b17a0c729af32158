// Package mapdata renders routes, candidates and picks as GeoJSON for map
// clients.
package mapdata

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mixtrail-service/internal/domain"
)

// Values of the "kind" feature property.
const (
	KindRoute     = "route"
	KindCandidate = "candidate"
	KindPick      = "pick"
)

func toOrb(p domain.GeoPoint) orb.Point { return orb.Point{p.Lng, p.Lat} }

// BuildFeatureCollection returns the route as a LineString followed by one
// Point per candidate and per pick. Empty inputs contribute no features; a
// route needs two points to be drawn.
func BuildFeatureCollection(route []domain.GeoPoint, candidates []domain.Candidate, picks []domain.Pick) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(route) >= 2 {
		line := make(orb.LineString, 0, len(route))
		for _, p := range route {
			line = append(line, toOrb(p))
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindRoute
		fc.Append(f)
	}

	for _, c := range candidates {
		f := geojson.NewFeature(toOrb(c.Coords))
		f.Properties["kind"] = KindCandidate
		f.Properties["gc"] = c.Code
		f.Properties["title"] = c.Name
		f.Properties["type"] = string(c.Type)
		f.Properties["route_km_marker"] = c.RouteKmMarker
		fc.Append(f)
	}

	for _, p := range picks {
		f := geojson.NewFeature(toOrb(p.Coords))
		f.Properties["kind"] = KindPick
		f.Properties["gc"] = p.Code
		f.Properties["title"] = p.Name
		fc.Append(f)
	}

	return fc
}
