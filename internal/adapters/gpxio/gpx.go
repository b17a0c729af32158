// Package gpxio reads uploaded GPX tracks and writes picks as GPX or KML.
package gpxio

import (
	"errors"
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
)

const Creator = "MixTrail"

// The document holds fewer than two usable points.
var ErrNoPoints = errors.New("no track/route/waypoints found")

// ParseTrack builds a walking route from a GPX document. Points come from all
// track segments; when those yield fewer than two points, from routes, and
// then from waypoints.
func ParseTrack(r io.Reader) (domain.Route, error) {
	doc, err := gpx.Parse(r)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse gpx: %w", err)
	}

	var pts []gpx.GPXPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			pts = append(pts, seg.Points...)
		}
	}
	if len(pts) < 2 {
		pts = pts[:0]
		for _, rte := range doc.Routes {
			pts = append(pts, rte.Points...)
		}
	}
	if len(pts) < 2 {
		pts = doc.Waypoints
	}
	if len(pts) < 2 {
		return domain.Route{}, ErrNoPoints
	}

	points := make([]domain.GeoPoint, 0, len(pts))
	elevations := make([]float64, 0, len(pts))
	present := make([]float64, 0, len(pts))
	for _, p := range pts {
		points = append(points, domain.GeoPoint{Lat: p.Latitude, Lng: p.Longitude})
		z := 0.0
		if p.Elevation.NotNull() {
			z = p.Elevation.Value()
			present = append(present, z)
		}
		elevations = append(elevations, z)
	}

	route := domain.Route{
		Points:         points,
		DistanceKm:     geo.RouteLengthKm(points),
		Mode:           domain.ModeWalk,
		ElevationGainM: geo.ElevationGain(present),
	}
	if len(present) > 0 {
		route.ElevationSamples = geo.ElevationProfile(points, elevations)
	}

	return route, nil
}

// WriteGPX writes a GPX 1.1 document with one waypoint per pick and, when
// route is non-empty, a single route.
func WriteGPX(w io.Writer, picks []domain.Pick, route []domain.GeoPoint) error {
	doc := gpx.GPX{Creator: Creator}

	for _, p := range picks {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point:       gpx.Point{Latitude: p.Coords.Lat, Longitude: p.Coords.Lng},
			Name:        p.Code,
			Description: p.Name,
		})
	}

	if len(route) > 0 {
		rte := gpx.GPXRoute{Name: "MixTrail route"}
		for _, pt := range route {
			rte.Points = append(rte.Points, gpx.GPXPoint{
				Point: gpx.Point{Latitude: pt.Lat, Longitude: pt.Lng},
			})
		}
		doc.Routes = append(doc.Routes, rte)
	}

	b, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	return nil
}
