package gpxio

import (
	"fmt"
	"io"

	kml "github.com/twpayne/go-kml"

	"mixtrail-service/internal/domain"
)

// WriteKML writes a KML document with a placemark per pick and the route as
// a tessellated line string.
func WriteKML(w io.Writer, picks []domain.Pick, route []domain.GeoPoint) error {
	children := []kml.Element{kml.Name("MixTrail picks")}

	for _, p := range picks {
		children = append(children, kml.Placemark(
			kml.Name(p.Code),
			kml.Description(p.Name),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: p.Coords.Lng, Lat: p.Coords.Lat})),
		))
	}

	if len(route) > 0 {
		coords := make([]kml.Coordinate, 0, len(route))
		for _, pt := range route {
			coords = append(coords, kml.Coordinate{Lon: pt.Lng, Lat: pt.Lat})
		}
		children = append(children, kml.Placemark(
			kml.Name("MixTrail route"),
			kml.LineString(kml.Tessellate(true), kml.Coordinates(coords...)),
		))
	}

	if err := kml.KML(kml.Document(children...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}
