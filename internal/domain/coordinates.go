package domain

// Immutable WGS84 point in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lng, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lng, p.Lat} }

// Axis-aligned bounding box in degrees.
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// Return the smallest box containing all points. The zero box is returned for
// an empty slice.
func BoundsOf(points []GeoPoint) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}

	b := BoundingBox{
		MinLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLat: points[0].Lat,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MinLng = min(b.MinLng, p.Lng)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MaxLng = max(b.MaxLng, p.Lng)
	}

	return b
}

// Grow the box by the given margins in degrees on every side.
func (b BoundingBox) Expand(latDeg, lngDeg float64) BoundingBox {
	return BoundingBox{
		MinLat: b.MinLat - latDeg,
		MinLng: b.MinLng - lngDeg,
		MaxLat: b.MaxLat + latDeg,
		MaxLng: b.MaxLng + lngDeg,
	}
}

// Report whether p lies inside the box (edges inclusive).
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}
