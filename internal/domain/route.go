package domain

import "slices"

// Travel mode requested by the user. Each mode maps onto a routing profile.
type TravelMode string

const (
	ModeDrive TravelMode = "drive"
	ModeBike  TravelMode = "bike"
	ModeWalk  TravelMode = "walk"
	ModeHike  TravelMode = "hike"
)

var travelModes = []TravelMode{ModeDrive, ModeBike, ModeWalk, ModeHike}

// Report whether m is one of the supported travel modes.
func (m TravelMode) Valid() bool { return slices.Contains(travelModes, m) }

// One point of the elevation profile: metres above sea level at a cumulative
// distance along the route.
type ElevationSample struct {
	KM float64 `json:"km"`
	M  float64 `json:"m"`
}

// Represents a travel route as an ordered vertex sequence.
// Point order is travel order. Routes are built by the routing provider or by
// GPX import and are only read by the corridor engine.
type Route struct {
	Points           []GeoPoint
	DistanceKm       float64
	Mode             TravelMode
	ElevationGainM   float64
	ElevationSamples []ElevationSample
}
