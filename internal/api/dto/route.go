package dto

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/services"
)

type LatLng struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (p LatLng) ToDomain() domain.GeoPoint { return domain.GeoPoint{Lat: p.Lat, Lng: p.Lng} }

func LatLngFromDomain(p domain.GeoPoint) LatLng { return LatLng{Lat: p.Lat, Lng: p.Lng} }

type ElevationSample struct {
	KM float64 `json:"km"`
	M  float64 `json:"m"`
}

// Polyline is the wire form of a route. Clients may send either points or an
// encoded Google polyline; responses always carry both.
type Polyline struct {
	Points           []LatLng          `json:"points,omitempty" validate:"required_without=Encoded,omitempty,min=2,dive"`
	Encoded          string            `json:"encoded,omitempty"`
	DistanceKm       float64           `json:"distance_km" validate:"gte=0"`
	Mode             string            `json:"mode" validate:"required,oneof=drive bike walk hike"`
	ElevationGainM   float64           `json:"elevation_gain_m"`
	ElevationSamples []ElevationSample `json:"elevation_samples"`
}

// ToDomain converts the polyline, decoding Encoded when Points is empty.
func (p Polyline) ToDomain() (domain.Route, error) {
	points := make([]domain.GeoPoint, 0, len(p.Points))
	for _, pt := range p.Points {
		points = append(points, pt.ToDomain())
	}

	if len(points) == 0 && p.Encoded != "" {
		coords, _, err := polyline.DecodeCoords([]byte(p.Encoded))
		if err != nil {
			return domain.Route{}, fmt.Errorf("polyline.encoded: %w", err)
		}
		for _, c := range coords {
			pt := domain.GeoPoint{Lat: c[0], Lng: c[1]}
			if pt.Lat < -90 || pt.Lat > 90 || pt.Lng < -180 || pt.Lng > 180 {
				return domain.Route{}, errors.New("polyline.encoded contains invalid coordinates")
			}
			points = append(points, pt)
		}
	}
	if len(points) < 2 {
		return domain.Route{}, errors.New("polyline.points must be at least 2")
	}

	samples := make([]domain.ElevationSample, 0, len(p.ElevationSamples))
	for _, s := range p.ElevationSamples {
		samples = append(samples, domain.ElevationSample{KM: s.KM, M: s.M})
	}

	return domain.Route{
		Points:           points,
		DistanceKm:       p.DistanceKm,
		Mode:             domain.TravelMode(p.Mode),
		ElevationGainM:   p.ElevationGainM,
		ElevationSamples: samples,
	}, nil
}

// EncodePoints returns the Google encoded polyline of points.
func EncodePoints(points []domain.GeoPoint) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}

func PolylineFromDomain(r domain.Route) Polyline {
	points := make([]LatLng, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, LatLngFromDomain(p))
	}

	samples := make([]ElevationSample, 0, len(r.ElevationSamples))
	for _, s := range r.ElevationSamples {
		samples = append(samples, ElevationSample{KM: s.KM, M: s.M})
	}

	return Polyline{
		Points:           points,
		Encoded:          EncodePoints(r.Points),
		DistanceKm:       r.DistanceKm,
		Mode:             string(r.Mode),
		ElevationGainM:   r.ElevationGainM,
		ElevationSamples: samples,
	}
}

// Endpoint is a route stop given as coordinates or as an address.
type Endpoint struct {
	Lat     *float64 `json:"lat,omitempty" validate:"required_without=Address,required_with=Lng,omitempty,gte=-90,lte=90"`
	Lng     *float64 `json:"lng,omitempty" validate:"required_without=Address,required_with=Lat,omitempty,gte=-180,lte=180"`
	Address string   `json:"address,omitempty" validate:"required_without_all=Lat Lng,omitempty,max=500"`
}

func (e Endpoint) ToService() services.Endpoint {
	if e.Lat != nil && e.Lng != nil {
		return services.Endpoint{Coords: &domain.GeoPoint{Lat: *e.Lat, Lng: *e.Lng}}
	}
	return services.Endpoint{Address: e.Address}
}

type RoutePlanRequest struct {
	Start     Endpoint   `json:"start" validate:"required"`
	End       Endpoint   `json:"end" validate:"required"`
	Waypoints []Endpoint `json:"waypoints" validate:"omitempty,max=48,dive"`
	Mode      string     `json:"mode"`
}

func (r RoutePlanRequest) ToService() services.PlanRouteRequest {
	wps := make([]services.Endpoint, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		wps = append(wps, w.ToService())
	}
	return services.PlanRouteRequest{
		Start:     r.Start.ToService(),
		End:       r.End.ToService(),
		Waypoints: wps,
		Mode:      domain.TravelMode(r.Mode),
	}
}
