package ports

import (
	"context"
	"mixtrail-service/internal/domain"
)

// Persistent address -> coordinate cache in front of a Geocoder.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}

// Expiring cache of routing results keyed by request.
type DirectionsCache interface {
	// Return the cached route and whether it was found.
	Get(ctx context.Context, req RouteRequest) (domain.Route, bool, error)
	Set(ctx context.Context, req RouteRequest, route domain.Route) error
}
