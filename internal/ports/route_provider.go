package ports

import (
	"context"
	"errors"
	"mixtrail-service/internal/domain"
)

// The routing backend returned no usable geometry.
var ErrNoRoute = errors.New("no route found")

// Ordered stops of a route request: start, optional waypoints, end.
type RouteRequest struct {
	Stops []domain.GeoPoint
	Mode  domain.TravelMode
}

// Contract for retrieving route geometry between stops.
type RouteProvider interface {
	// Return the travel route through the stops in order.
	PlanRoute(ctx context.Context, req RouteRequest) (domain.Route, error)
}
