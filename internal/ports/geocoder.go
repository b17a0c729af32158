package ports

import (
	"context"
	"errors"
	"mixtrail-service/internal/domain"
)

// The geocoder found no match for an address.
var ErrNotFound = errors.New("not found")

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Return coordinates keyed by the addresses as given. Unresolvable
	// addresses fail the whole call with an error wrapping ErrNotFound.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
}
