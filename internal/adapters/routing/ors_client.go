package routing

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/ports"
)

const DefaultORSBaseURL = "https://api.openrouteservice.org"

// Travel mode to ORS routing profile.
var orsProfiles = map[domain.TravelMode]string{
	domain.ModeDrive: "driving-car",
	domain.ModeBike:  "cycling-regular",
	domain.ModeWalk:  "foot-walking",
	domain.ModeHike:  "foot-hiking",
}

// Profile returns the ORS profile for mode, falling back to driving.
func Profile(mode domain.TravelMode) string {
	if p, ok := orsProfiles[mode]; ok {
		return p
	}
	return orsProfiles[domain.ModeDrive]
}

// ORSClient implements RouteProvider and Geocoder using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Expiring directions caching
//   - External API calls with retry/backoff
//
// Both caches are optional. The client is safe for concurrent use.
type ORSClient struct {
	session         *http.Client
	apiKey          string
	baseURL         string
	geocodeCache    ports.GeocodeCache
	directionsCache ports.DirectionsCache
	// Retry backoff before the first repeat; doubled per attempt.
	backoff time.Duration
}

type Option func(*ORSClient)

func WithBaseURL(u string) Option {
	return func(o *ORSClient) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *ORSClient) {
		if d > 0 {
			o.session.Timeout = d
		}
	}
}

func WithGeocodeCache(c ports.GeocodeCache) Option {
	return func(o *ORSClient) { o.geocodeCache = c }
}

func WithDirectionsCache(c ports.DirectionsCache) Option {
	return func(o *ORSClient) { o.directionsCache = c }
}

func withBackoff(d time.Duration) Option {
	return func(o *ORSClient) { o.backoff = d }
}

func NewORSClient(apiKey string, opts ...Option) (*ORSClient, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	client := &ORSClient{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultORSBaseURL,
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
