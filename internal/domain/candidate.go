package domain

// Category tag of a cache.
type CacheType string

const (
	TypeTraditional CacheType = "Traditional"
	TypeMystery     CacheType = "Mystery"
	TypeMulti       CacheType = "Multi"
	TypeLetterbox   CacheType = "Letterbox"
	TypeEarthcache  CacheType = "Earthcache"
	TypeVirtual     CacheType = "Virtual"
)

// Container size of a cache.
type CacheSize string

const (
	SizeMicro   CacheSize = "Micro"
	SizeSmall   CacheSize = "Small"
	SizeRegular CacheSize = "Regular"
	SizeLarge   CacheSize = "Large"
	SizeOther   CacheSize = "Other"
)

// Point-of-interest as supplied by a candidate source, before any route
// geometry has been attached.
type RawCandidate struct {
	Code           string
	Name           string
	Coords         GeoPoint
	Type           CacheType
	Difficulty     float64
	Terrain        float64
	Size           CacheSize
	FavoritePoints int
	LastFoundDays  *int
	RecentDNFs     int
	OnTrailHint    bool
}

// Represents a cache evaluated against one route.
// The geometry fields are derived once per route and never modified afterwards.
type Candidate struct {
	RawCandidate

	DistanceToRouteM float64
	ExtraDetourM     float64
	RouteKmMarker    float64
}

// Candidate with its desirability score. Higher is better; the score is unbounded.
type ScoredCandidate struct {
	Candidate
	Score float64
}

// Fixed justification attached to every greedy pick.
const PickReason = "Heuristic pick"

// Selected candidate as reported to the consumer.
type Pick struct {
	Code          string
	Name          string
	Coords        GeoPoint
	Reason        string
	RouteKmMarker float64
	ExtraDetourM  float64
	Score         float64
}

// Convert a scored candidate into a pick.
func NewPick(c ScoredCandidate) Pick {
	return Pick{
		Code:          c.Code,
		Name:          c.Name,
		Coords:        c.Coords,
		Reason:        PickReason,
		RouteKmMarker: c.RouteKmMarker,
		ExtraDetourM:  c.ExtraDetourM,
		Score:         c.Score,
	}
}
