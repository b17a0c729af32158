package dto

import "mixtrail-service/internal/domain"

// CacheCandidate is a cache with its route geometry. The geometry fields are
// ignored on input and recomputed from the request's polyline.
type CacheCandidate struct {
	GCCode           string  `json:"gc_code" validate:"required"`
	Name             string  `json:"name"`
	Coords           LatLng  `json:"coords"`
	Type             string  `json:"type" validate:"required,oneof=Traditional Mystery Multi Letterbox Earthcache Virtual"`
	Difficulty       float64 `json:"difficulty" validate:"min=1,max=5"`
	Terrain          float64 `json:"terrain" validate:"min=1,max=5"`
	Size             string  `json:"size,omitempty" validate:"omitempty,oneof=Micro Small Regular Large Other"`
	FavoritePoints   int     `json:"favorite_points" validate:"min=0"`
	LastFoundDays    *int    `json:"last_found_days"`
	RecentDNFs       int     `json:"recent_dnfs" validate:"min=0"`
	OnTrailHint      bool    `json:"on_trail_hint"`
	DistanceToRouteM float64 `json:"distance_to_route_m"`
	ExtraDetourM     float64 `json:"extra_detour_m"`
	RouteKmMarker    float64 `json:"route_km_marker"`
}

func (c CacheCandidate) ToDomain() domain.RawCandidate {
	return domain.RawCandidate{
		Code:           c.GCCode,
		Name:           c.Name,
		Coords:         c.Coords.ToDomain(),
		Type:           domain.CacheType(c.Type),
		Difficulty:     c.Difficulty,
		Terrain:        c.Terrain,
		Size:           domain.CacheSize(c.Size),
		FavoritePoints: c.FavoritePoints,
		LastFoundDays:  c.LastFoundDays,
		RecentDNFs:     c.RecentDNFs,
		OnTrailHint:    c.OnTrailHint,
	}
}

func CandidateFromDomain(c domain.Candidate) CacheCandidate {
	return CacheCandidate{
		GCCode:           c.Code,
		Name:             c.Name,
		Coords:           LatLngFromDomain(c.Coords),
		Type:             string(c.Type),
		Difficulty:       c.Difficulty,
		Terrain:          c.Terrain,
		Size:             string(c.Size),
		FavoritePoints:   c.FavoritePoints,
		LastFoundDays:    c.LastFoundDays,
		RecentDNFs:       c.RecentDNFs,
		OnTrailHint:      c.OnTrailHint,
		DistanceToRouteM: c.DistanceToRouteM,
		ExtraDetourM:     c.ExtraDetourM,
		RouteKmMarker:    c.RouteKmMarker,
	}
}

func CandidatesFromDomain(cs []domain.Candidate) []CacheCandidate {
	out := make([]CacheCandidate, 0, len(cs))
	for _, c := range cs {
		out = append(out, CandidateFromDomain(c))
	}
	return out
}

type ScoredCandidate struct {
	CacheCandidate
	Score float64 `json:"score"`
}

type PickResponse struct {
	GCCode        string  `json:"gc_code"`
	Name          string  `json:"name"`
	Reason        string  `json:"reason"`
	RouteKmMarker float64 `json:"route_km_marker"`
	ExtraDetourM  float64 `json:"extra_detour_m"`
	Coords        LatLng  `json:"coords"`
	Score         float64 `json:"score"`
}

type CandidatesRequest struct {
	Polyline Polyline   `json:"polyline"`
	Prefs    *UserPrefs `json:"prefs"`
}

type CandidatesResponse struct {
	Candidates []CacheCandidate `json:"candidates"`
}

type SelectRequest struct {
	Polyline   Polyline         `json:"polyline"`
	Prefs      *UserPrefs       `json:"prefs"`
	Candidates []CacheCandidate `json:"candidates" validate:"max=5000,dive"`
}

type SelectResponse struct {
	Picks     []PickResponse    `json:"picks"`
	Shortlist []ScoredCandidate `json:"shortlist"`
}

type SuggestRequest struct {
	RoutePlanRequest
	Prefs *UserPrefs `json:"prefs"`
}

type SuggestResponse struct {
	Route      Polyline         `json:"route"`
	Candidates []CacheCandidate `json:"candidates"`
	SelectResponse
}

func SelectResponseFrom(picks []domain.Pick, shortlist []domain.ScoredCandidate) SelectResponse {
	res := SelectResponse{
		Picks:     make([]PickResponse, 0, len(picks)),
		Shortlist: make([]ScoredCandidate, 0, len(shortlist)),
	}
	for _, p := range picks {
		res.Picks = append(res.Picks, PickResponse{
			GCCode:        p.Code,
			Name:          p.Name,
			Reason:        p.Reason,
			RouteKmMarker: p.RouteKmMarker,
			ExtraDetourM:  p.ExtraDetourM,
			Coords:        LatLngFromDomain(p.Coords),
			Score:         p.Score,
		})
	}
	for _, s := range shortlist {
		res.Shortlist = append(res.Shortlist, ScoredCandidate{
			CacheCandidate: CandidateFromDomain(s.Candidate),
			Score:          s.Score,
		})
	}
	return res
}
