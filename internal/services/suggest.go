package services

import (
	"context"
	"errors"
	"fmt"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
	"mixtrail-service/internal/platform/metrics"
	"mixtrail-service/internal/ports"
)

// Load the caches near route from src and attach route geometry to each.
//
// The source is queried with the route's bounding box grown by
// prefs.MaxCorridorM; no further filtering happens here, distance to the
// route is left to scoring.
func FindCandidates(
	ctx context.Context,
	route []domain.GeoPoint,
	prefs domain.UserPreferences,
	src ports.CandidateSource,
) ([]domain.Candidate, error) {
	if len(route) == 0 {
		return nil, errors.New("find candidates: route is empty")
	}

	raws, err := src.ListCandidates(ctx, geo.CorridorBox(route, prefs.MaxCorridorM))
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	metrics.CandidatesEvaluatedTotal.Add(float64(len(raws)))
	return EvaluateCandidates(route, raws), nil
}

// Selection is the outcome of scoring and spacing one candidate set.
type Selection struct {
	Picks     []domain.Pick
	Shortlist []domain.ScoredCandidate
}

// SelectCandidates scores already-evaluated candidates and picks spaced
// favourites. The shortlist holds the best 2 × TargetCount by score.
func SelectCandidates(candidates []domain.Candidate, prefs domain.UserPreferences) Selection {
	scored := ScoreCandidates(candidates, prefs)

	spaced := SelectSpacedPicks(scored, prefs)
	picks := make([]domain.Pick, 0, len(spaced))
	for _, c := range spaced {
		picks = append(picks, domain.NewPick(c))
	}
	metrics.PicksPerSelection.Observe(float64(len(picks)))

	return Selection{Picks: picks, Shortlist: Shortlist(scored, prefs)}
}

// SelectFromRaw recomputes route geometry for caller-supplied candidates
// before selecting. A route without points yields an empty selection.
func SelectFromRaw(route []domain.GeoPoint, raws []domain.RawCandidate, prefs domain.UserPreferences) Selection {
	if len(route) == 0 {
		return Selection{Picks: []domain.Pick{}, Shortlist: []domain.ScoredCandidate{}}
	}
	return SelectCandidates(EvaluateCandidates(route, raws), prefs)
}

type SuggestResult struct {
	Route      domain.Route
	Candidates []domain.Candidate
	Selection
}

// Suggest plans the route, gathers nearby caches and selects picks in one go.
func Suggest(
	ctx context.Context,
	req PlanRouteRequest,
	prefs domain.UserPreferences,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
	src ports.CandidateSource,
) (SuggestResult, error) {
	route, err := PlanRoute(ctx, req, geocoder, provider)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("suggest: %w", err)
	}

	candidates, err := FindCandidates(ctx, route.Points, prefs, src)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("suggest: %w", err)
	}

	return SuggestResult{
		Route:      route,
		Candidates: candidates,
		Selection:  SelectCandidates(candidates, prefs),
	}, nil
}
