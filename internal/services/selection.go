package services

import (
	"cmp"
	"math"
	"slices"

	"mixtrail-service/internal/domain"
)

const (
	// Fraction of the configured spacing that accepted picks must keep apart.
	spacingTolerance = 0.8
	// Lower bound on spacing so the spacing rule can never be switched off.
	minSpacingKm = 1.0
)

// SortByScore returns a copy of scored ordered by descending score.
// Equal scores keep their input order.
func SortByScore(scored []domain.ScoredCandidate) []domain.ScoredCandidate {
	sorted := slices.Clone(scored)
	slices.SortStableFunc(sorted, func(a, b domain.ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return sorted
}

// Select up to prefs.TargetCount candidates spaced along the route.
//
// Candidates are visited by descending score. Each one is accepted when its
// route-km marker lies at least 0.8 × max(1, SpacingKm) beyond the marker of
// the previously accepted pick; otherwise it is discarded for good.
// This is a single greedy pass, not a maximum-total-score solution: one strong
// candidate can suppress a cluster of neighbours worth more together.
// The result is in acceptance order, which need not follow route order.
func SelectSpacedPicks(scored []domain.ScoredCandidate, prefs domain.UserPreferences) []domain.ScoredCandidate {
	minGap := max(minSpacingKm, prefs.SpacingKm) * spacingTolerance

	picks := make([]domain.ScoredCandidate, 0, min(len(scored), max(prefs.TargetCount, 0)))
	lastKm := math.Inf(-1)

	for _, c := range SortByScore(scored) {
		if len(picks) >= prefs.TargetCount {
			break
		}
		if c.RouteKmMarker-lastKm >= minGap {
			picks = append(picks, c)
			lastKm = c.RouteKmMarker
		}
	}

	return picks
}

// Shortlist returns the best min(len, 2 × TargetCount) candidates by score.
func Shortlist(scored []domain.ScoredCandidate, prefs domain.UserPreferences) []domain.ScoredCandidate {
	sorted := SortByScore(scored)
	n := min(len(sorted), 2*max(prefs.TargetCount, 0))
	return sorted[:n]
}
