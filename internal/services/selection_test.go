package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/domain"
)

func scoredAt(code string, km, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Candidate: domain.Candidate{
			RawCandidate:  domain.RawCandidate{Code: code, Name: code},
			RouteKmMarker: km,
		},
		Score: score,
	}
}

func codes(scored []domain.ScoredCandidate) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Code)
	}
	return out
}

func TestSelectSpacedPicks_Empty(t *testing.T) {
	assert.Empty(t, SelectSpacedPicks(nil, domain.DefaultUserPreferences()))
	assert.Empty(t, Shortlist(nil, domain.DefaultUserPreferences()))
}

func TestSelectSpacedPicks_RejectsCloseNeighbour(t *testing.T) {
	prefs := domain.DefaultUserPreferences()

	picks := SelectSpacedPicks([]domain.ScoredCandidate{
		scoredAt("LOW", 0, 0.4),
		scoredAt("HIGH", 5, 0.7),
	}, prefs)

	assert.Equal(t, []string{"HIGH"}, codes(picks))
}

func TestSelectSpacedPicks_SpacingRespected(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.SpacingKm = 10
	prefs.TargetCount = 10

	var in []domain.ScoredCandidate
	for i := range 40 {
		km := float64(i) * 2.5
		in = append(in, scoredAt(string(rune('A'+i%26))+string(rune('a'+i/26)), km, float64(i%7)/7))
	}

	picks := SelectSpacedPicks(in, prefs)
	require.NotEmpty(t, picks)
	assert.LessOrEqual(t, len(picks), prefs.TargetCount)

	for i := 1; i < len(picks); i++ {
		assert.GreaterOrEqual(t, picks[i].RouteKmMarker-picks[i-1].RouteKmMarker, 8.0)
	}
}

func TestSelectSpacedPicks_BackwardsMarkerRejected(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.SpacingKm = 1

	// The first pick sits late on the route; earlier candidates are behind it.
	picks := SelectSpacedPicks([]domain.ScoredCandidate{
		scoredAt("LATE", 50, 0.9),
		scoredAt("EARLY", 10, 0.8),
		scoredAt("LATER", 60, 0.7),
	}, prefs)

	assert.Equal(t, []string{"LATE", "LATER"}, codes(picks))
}

func TestSelectSpacedPicks_StopsAtTarget(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.TargetCount = 2
	prefs.SpacingKm = 1

	picks := SelectSpacedPicks([]domain.ScoredCandidate{
		scoredAt("A", 0, 0.9),
		scoredAt("B", 10, 0.8),
		scoredAt("C", 20, 0.7),
	}, prefs)

	assert.Equal(t, []string{"A", "B"}, codes(picks))
}

func TestSelectSpacedPicks_ZeroSpacingIsFloored(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.SpacingKm = 0

	picks := SelectSpacedPicks([]domain.ScoredCandidate{
		scoredAt("A", 0, 0.9),
		scoredAt("B", 0.5, 0.8),
		scoredAt("C", 0.8, 0.7),
	}, prefs)

	assert.Equal(t, []string{"A", "C"}, codes(picks))
}

func TestSelectSpacedPicks_TiesKeepInputOrder(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.SpacingKm = 1

	picks := SelectSpacedPicks([]domain.ScoredCandidate{
		scoredAt("FIRST", 0, 0.5),
		scoredAt("SECOND", 0.1, 0.5),
	}, prefs)

	assert.Equal(t, []string{"FIRST"}, codes(picks))
}

func TestSelectSpacedPicks_DoesNotMutateInput(t *testing.T) {
	in := []domain.ScoredCandidate{
		scoredAt("A", 0, 0.1),
		scoredAt("B", 30, 0.9),
		scoredAt("C", 60, 0.5),
	}
	before := codes(in)

	SelectSpacedPicks(in, domain.DefaultUserPreferences())
	Shortlist(in, domain.DefaultUserPreferences())

	assert.Equal(t, before, codes(in))
}

func TestSelectSpacedPicks_ZeroTarget(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.TargetCount = 0

	assert.Empty(t, SelectSpacedPicks([]domain.ScoredCandidate{scoredAt("A", 0, 1)}, prefs))
	assert.Empty(t, Shortlist([]domain.ScoredCandidate{scoredAt("A", 0, 1)}, prefs))
}

func TestShortlist_TopTwiceTarget(t *testing.T) {
	prefs := domain.DefaultUserPreferences()
	prefs.TargetCount = 2

	got := Shortlist([]domain.ScoredCandidate{
		scoredAt("A", 0, 0.1),
		scoredAt("B", 0, 0.9),
		scoredAt("C", 0, 0.5),
		scoredAt("D", 0, 0.7),
		scoredAt("E", 0, 0.3),
	}, prefs)

	assert.Equal(t, []string{"B", "D", "C", "E"}, codes(got))
}
