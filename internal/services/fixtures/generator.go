// Package fixtures generates round-robin fixtures for the pairings that have
// not been scheduled yet.
package fixtures

import (
	"sort"
	"time"

	"github.com/mcoot/padel-tournament/internal/model"
)

// GenerateRound returns a new fixture for every pair of teams that has no
// fixture in existing, played or not. Pairs are produced in ascending
// (lower id, higher id) order and numbered from the highest existing fixture
// id upwards. The inputs are not modified.
func GenerateRound(teams []model.Team, existing []model.Fixture, now time.Time) ([]model.Fixture, error) {
	if len(teams) < 2 {
		return nil, model.ErrInsufficientTeams
	}

	scheduled := ScheduledPairs(existing)

	nextID := model.FixtureID(1)
	for _, f := range existing {
		if f.ID >= nextID {
			nextID = f.ID + 1
		}
	}

	ids := make([]model.TeamID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var created []model.Fixture
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				continue
			}
			key := model.NewPairKey(ids[i], ids[j])
			if _, done := scheduled[key]; done {
				continue
			}
			created = append(created, model.Fixture{
				ID:        nextID,
				Team1ID:   key.Low,
				Team2ID:   key.High,
				CreatedAt: now,
			})
			nextID++
		}
	}

	if len(created) == 0 {
		return nil, model.ErrNoNewFixtures
	}
	return created, nil
}

// ScheduledPairs returns the canonical pair keys of all given fixtures
func ScheduledPairs(fixtures []model.Fixture) map[model.PairKey]struct{} {
	pairs := make(map[model.PairKey]struct{}, len(fixtures))
	for _, f := range fixtures {
		pairs[f.Key()] = struct{}{}
	}
	return pairs
}

// PossiblePairings returns n(n-1)/2, the number of fixtures in a full round robin
func PossiblePairings(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	return teamCount * (teamCount - 1) / 2
}
