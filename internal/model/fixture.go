package model

import "time"

// FixtureID identifies a fixture within a tournament. IDs start at 1.
type FixtureID int

// PairKey is the canonical (lower id, higher id) form of a team pairing
type PairKey struct {
	Low  TeamID
	High TeamID
}

// NewPairKey builds the canonical key for two teams regardless of order
func NewPairKey(a, b TeamID) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// Fixture is a scheduled, possibly unplayed, match between two teams
type Fixture struct {
	ID        FixtureID `json:"id"`
	Team1ID   TeamID    `json:"team1_id"`
	Team2ID   TeamID    `json:"team2_id"`
	WinnerID  *TeamID   `json:"winner_id"` // nil until a result is recorded
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the canonical pair key used for duplicate detection
func (f Fixture) Key() PairKey {
	return NewPairKey(f.Team1ID, f.Team2ID)
}

// IsPlayed reports whether a winner has been recorded
func (f Fixture) IsPlayed() bool {
	return f.WinnerID != nil
}

// Involves reports whether the team takes part in this fixture
func (f Fixture) Involves(id TeamID) bool {
	return f.Team1ID == id || f.Team2ID == id
}

// Opponent returns the other team in the fixture. The second return value is
// false if the given team does not take part.
func (f Fixture) Opponent(id TeamID) (TeamID, bool) {
	switch id {
	case f.Team1ID:
		return f.Team2ID, true
	case f.Team2ID:
		return f.Team1ID, true
	default:
		return 0, false
	}
}
