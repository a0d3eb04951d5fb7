package model

import (
	"fmt"
	"time"
)

// Tournament is a full snapshot of tournament state. Engine operations take a
// snapshot and return a new one; nothing is retained between calls.
type Tournament struct {
	Teams      []Team    `json:"teams"`
	Fixtures   []Fixture `json:"fixtures"`
	NextTeamID TeamID    `json:"next_team_id"` // never reused until the tournament is reset

	// Version is the storage concurrency token. 0 means never saved.
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTournament returns the empty tournament state
func NewTournament() *Tournament {
	return &Tournament{
		Teams:      []Team{},
		Fixtures:   []Fixture{},
		NextTeamID: 1,
	}
}

// Clone returns a deep copy that shares no slices or pointers with t
func (t *Tournament) Clone() *Tournament {
	c := &Tournament{
		Teams:      CloneTeams(t.Teams),
		Fixtures:   CloneFixtures(t.Fixtures),
		NextTeamID: t.NextTeamID,
		Version:    t.Version,
		UpdatedAt:  t.UpdatedAt,
	}
	return c
}

// CloneTeams copies a team slice. Teams hold no pointers so a copy is deep.
func CloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}

// CloneFixtures deep-copies a fixture slice including winner pointers
func CloneFixtures(fixtures []Fixture) []Fixture {
	out := make([]Fixture, len(fixtures))
	for i, f := range fixtures {
		if f.WinnerID != nil {
			w := *f.WinnerID
			f.WinnerID = &w
		}
		out[i] = f
	}
	return out
}

// GetTeam returns a pointer into t.Teams for the given ID, or nil
func (t *Tournament) GetTeam(id TeamID) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// GetFixture returns a pointer into t.Fixtures for the given ID, or nil
func (t *Tournament) GetFixture(id FixtureID) *Fixture {
	for i := range t.Fixtures {
		if t.Fixtures[i].ID == id {
			return &t.Fixtures[i]
		}
	}
	return nil
}

// PlayedFixtures returns the number of fixtures with a recorded winner
func (t *Tournament) PlayedFixtures() int {
	n := 0
	for _, f := range t.Fixtures {
		if f.IsPlayed() {
			n++
		}
	}
	return n
}

// Validate checks every snapshot invariant and reports the first violation
func (t *Tournament) Validate() error {
	teamIDs := make(map[TeamID]struct{}, len(t.Teams))
	players := make(map[string]TeamID, 2*len(t.Teams))

	for _, team := range t.Teams {
		if team.ID <= 0 {
			return fmt.Errorf("%w: team has non-positive id %d", ErrInvalidState, team.ID)
		}
		if team.ID >= t.NextTeamID {
			return fmt.Errorf("%w: team %d not below next team id %d", ErrInvalidState, team.ID, t.NextTeamID)
		}
		if _, dup := teamIDs[team.ID]; dup {
			return fmt.Errorf("%w: duplicate team id %d", ErrInvalidState, team.ID)
		}
		teamIDs[team.ID] = struct{}{}

		if team.Players[0] == "" || team.Players[1] == "" {
			return fmt.Errorf("%w: team %d has an empty player name", ErrInvalidState, team.ID)
		}
		if team.Players[0] == team.Players[1] {
			return fmt.Errorf("%w: team %d has the same player twice", ErrInvalidState, team.ID)
		}
		for _, p := range team.Players {
			if other, taken := players[p]; taken {
				return fmt.Errorf("%w: player %q on teams %d and %d", ErrInvalidState, p, other, team.ID)
			}
			players[p] = team.ID
		}

		if team.Wins < 0 || team.Losses < 0 {
			return fmt.Errorf("%w: team %d has negative counters", ErrInvalidState, team.ID)
		}
	}

	fixtureIDs := make(map[FixtureID]struct{}, len(t.Fixtures))
	pairs := make(map[PairKey]FixtureID, len(t.Fixtures))

	for _, f := range t.Fixtures {
		if _, dup := fixtureIDs[f.ID]; dup {
			return fmt.Errorf("%w: duplicate fixture id %d", ErrInvalidState, f.ID)
		}
		fixtureIDs[f.ID] = struct{}{}

		if f.Team1ID == f.Team2ID {
			return fmt.Errorf("%w: fixture %d pairs team %d with itself", ErrInvalidState, f.ID, f.Team1ID)
		}
		for _, id := range []TeamID{f.Team1ID, f.Team2ID} {
			if _, ok := teamIDs[id]; !ok {
				return fmt.Errorf("%w: fixture %d references missing team %d", ErrInvalidState, f.ID, id)
			}
		}
		if other, dup := pairs[f.Key()]; dup {
			return fmt.Errorf("%w: fixtures %d and %d schedule the same pair", ErrInvalidState, other, f.ID)
		}
		pairs[f.Key()] = f.ID

		if f.WinnerID != nil && !f.Involves(*f.WinnerID) {
			return fmt.Errorf("%w: fixture %d winner %d is not a participant", ErrInvalidState, f.ID, *f.WinnerID)
		}
	}

	return nil
}
