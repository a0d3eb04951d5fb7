// Package roster adds and removes teams from a tournament snapshot.
package roster

import (
	"strings"

	"github.com/mcoot/padel-tournament/internal/model"
)

// AddTeam registers a new team of two players on t. Names are trimmed and
// must be non-empty, different from each other and not on any existing team.
func AddTeam(t *model.Tournament, player1, player2 string) (model.Team, error) {
	p1 := strings.TrimSpace(player1)
	p2 := strings.TrimSpace(player2)

	if p1 == "" || p2 == "" {
		return model.Team{}, model.ErrInvalidPlayerName
	}
	if p1 == p2 {
		return model.Team{}, model.ErrSamePlayer
	}
	for _, team := range t.Teams {
		if team.HasPlayer(p1) || team.HasPlayer(p2) {
			return model.Team{}, model.ErrDuplicatePlayer
		}
	}

	if t.NextTeamID < 1 {
		t.NextTeamID = 1
	}
	team := model.Team{
		ID:      t.NextTeamID,
		Players: [2]string{p1, p2},
	}
	t.NextTeamID++
	t.Teams = append(t.Teams, team)

	return team, nil
}

// RemoveTeam deletes a team and every fixture that references it, played or
// not. Returns the number of fixtures removed.
func RemoveTeam(t *model.Tournament, id model.TeamID) (int, error) {
	if t.GetTeam(id) == nil {
		return 0, model.ErrTeamNotFound
	}

	teams := make([]model.Team, 0, len(t.Teams)-1)
	for _, team := range t.Teams {
		if team.ID != id {
			teams = append(teams, team)
		}
	}

	fixtures := make([]model.Fixture, 0, len(t.Fixtures))
	for _, f := range t.Fixtures {
		if !f.Involves(id) {
			fixtures = append(fixtures, f)
		}
	}
	removed := len(t.Fixtures) - len(fixtures)

	t.Teams = teams
	t.Fixtures = fixtures
	return removed, nil
}

// Reset clears all teams and fixtures and restarts team numbering. The
// storage version is kept so the reset saves like any other mutation.
func Reset(t *model.Tournament) {
	t.Teams = []model.Team{}
	t.Fixtures = []model.Fixture{}
	t.NextTeamID = 1
}
