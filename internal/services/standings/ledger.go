// Package standings keeps team win/loss counters consistent with recorded
// fixture results and ranks teams by them.
package standings

import (
	"github.com/mcoot/padel-tournament/internal/model"
)

// RecordResult sets the winner of a fixture and updates the counters of both
// teams. A previously recorded outcome is undone first, so correcting or
// re-recording a result never double counts. A nil winner clears the result.
// The inputs are not modified; updated copies are returned.
func RecordResult(
	fixtures []model.Fixture,
	teams []model.Team,
	fixtureID model.FixtureID,
	winnerID *model.TeamID,
) ([]model.Fixture, []model.Team, error) {
	idx := -1
	for i := range fixtures {
		if fixtures[i].ID == fixtureID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, model.ErrFixtureNotFound
	}

	fixture := fixtures[idx]
	if winnerID != nil && !fixture.Involves(*winnerID) {
		return nil, nil, model.ErrInvalidWinner
	}

	updatedTeams := model.CloneTeams(teams)
	if err := UndoOutcome(updatedTeams, fixture); err != nil {
		return nil, nil, err
	}
	if err := ApplyOutcome(updatedTeams, fixture, winnerID); err != nil {
		return nil, nil, err
	}

	updatedFixtures := model.CloneFixtures(fixtures)
	if winnerID != nil {
		w := *winnerID
		updatedFixtures[idx].WinnerID = &w
	} else {
		updatedFixtures[idx].WinnerID = nil
	}

	return updatedFixtures, updatedTeams, nil
}

// UndoOutcome reverses the counters added for the fixture's recorded winner:
// one win from the winner and one loss from the other team. It is a no-op for
// an unplayed fixture. teams is modified in place.
func UndoOutcome(teams []model.Team, fixture model.Fixture) error {
	if fixture.WinnerID == nil {
		return nil
	}
	return adjust(teams, fixture, *fixture.WinnerID, -1)
}

// ApplyOutcome adds a win to winnerID and a loss to the fixture's other team.
// A nil winner adds nothing. teams is modified in place.
func ApplyOutcome(teams []model.Team, fixture model.Fixture, winnerID *model.TeamID) error {
	if winnerID == nil {
		return nil
	}
	return adjust(teams, fixture, *winnerID, 1)
}

func adjust(teams []model.Team, fixture model.Fixture, winnerID model.TeamID, delta int) error {
	loserID, ok := fixture.Opponent(winnerID)
	if !ok {
		return model.ErrInvalidWinner
	}

	winner := findTeam(teams, winnerID)
	loser := findTeam(teams, loserID)
	if winner == nil || loser == nil {
		return model.ErrTeamNotFound
	}

	winner.Wins += delta
	loser.Losses += delta
	return nil
}

func findTeam(teams []model.Team, id model.TeamID) *model.Team {
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i]
		}
	}
	return nil
}
