package tournament

import (
	"errors"
	"strings"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/standings"
)

// Number of fixtures and leaders shown on the dashboard
const dashboardListSize = 3

// ErrInvalidFilter is returned when parsing an unknown fixture filter
var ErrInvalidFilter = errors.New("fixture filter must be all, pending or completed")

// FixtureFilter selects fixtures by whether a result has been recorded
type FixtureFilter string

const (
	FilterAll       FixtureFilter = "all"
	FilterPending   FixtureFilter = "pending"
	FilterCompleted FixtureFilter = "completed"
)

// ParseFixtureFilter parses a filter name; the empty string means all
func ParseFixtureFilter(s string) (FixtureFilter, error) {
	switch FixtureFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", ErrInvalidFilter
	}
}

// Matches reports whether the fixture passes the filter
func (f FixtureFilter) Matches(fixture model.Fixture) bool {
	switch f {
	case FilterPending:
		return !fixture.IsPlayed()
	case FilterCompleted:
		return fixture.IsPlayed()
	default:
		return true
	}
}

// FixtureView is a fixture with both of its teams resolved
type FixtureView struct {
	Fixture model.Fixture
	Team1   model.Team
	Team2   model.Team
}

// Winner returns the winning team, if a result is recorded
func (v FixtureView) Winner() (model.Team, bool) {
	if v.Fixture.WinnerID == nil {
		return model.Team{}, false
	}
	if *v.Fixture.WinnerID == v.Team1.ID {
		return v.Team1, true
	}
	return v.Team2, true
}

func newFixtureView(t *model.Tournament, f model.Fixture) FixtureView {
	v := FixtureView{Fixture: f}
	if team := t.GetTeam(f.Team1ID); team != nil {
		v.Team1 = *team
	}
	if team := t.GetTeam(f.Team2ID); team != nil {
		v.Team2 = *team
	}
	return v
}

// Ranking is the standings table plus overall progress
type Ranking struct {
	Entries []standings.Entry
	Summary standings.Summary
}

// Dashboard summarises the tournament for the landing page
type Dashboard struct {
	TeamCount         int
	FixtureCount      int
	CompletedFixtures int
	PendingFixtures   int
	NextFixtures      []FixtureView
	Leaders           []standings.Entry
	Summary           standings.Summary
}
