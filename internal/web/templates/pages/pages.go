// Package pages renders the public scoreboard pages.
package pages

import (
	"fmt"

	"github.com/mcoot/padel-tournament/internal/services/standings"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/web/templates/layout"
)

//go:generate templ generate

// DashboardData is the data for the dashboard page
type DashboardData struct {
	layout.PageData
	Dashboard *tournament.Dashboard
}

// StandingsData is the data for the standings page
type StandingsData struct {
	layout.PageData
	Ranking *tournament.Ranking
}

// FixturesData is the data for the fixtures page
type FixturesData struct {
	layout.PageData
	Filter   tournament.FixtureFilter
	Fixtures []tournament.FixtureView
}

// LoginData is the data for the sign-in page
type LoginData struct {
	layout.PageData
	Next string
}

// ErrorData is the data for the error page
type ErrorData struct {
	layout.PageData
	Message string
}

var fixtureFilters = []tournament.FixtureFilter{
	tournament.FilterAll,
	tournament.FilterPending,
	tournament.FilterCompleted,
}

func filterURL(f tournament.FixtureFilter) string {
	return "/fixtures?status=" + string(f)
}

func fixtureStatus(v tournament.FixtureView) string {
	if v.Fixture.IsPlayed() {
		return "completed"
	}
	return "pending"
}

func progressText(s standings.Summary) string {
	return fmt.Sprintf("%d of %d matches played (%.0f%%)", s.MatchesPlayed, s.MatchesPossible, s.Progress)
}

func winPct(pct float64) string {
	return fmt.Sprintf("%.1f", pct)
}
