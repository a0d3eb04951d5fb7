package standings

import (
	"sort"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/fixtures"
)

// Entry is one row of the standings table
type Entry struct {
	Position int
	Team     model.Team
	Played   int
	Wins     int
	Losses   int
	WinPct   float64 // 0-100, 0 when nothing has been played
}

// Summary describes overall tournament progress
type Summary struct {
	Teams           int
	MatchesPlayed   int
	MatchesPossible int
	Progress        float64 // 0-100
}

// Compute returns the teams ranked by wins descending, then losses
// ascending. Exact ties are ordered by team id. The input is not modified.
func Compute(teams []model.Team) []model.Team {
	ranked := model.CloneTeams(teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j])
	})
	return ranked
}

func ranksBefore(a, b model.Team) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	return a.ID < b.ID
}

// Table returns the ranked standings with per-team statistics
func Table(teams []model.Team) []Entry {
	ranked := Compute(teams)
	entries := make([]Entry, len(ranked))
	for i, t := range ranked {
		played := t.Played()
		var pct float64
		if played > 0 {
			pct = float64(t.Wins) / float64(played) * 100
		}
		entries[i] = Entry{
			Position: i + 1,
			Team:     t,
			Played:   played,
			Wins:     t.Wins,
			Losses:   t.Losses,
			WinPct:   pct,
		}
	}
	return entries
}

// Summarize derives tournament progress from the team counters
func Summarize(teams []model.Team) Summary {
	total := 0
	for _, t := range teams {
		total += t.Played()
	}

	possible := fixtures.PossiblePairings(len(teams))
	var progress float64
	if possible > 0 {
		progress = float64(total/2) / float64(possible) * 100
	}

	return Summary{
		Teams:           len(teams),
		MatchesPlayed:   total / 2,
		MatchesPossible: possible,
		Progress:        progress,
	}
}
