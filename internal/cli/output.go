package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/padel-tournament/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	case response.AuthResponse:
		o.printAuth(v)
	case response.Team:
		o.printTeams([]response.Team{v})
	case response.TeamsResponse:
		o.printTeams(v.Teams)
	case response.Fixture:
		o.printFixtures([]response.Fixture{v})
	case response.FixturesResponse:
		o.printFixtures(v.Fixtures)
	case response.StandingsResponse:
		o.printStandings(v.Standings)
		o.printSummary(v.Summary)
	case response.DashboardResponse:
		o.printDashboard(v)
	case response.User:
		o.printUsers([]response.User{v})
	case response.UsersResponse:
		o.printUsers(v.Users)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printAuth(a response.AuthResponse) {
	role := "user"
	if a.User.IsAdmin {
		role = "admin"
	}
	o.printf("Signed in as %s (%s)\n", a.User.Username, role)
	o.printf("Session expires: %s\n", a.ExpiresAt.Format("2006-01-02 15:04 MST"))
}

func (o *Output) printTeams(teams []response.Team) {
	if len(teams) == 0 {
		o.printf("No teams registered.\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTEAM\tPLAYED\tWON\tLOST")
	for _, t := range teams {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", t.ID, t.Name, t.Played, t.Wins, t.Losses)
	}
	_ = tw.Flush()
}

func (o *Output) printFixtures(fixtures []response.Fixture) {
	if len(fixtures) == 0 {
		o.printf("No fixtures.\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTEAM 1\tTEAM 2\tSTATUS\tWINNER")
	for _, f := range fixtures {
		winner := "-"
		if f.WinnerID != nil {
			if *f.WinnerID == f.Team1.ID {
				winner = f.Team1.Name
			} else {
				winner = f.Team2.Name
			}
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.Team1.Name, f.Team2.Name, f.Status, winner)
	}
	_ = tw.Flush()
}

func (o *Output) printStandings(entries []response.StandingEntry) {
	if len(entries) == 0 {
		o.printf("No teams registered.\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tTEAM\tPLAYED\tWON\tLOST\tWIN %")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.1f\n", e.Position, e.Team.Name, e.Played, e.Wins, e.Losses, e.WinPct)
	}
	_ = tw.Flush()
}

func (o *Output) printSummary(s response.Summary) {
	o.printf("Progress: %d of %d matches played (%.0f%%)\n", s.MatchesPlayed, s.MatchesPossible, s.Progress)
}

func (o *Output) printDashboard(d response.DashboardResponse) {
	o.printf("Teams: %d\n", d.Teams)
	o.printf("Fixtures: %d (%d played, %d pending)\n", d.Fixtures, d.Completed, d.Pending)
	o.printf("\nNext fixtures:\n")
	o.printFixtures(d.NextFixtures)
	o.printf("\nLeaders:\n")
	o.printStandings(d.Leaders)
	o.printSummary(d.Summary)
}

func (o *Output) printUsers(users []response.User) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "USERNAME\tROLE\tCREATED")
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Username, role, u.CreatedAt.Format("2006-01-02"))
	}
	_ = tw.Flush()
}
