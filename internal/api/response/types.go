package response

import (
	"time"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/standings"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

// Fixture status values
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// User represents a user account in API responses
type User struct {
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// UsersResponse lists user accounts
type UsersResponse struct {
	Users []User `json:"users"`
}

// UsersFromModel converts a slice of users
func UsersFromModel(users []*model.User) UsersResponse {
	resp := UsersResponse{Users: make([]User, len(users))}
	for i, u := range users {
		resp.Users[i] = UserFromModel(u)
	}
	return resp
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	User         SessionUser `json:"user"`
	SessionToken string      `json:"session_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// SessionUser is the user attached to a session
type SessionUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         SessionUser{Username: s.Username, IsAdmin: s.IsAdmin},
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Team represents a team in API responses
type Team struct {
	ID      int    `json:"id"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Played  int    `json:"played"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t model.Team) Team {
	return Team{
		ID:      int(t.ID),
		Player1: t.Players[0],
		Player2: t.Players[1],
		Name:    t.Name(),
		Wins:    t.Wins,
		Losses:  t.Losses,
		Played:  t.Played(),
	}
}

// TeamsResponse lists teams
type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

// TeamsFromModel converts a slice of teams
func TeamsFromModel(teams []model.Team) TeamsResponse {
	resp := TeamsResponse{Teams: make([]Team, len(teams))}
	for i, t := range teams {
		resp.Teams[i] = TeamFromModel(t)
	}
	return resp
}

// Fixture represents a fixture in API responses
type Fixture struct {
	ID        int       `json:"id"`
	Team1     Team      `json:"team1"`
	Team2     Team      `json:"team2"`
	WinnerID  *int      `json:"winner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FixtureFromView converts a resolved fixture
func FixtureFromView(v tournament.FixtureView) Fixture {
	f := Fixture{
		ID:        int(v.Fixture.ID),
		Team1:     TeamFromModel(v.Team1),
		Team2:     TeamFromModel(v.Team2),
		Status:    StatusPending,
		CreatedAt: v.Fixture.CreatedAt,
	}
	if v.Fixture.WinnerID != nil {
		w := int(*v.Fixture.WinnerID)
		f.WinnerID = &w
		f.Status = StatusCompleted
	}
	return f
}

// FixturesResponse lists fixtures
type FixturesResponse struct {
	Fixtures []Fixture `json:"fixtures"`
}

// FixturesFromViews converts a slice of resolved fixtures
func FixturesFromViews(views []tournament.FixtureView) FixturesResponse {
	resp := FixturesResponse{Fixtures: make([]Fixture, len(views))}
	for i, v := range views {
		resp.Fixtures[i] = FixtureFromView(v)
	}
	return resp
}

// StandingEntry is one row of the standings table
type StandingEntry struct {
	Position int     `json:"position"`
	Team     Team    `json:"team"`
	Played   int     `json:"played"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinPct   float64 `json:"win_pct"`
}

// Summary describes overall tournament progress
type Summary struct {
	Teams           int     `json:"teams"`
	MatchesPlayed   int     `json:"matches_played"`
	MatchesPossible int     `json:"matches_possible"`
	Progress        float64 `json:"progress"`
}

// StandingsResponse is the ranked table plus progress
type StandingsResponse struct {
	Standings []StandingEntry `json:"standings"`
	Summary   Summary         `json:"summary"`
}

func entriesFromModel(entries []standings.Entry) []StandingEntry {
	out := make([]StandingEntry, len(entries))
	for i, e := range entries {
		out[i] = StandingEntry{
			Position: e.Position,
			Team:     TeamFromModel(e.Team),
			Played:   e.Played,
			Wins:     e.Wins,
			Losses:   e.Losses,
			WinPct:   e.WinPct,
		}
	}
	return out
}

func summaryFromModel(s standings.Summary) Summary {
	return Summary{
		Teams:           s.Teams,
		MatchesPlayed:   s.MatchesPlayed,
		MatchesPossible: s.MatchesPossible,
		Progress:        s.Progress,
	}
}

// StandingsFromRanking converts the controller ranking
func StandingsFromRanking(r *tournament.Ranking) StandingsResponse {
	return StandingsResponse{
		Standings: entriesFromModel(r.Entries),
		Summary:   summaryFromModel(r.Summary),
	}
}

// DashboardResponse summarises the tournament
type DashboardResponse struct {
	Teams        int             `json:"teams"`
	Fixtures     int             `json:"fixtures"`
	Completed    int             `json:"completed"`
	Pending      int             `json:"pending"`
	NextFixtures []Fixture       `json:"next_fixtures"`
	Leaders      []StandingEntry `json:"leaders"`
	Summary      Summary         `json:"summary"`
}

// DashboardFromModel converts the controller dashboard
func DashboardFromModel(d *tournament.Dashboard) DashboardResponse {
	return DashboardResponse{
		Teams:        d.TeamCount,
		Fixtures:     d.FixtureCount,
		Completed:    d.CompletedFixtures,
		Pending:      d.PendingFixtures,
		NextFixtures: FixturesFromViews(d.NextFixtures).Fixtures,
		Leaders:      entriesFromModel(d.Leaders),
		Summary:      summaryFromModel(d.Summary),
	}
}
