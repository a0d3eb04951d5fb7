package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/padel-tournament/internal/api"
	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/cli"
	"github.com/mcoot/padel-tournament/internal/factory"
	"github.com/mcoot/padel-tournament/internal/web"
	"github.com/mcoot/padel-tournament/internal/testutil"
)

// cliRunner runs CLI commands in-process against a server
type cliRunner struct {
	t         *testing.T
	serverURL string
	tokenFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()
	t.Setenv("PADEL_TOKEN", "")

	return &cliRunner{
		t:         t,
		serverURL: serverURL,
		tokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) exec(args []string) (string, error) {
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.exec(append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...))
}

func (r *cliRunner) runText(args ...string) (string, error) {
	return r.exec(append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
	}, args...))
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	return r.exec(append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...))
}

// mustRunJSON runs a command and decodes its JSON output into v
func (r *cliRunner) mustRunJSON(v any, args ...string) {
	r.t.Helper()
	out, err := r.run(args...)
	require.NoError(r.t, err, "command %v failed: %s", args, out)
	require.NoError(r.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// startTestServer serves the combined API and web routers
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app := factory.NewTestApp()
	logger := testutil.NopLogger()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Controller:  app.Controller,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Controller:  app.Controller,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHealth(t *testing.T) {
	server := startTestServer(t)
	r := newCLIRunner(t, server.URL)

	out, err := r.run("health")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestRequiresLogin(t *testing.T) {
	server := startTestServer(t)
	r := newCLIRunner(t, server.URL)

	_, err := r.run("team", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}

func TestFullTournament(t *testing.T) {
	server := startTestServer(t)
	r := newCLIRunner(t, server.URL)

	var auth response.AuthResponse
	r.mustRunJSON(&auth, "login", "--user", "admin", "--pass", factory.TestAdminPassword)
	assert.True(t, auth.User.IsAdmin)

	var team response.Team
	r.mustRunJSON(&team, "team", "add", "Ana", "Bea")
	assert.Equal(t, 1, team.ID)
	r.mustRunJSON(&team, "team", "add", "Cruz", "Dan")
	r.mustRunJSON(&team, "team", "add", "Eva", "Fer")
	assert.Equal(t, 3, team.ID)

	_, err := r.run("team", "add", "Ana", "Gil")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_PLAYER")

	var round response.FixturesResponse
	r.mustRunJSON(&round, "round", "generate")
	require.Len(t, round.Fixtures, 3)

	_, err = r.run("round", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_NEW_FIXTURES")

	// Team 3 wins both of its fixtures, team 1 beats team 2
	results := map[int]string{}
	for _, f := range round.Fixtures {
		switch {
		case f.Team2.ID == 3:
			results[f.ID] = "3"
		default:
			results[f.ID] = "1"
		}
	}
	for id, winner := range results {
		var fixture response.Fixture
		r.mustRunJSON(&fixture, "fixture", "result", strconv.Itoa(id), winner)
		assert.Equal(t, response.StatusCompleted, fixture.Status)
	}

	var standings response.StandingsResponse
	r.mustRunJSON(&standings, "standings")
	require.Len(t, standings.Standings, 3)
	assert.Equal(t, 3, standings.Standings[0].Team.ID)
	assert.Equal(t, 1, standings.Standings[1].Team.ID)
	assert.Equal(t, 2, standings.Standings[2].Team.ID)
	assert.Equal(t, 3, standings.Summary.MatchesPlayed)

	// Clearing a result moves the fixture back to pending
	var cleared response.Fixture
	r.mustRunJSON(&cleared, "fixture", "clear", strconv.Itoa(round.Fixtures[0].ID))
	assert.Nil(t, cleared.WinnerID)

	var pending response.FixturesResponse
	r.mustRunJSON(&pending, "fixture", "list", "--status", "pending")
	require.Len(t, pending.Fixtures, 1)
	assert.Equal(t, round.Fixtures[0].ID, pending.Fixtures[0].ID)

	var dashboard response.DashboardResponse
	r.mustRunJSON(&dashboard, "dashboard")
	assert.Equal(t, 3, dashboard.Teams)
	assert.Equal(t, 2, dashboard.Completed)
	assert.Equal(t, 1, dashboard.Pending)

	// Removing a team takes its fixtures with it
	_, err = r.run("team", "remove", "2")
	require.NoError(t, err)

	var all response.FixturesResponse
	r.mustRunJSON(&all, "fixture", "list")
	assert.Len(t, all.Fixtures, 1)

	_, err = r.run("reset")
	require.Error(t, err, "reset without --yes must refuse")

	_, err = r.run("reset", "--yes")
	require.NoError(t, err)

	var teams response.TeamsResponse
	r.mustRunJSON(&teams, "team", "list")
	assert.Empty(t, teams.Teams)
}

func TestUserManagementAndPermissions(t *testing.T) {
	server := startTestServer(t)
	admin := newCLIRunner(t, server.URL)

	var auth response.AuthResponse
	admin.mustRunJSON(&auth, "login", "--user", "admin", "--pass", factory.TestAdminPassword)

	var user response.User
	admin.mustRunJSON(&user, "user", "add", "--user", "referee", "--pass", "whistle")
	assert.Equal(t, "referee", user.Username)
	assert.False(t, user.IsAdmin)

	var users response.UsersResponse
	admin.mustRunJSON(&users, "user", "list")
	assert.Len(t, users.Users, 2)

	referee := newCLIRunner(t, server.URL)
	var refAuth response.AuthResponse
	referee.mustRunJSON(&refAuth, "login", "--user", "referee", "--pass", "whistle")

	var team response.Team
	referee.mustRunJSON(&team, "team", "add", "Ana", "Bea")

	_, err := referee.run("reset", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORBIDDEN")

	_, err = referee.run("user", "list")
	require.Error(t, err)

	// An explicit token works without the token file
	out, err := admin.runWithToken(refAuth.SessionToken, "team", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana & Bea")

	_, err = admin.run("user", "remove", "referee")
	require.NoError(t, err)

	_, err = admin.run("user", "remove", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CANNOT_DELETE_ADMIN")
}

func TestLogoutForgetsToken(t *testing.T) {
	server := startTestServer(t)
	r := newCLIRunner(t, server.URL)

	var auth response.AuthResponse
	r.mustRunJSON(&auth, "login", "--user", "admin", "--pass", factory.TestAdminPassword)

	_, err := r.run("logout")
	require.NoError(t, err)

	_, err = r.run("team", "list")
	require.Error(t, err)

	// The old token is no longer valid on the server either
	_, err = r.runWithToken(auth.SessionToken, "team", "list")
	require.Error(t, err)
}

func TestTextOutput(t *testing.T) {
	server := startTestServer(t)
	r := newCLIRunner(t, server.URL)

	_, err := r.run("login", "--user", "admin", "--pass", factory.TestAdminPassword)
	require.NoError(t, err)
	_, err = r.run("team", "add", "Ana", "Bea")
	require.NoError(t, err)
	_, err = r.run("team", "add", "Cruz", "Dan")
	require.NoError(t, err)

	out, err := r.runText("round", "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana & Bea")
	assert.Contains(t, out, "pending")

	out, err = r.runText("standings")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, out, "0 of 1 matches played")
}

func TestWebDashboardServedAlongsideAPI(t *testing.T) {
	server := startTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
