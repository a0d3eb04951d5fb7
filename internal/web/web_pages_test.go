package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/padel-tournament/internal/model"
)

func TestDashboardEmptyTournament(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#stat-teams .stat-value", "0")
	assertContainsText(t, doc, "#next-fixtures", "No pending fixtures.")
	assertContainsText(t, doc, "#leaders", "No teams registered yet.")
	assertContainsElement(t, doc, "a.nav-link.active[href='/']")
}

func TestDashboardShowsNextFixturesAndLeaders(t *testing.T) {
	ts := newWebTestServer(t)
	teams := ts.seedTeams(
		[2]string{"Ana", "Bea"},
		[2]string{"Cruz", "Dan"},
		[2]string{"Eva", "Fer"},
		[2]string{"Gil", "Hugo"},
	)
	round, err := ts.app.Controller.GenerateRound(t.Context())
	require.NoError(t, err)
	require.Len(t, round, 6)

	w := round[0].Fixture.Team1ID
	_, err = ts.app.Controller.RecordResult(t.Context(), round[0].Fixture.ID, &w)
	require.NoError(t, err)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, "#stat-teams .stat-value", "4")
	assertContainsText(t, doc, "#stat-fixtures .stat-value", "6")
	assertContainsText(t, doc, "#stat-completed .stat-value", "1")
	assertContainsText(t, doc, "#stat-pending .stat-value", "5")
	assert.Equal(t, 3, doc.Find("#next-fixtures li.fixture").Length())
	assert.Equal(t, 3, doc.Find("#leaders tr.standing").Length())
	assertContainsText(t, doc, "#leaders tr.standing:first-child .team", teamName(teams, w))
	assertContainsText(t, doc, ".progress", "1 of 6 matches played")
}

func TestStandingsPage(t *testing.T) {
	ts := newWebTestServer(t)
	teams := ts.seedTeams([2]string{"Ana", "Bea"}, [2]string{"Cruz", "Dan"})
	round, err := ts.app.Controller.GenerateRound(t.Context())
	require.NoError(t, err)

	winner := teams[1].ID
	_, err = ts.app.Controller.RecordResult(t.Context(), round[0].Fixture.ID, &winner)
	require.NoError(t, err)

	rr := ts.get("/standings")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	rows := doc.Find("table.standings tbody tr")
	require.Equal(t, 2, rows.Length())
	first := rows.First()
	assert.Equal(t, "1", first.Find(".position").Text())
	assert.Equal(t, "Cruz & Dan", first.Find(".team").Text())
	assert.Equal(t, "1", first.Find(".wins").Text())
	assert.Equal(t, "100.0", first.Find(".pct").Text())
	assert.Equal(t, "0.0", rows.Last().Find(".pct").Text())
	assertContainsElement(t, doc, "a.nav-link.active[href='/standings']")
}

func TestStandingsPageEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/standings")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, "table.standings")
	assertContainsText(t, doc, "main", "No teams registered yet.")
}

func TestFixturesPageFilters(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedTeams([2]string{"Ana", "Bea"}, [2]string{"Cruz", "Dan"}, [2]string{"Eva", "Fer"})
	round, err := ts.app.Controller.GenerateRound(t.Context())
	require.NoError(t, err)

	played := round[1].Fixture
	w := played.Team2ID
	_, err = ts.app.Controller.RecordResult(t.Context(), played.ID, &w)
	require.NoError(t, err)

	tests := []struct {
		query    string
		expected int
	}{
		{"", 3},
		{"?status=all", 3},
		{"?status=pending", 2},
		{"?status=completed", 1},
		{"?status=COMPLETED", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := ts.get("/fixtures" + tt.query)
			require.Equal(t, http.StatusOK, rr.Code)
			doc := parseHTML(rr.Body)
			assert.Equal(t, tt.expected, doc.Find("li.fixture").Length())
		})
	}

	rr := ts.get("/fixtures?status=completed")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "li.fixture.completed .winner", "Winner:")
	assertContainsElement(t, doc, "a.filter.active[href='/fixtures?status=completed']")
}

func TestFixturesPageUnknownFilter(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/fixtures?status=someday")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error-message", "Unknown fixture filter")
}

func TestPlayerNamesAreEscaped(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedTeams([2]string{"<b>Ana</b>", "Bea"}, [2]string{"Cruz", "Dan"})

	rr := ts.get("/standings")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.NotContains(t, body, "<b>Ana</b>")
	assert.Contains(t, body, "&lt;b&gt;Ana&lt;/b&gt;")
}

func TestUnknownPageNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func teamName(teams []model.Team, id model.TeamID) string {
	for _, t := range teams {
		if t.ID == id {
			return t.Name()
		}
	}
	return ""
}
