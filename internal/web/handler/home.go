package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/web/templates/pages"
)

// ScoreboardHandler renders the public tournament pages
type ScoreboardHandler struct {
	controller *tournament.Controller
	logger     *slog.Logger
}

// NewScoreboardHandler creates a new ScoreboardHandler
func NewScoreboardHandler(controller *tournament.Controller, logger *slog.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		controller: controller,
		logger:     logger,
	}
}

// Dashboard renders the landing page
func (h *ScoreboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.controller.Dashboard(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	render(w, r, http.StatusOK, pages.Dashboard(pages.DashboardData{
		PageData:  pageData(r, "Dashboard", "dashboard"),
		Dashboard: d,
	}))
}

// Standings renders the full standings table
func (h *ScoreboardHandler) Standings(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.controller.Standings(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	render(w, r, http.StatusOK, pages.Standings(pages.StandingsData{
		PageData: pageData(r, "Standings", "standings"),
		Ranking:  ranking,
	}))
}

// Fixtures renders the fixture list, filtered by ?status=
func (h *ScoreboardHandler) Fixtures(w http.ResponseWriter, r *http.Request) {
	filter, err := tournament.ParseFixtureFilter(r.URL.Query().Get("status"))
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	views, err := h.controller.ListFixtures(r.Context(), filter)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	render(w, r, http.StatusOK, pages.Fixtures(pages.FixturesData{
		PageData: pageData(r, "Fixtures", "fixtures"),
		Filter:   filter,
		Fixtures: views,
	}))
}
