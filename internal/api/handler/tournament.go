package handler

import (
	"net/http"

	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

// TournamentHandler handles whole-tournament endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{
		controller: controller,
	}
}

// Standings handles GET /api/v1/standings
func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.controller.Standings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StandingsFromRanking(ranking))
}

// Dashboard handles GET /api/v1/dashboard
func (h *TournamentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.controller.Dashboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DashboardFromModel(d))
}

// Reset handles DELETE /api/v1/tournament (admin only)
func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
