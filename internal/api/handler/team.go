package handler

import (
	"net/http"

	"github.com/mcoot/padel-tournament/internal/api/request"
	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

// TeamHandler handles roster endpoints
type TeamHandler struct {
	controller *tournament.Controller
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(controller *tournament.Controller) *TeamHandler {
	return &TeamHandler{
		controller: controller,
	}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.controller.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams))
}

// Add handles POST /api/v1/teams
func (h *TeamHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddTeamRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	team, err := h.controller.AddTeam(r.Context(), req.Player1, req.Player2)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.TeamFromModel(team))
}

// Remove handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.controller.RemoveTeam(r.Context(), model.TeamID(id)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
