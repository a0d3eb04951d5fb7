package handler

import (
	"net/http"

	"github.com/mcoot/padel-tournament/internal/api/request"
	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

// FixtureHandler handles round generation and results
type FixtureHandler struct {
	controller *tournament.Controller
}

// NewFixtureHandler creates a new fixture handler
func NewFixtureHandler(controller *tournament.Controller) *FixtureHandler {
	return &FixtureHandler{
		controller: controller,
	}
}

// GenerateRound handles POST /api/v1/rounds
func (h *FixtureHandler) GenerateRound(w http.ResponseWriter, r *http.Request) {
	created, err := h.controller.GenerateRound(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.FixturesFromViews(created))
}

// List handles GET /api/v1/fixtures?status=all|pending|completed
func (h *FixtureHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := tournament.ParseFixtureFilter(r.URL.Query().Get("status"))
	if err != nil {
		WriteError(w, err)
		return
	}

	views, err := h.controller.ListFixtures(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.FixturesFromViews(views))
}

// RecordResult handles PUT /api/v1/fixtures/{id}/result
func (h *FixtureHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.RecordResultRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	winner, err := req.Winner()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	view, err := h.controller.RecordResult(r.Context(), model.FixtureID(id), winner)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.FixtureFromView(view))
}
