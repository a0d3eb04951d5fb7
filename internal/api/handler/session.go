package handler

import (
	"net/http"

	"github.com/mcoot/padel-tournament/internal/api/middleware"
	"github.com/mcoot/padel-tournament/internal/api/request"
	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/services/auth"
)

// SessionHandler handles login and logout
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles DELETE /api/v1/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.InvalidateSession(session.Token)
	response.NoContent(w)
}
