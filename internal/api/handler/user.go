package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/padel-tournament/internal/api/middleware"
	"github.com/mcoot/padel-tournament/internal/api/request"
	"github.com/mcoot/padel-tournament/internal/api/response"
	"github.com/mcoot/padel-tournament/internal/services/auth"
)

// UserHandler handles account management (admin only)
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	users, err := h.authService.ListUsers(r.Context(), session)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session := middleware.MustGetSession(r.Context())
	user, err := h.authService.CreateUser(r.Context(), session, req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Delete handles DELETE /api/v1/users/{username}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	if err := h.authService.DeleteUser(r.Context(), session, mux.Vars(r)["username"]); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
