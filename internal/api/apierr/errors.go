package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInsufficientTeams  = "INSUFFICIENT_TEAMS"
	CodeNoNewFixtures      = "NO_NEW_FIXTURES"
	CodeDuplicatePlayer    = "DUPLICATE_PLAYER"
	CodeSamePlayer         = "SAME_PLAYER"
	CodeInvalidPlayerName  = "INVALID_PLAYER_NAME"
	CodeFixtureNotFound    = "FIXTURE_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeInvalidWinner      = "INVALID_WINNER"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserExists         = "USER_EXISTS"
	CodeCannotDeleteAdmin  = "CANNOT_DELETE_ADMIN"
	CodeConflict           = "CONFLICT"
	CodeStorageFailure     = "STORAGE_FAILURE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Storage errors first: they may wrap anything
	case errors.Is(err, storage.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Tournament was modified concurrently, please retry"}}
	case errors.Is(err, model.ErrStorageFailure):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageFailure, "Tournament storage is unavailable"}}

	// Map model errors
	case errors.Is(err, model.ErrInsufficientTeams):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientTeams, "At least two teams are required"}}
	case errors.Is(err, model.ErrNoNewFixtures):
		return &httpError{http.StatusConflict, APIError{CodeNoNewFixtures, "Every pairing is already scheduled"}}
	case errors.Is(err, model.ErrDuplicatePlayer):
		return &httpError{http.StatusConflict, APIError{CodeDuplicatePlayer, "Player is already on another team"}}
	case errors.Is(err, model.ErrSamePlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeSamePlayer, "A team needs two different players"}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerName, "Player names must not be empty"}}
	case errors.Is(err, model.ErrFixtureNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeFixtureNotFound, "Fixture not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrInvalidWinner):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWinner, "Winner must be one of the fixture's teams"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, tournament.ErrInvalidFilter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "status must be all, pending or completed"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrMissingCredentials):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "username and password are required"}}
	case errors.Is(err, auth.ErrUserExists):
		return &httpError{http.StatusConflict, APIError{CodeUserExists, "Username already exists"}}
	case errors.Is(err, auth.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin access required"}}
	case errors.Is(err, auth.ErrCannotDeleteAdmin):
		return &httpError{http.StatusBadRequest, APIError{CodeCannotDeleteAdmin, "The admin account cannot be deleted"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests"}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Route not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
