package request

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/mcoot/padel-tournament/internal/model"
)

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddTeamRequest is the request body for registering a team
type AddTeamRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// RecordResultRequest is the request body for setting a fixture result.
// winner_id must be present; null clears the result.
type RecordResultRequest struct {
	WinnerID json.RawMessage `json:"winner_id"`
}

// ErrWinnerRequired is returned when winner_id is missing from the body
var ErrWinnerRequired = errors.New("winner_id is required (null clears the result)")

// Winner decodes winner_id into a team ID, or nil for null
func (r RecordResultRequest) Winner() (*model.TeamID, error) {
	if len(r.WinnerID) == 0 {
		return nil, ErrWinnerRequired
	}
	if bytes.Equal(bytes.TrimSpace(r.WinnerID), []byte("null")) {
		return nil, nil
	}
	var id int
	if err := json.Unmarshal(r.WinnerID, &id); err != nil {
		return nil, errors.New("winner_id must be an integer or null")
	}
	winner := model.TeamID(id)
	return &winner, nil
}
