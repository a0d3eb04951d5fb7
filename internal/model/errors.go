package model

import "errors"

// Common errors used across the application
var (
	// Fixture generation errors
	ErrInsufficientTeams = errors.New("at least two teams are required to generate a round")
	ErrNoNewFixtures     = errors.New("no new fixtures to generate")

	// Roster errors
	ErrDuplicatePlayer   = errors.New("player is already on another team")
	ErrSamePlayer        = errors.New("a team needs two different players")
	ErrInvalidPlayerName = errors.New("player name must not be empty")
	ErrTeamNotFound      = errors.New("team not found")

	// Result errors
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrInvalidWinner   = errors.New("winner is not one of the fixture's teams")

	// State errors
	ErrInvalidState   = errors.New("tournament state is inconsistent")
	ErrStorageFailure = errors.New("storage failure")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
