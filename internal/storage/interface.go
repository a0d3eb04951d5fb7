package storage

import (
	"context"
	"errors"

	"github.com/mcoot/padel-tournament/internal/model"
)

// ErrVersionConflict is returned by SaveTournament when the stored snapshot
// has moved on since the caller loaded it
var ErrVersionConflict = errors.New("tournament was modified concurrently")

// Storage defines the interface for data persistence
type Storage interface {
	// Tournament operations

	// LoadTournament returns the stored snapshot, or an empty tournament with
	// version 0 if nothing has been saved yet
	LoadTournament(ctx context.Context) (*model.Tournament, error)

	// SaveTournament stores t if the stored version still equals t.Version,
	// then bumps t.Version. Otherwise it returns ErrVersionConflict.
	SaveTournament(ctx context.Context, t *model.Tournament) error

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, username string) error
}
