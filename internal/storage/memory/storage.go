package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	tournament *model.Tournament
	users      map[string]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[string]*model.User),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) LoadTournament(ctx context.Context) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tournament == nil {
		return model.NewTournament(), nil
	}
	return s.tournament.Clone(), nil
}

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if s.tournament != nil {
		current = s.tournament.Version
	}
	if current != t.Version {
		return storage.ErrVersionConflict
	}

	t.Version = current + 1
	s.tournament = t.Clone()
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
	return nil
}
