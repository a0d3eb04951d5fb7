package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/padel-tournament/internal/dependencies/clock"
	"github.com/mcoot/padel-tournament/internal/dependencies/random"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUserExists         = errors.New("username already exists")
	ErrForbidden          = errors.New("admin access required")
	ErrCannotDeleteAdmin  = errors.New("the admin account cannot be deleted")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	Username  string
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles users, authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	bcryptCost      int
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	BcryptCost      int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// EnsureAdmin creates the admin account with the given password if it does
// not exist yet. An existing admin keeps its password.
func (s *Service) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.storage.GetUser(ctx, model.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	if _, err := s.createUser(ctx, model.AdminUsername, password, true); err != nil {
		return err
	}
	s.logger.Info("admin account created", slog.String("username", model.AdminUsername))
	return nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUser(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// CreateUser adds a non-admin account. Only admins may create users.
func (s *Service) CreateUser(ctx context.Context, actor *Session, username, password string) (*model.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	user, err := s.createUser(ctx, username, password, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created",
		slog.String("username", user.Username),
		slog.String("by", actor.Username),
	)
	return user, nil
}

// ListUsers returns all accounts sorted by username. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor *Session) ([]*model.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.storage.ListUsers(ctx)
}

// DeleteUser removes an account and ends its sessions. The admin account
// cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, actor *Session, username string) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}
	if username == model.AdminUsername {
		return ErrCannotDeleteAdmin
	}
	if _, err := s.storage.GetUser(ctx, username); err != nil {
		return err
	}
	if err := s.storage.DeleteUser(ctx, username); err != nil {
		return err
	}

	s.mu.Lock()
	for token, session := range s.sessions {
		if session.Username == username {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()

	s.logger.Info("user deleted",
		slog.String("username", username),
		slog.String("by", actor.Username),
	)
	return nil
}

func (s *Service) createUser(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.storage.GetUser(ctx, username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     s.random.Token(),
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}
