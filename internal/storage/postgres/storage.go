// Package postgres is a Postgres-backed implementation of the storage
// interface built on pgxpool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to Postgres, verifies the connection and ensures the schema
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := NewWithPool(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewWithPool creates a Postgres storage with an existing pool
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// EnsureSchema creates the tables if they do not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) LoadTournament(ctx context.Context) (*model.Tournament, error) {
	var (
		version int64
		data    []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT version, snapshot FROM tournament WHERE id = 1`,
	).Scan(&version, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewTournament(), nil
		}
		return nil, err
	}

	var t model.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t.Teams == nil {
		t.Teams = []model.Team{}
	}
	if t.Fixtures == nil {
		t.Fixtures = []model.Fixture{}
	}
	t.Version = version
	return &t, nil
}

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	next := t.Version + 1
	snapshot := t.Clone()
	snapshot.Version = next
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	var affected int64
	if t.Version == 0 {
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO tournament (id, version, snapshot, updated_at)
			VALUES (1, $1, $2, NOW())
			ON CONFLICT (id) DO NOTHING`,
			next, data,
		)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
	} else {
		tag, err := s.pool.Exec(ctx, `
			UPDATE tournament
			SET version = $1, snapshot = $2, updated_at = NOW()
			WHERE id = 1 AND version = $3`,
			next, data, t.Version,
		)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
	}

	if affected == 0 {
		return storage.ErrVersionConflict
	}
	t.Version = next
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			is_admin = EXCLUDED.is_admin`,
		user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	)
	return err
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.pool.QueryRow(ctx, `
		SELECT username, password_hash, is_admin, created_at
		FROM users WHERE username = $1`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT username, password_hash, is_admin, created_at
		FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	return err
}
