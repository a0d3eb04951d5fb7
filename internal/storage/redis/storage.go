package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Tournament operations

func (s *Storage) LoadTournament(ctx context.Context) (*model.Tournament, error) {
	return loadTournament(ctx, s.client)
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadTournament(ctx context.Context, c getter) (*model.Tournament, error) {
	data, err := c.Get(ctx, tournamentKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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
	return &t, nil
}

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	next := t.Clone()
	next.Version = t.Version + 1
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := loadTournament(ctx, tx)
		if err != nil {
			return err
		}
		if current.Version != t.Version {
			return storage.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tournamentKey(), data, 0)
			return nil
		})
		return err
	}, tournamentKey())

	if errors.Is(err, redis.TxFailedErr) {
		return storage.ErrVersionConflict
	}
	if err != nil {
		return err
	}

	t.Version = next.Version
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.Username), data, 0)
	pipe.SAdd(ctx, usersIndexKey(), user.Username)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	usernames, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(usernames)

	if len(usernames) == 0 {
		return []*model.User{}, nil
	}

	// Use pipeline to fetch all users
	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(usernames))
	for i, name := range usernames {
		cmds[i] = pipe.Get(ctx, userKey(name))
	}
	_, err = pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	users := make([]*model.User, 0, len(usernames))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // Index entry without a record
			}
			return nil, err
		}
		var user model.User
		if err := json.Unmarshal(data, &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, userKey(username))
	pipe.SRem(ctx, usersIndexKey(), username)
	_, err := pipe.Exec(ctx)
	return err
}
