package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/padel-tournament/internal/dependencies/clock"
	"github.com/mcoot/padel-tournament/internal/dependencies/random"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/storage"
	"github.com/mcoot/padel-tournament/internal/storage/memory"
	pgstorage "github.com/mcoot/padel-tournament/internal/storage/postgres"
	redisstorage "github.com/mcoot/padel-tournament/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService *auth.Service
	Controller  *tournament.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// TournamentConfig holds controller settings (optional)
	// If zero value, defaults to tournament.DefaultConfig()
	TournamentConfig tournament.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds database settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("type", storageTypeOrDefault(cfg.StorageType)))

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	tournamentCfg := cfg.TournamentConfig
	if tournamentCfg == (tournament.Config{}) {
		tournamentCfg = tournament.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, tournamentCfg, logger), nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'postgres'", cfg.StorageType)
	}
}

// Close releases storage connections, if the backend holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	tournamentCfg tournament.Config,
	logger *slog.Logger,
) *App {
	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		AuthService: auth.New(store, clk, rnd, logger, authCfg),
		Controller:  tournament.NewController(store, clk, logger, tournamentCfg),
	}
}
