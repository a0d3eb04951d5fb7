package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/padel-tournament/internal/api"
	"github.com/mcoot/padel-tournament/internal/factory"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	pgstorage "github.com/mcoot/padel-tournament/internal/storage/postgres"
	redisstorage "github.com/mcoot/padel-tournament/internal/storage/redis"
	"github.com/mcoot/padel-tournament/internal/web"
)

// How often expired sessions are swept
const sessionSweepInterval = 10 * time.Minute

func main() {
	// A .env file is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			logger.Error("DATABASE_URL required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.URL = dbURL
		cfg.PostgresConfig = &pgCfg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Error("ADMIN_PASSWORD must be set to create the admin account")
		os.Exit(1)
	}
	if err := app.AuthService.EnsureAdmin(ctx, adminPassword); err != nil {
		logger.Error("failed to create admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		Controller:         app.Controller,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitRPS:       envFloat(logger, "RATE_LIMIT_RPS", 0),
		RateLimitBurst:     int(envFloat(logger, "RATE_LIMIT_BURST", 20)),
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Controller:  app.Controller,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	go sweepSessions(ctx, app.AuthService, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// sweepSessions removes expired sessions until ctx is cancelled
func sweepSessions(ctx context.Context, authService *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := authService.CleanExpiredSessions(); n > 0 {
				logger.Debug("expired sessions removed", slog.Int("count", n))
			}
		}
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envFloat(logger *slog.Logger, key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn("ignoring invalid number", slog.String("key", key), slog.String("value", raw))
		return def
	}
	return v
}
