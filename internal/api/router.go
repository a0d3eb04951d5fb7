package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/padel-tournament/internal/api/apierr"
	"github.com/mcoot/padel-tournament/internal/api/handler"
	"github.com/mcoot/padel-tournament/internal/api/middleware"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Controller  *tournament.Controller

	// CORSAllowedOrigins enables CORS for these origins (optional)
	CORSAllowedOrigins []string
	// RateLimitRPS and RateLimitBurst limit requests per client IP.
	// Zero disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new API router with all routes configured. CORS wraps
// the whole router: no route accepts OPTIONS, so preflights must be answered
// before route matching.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return middleware.CORS(cfg.CORSAllowedOrigins)(r)
}

// Register mounts the API under /api/v1 on an existing router. CORS is not
// applied here; see NewRouter.
func Register(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	teamHandler := handler.NewTeamHandler(cfg.Controller)
	fixtureHandler := handler.NewFixtureHandler(cfg.Controller)
	tournamentHandler := handler.NewTournamentHandler(cfg.Controller)
	userHandler := handler.NewUserHandler(cfg.AuthService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.Login).Methods(http.MethodPost)

	// Routes for any signed-in user
	user := api.NewRoute().Subrouter()
	user.Use(authMiddleware)
	user.HandleFunc("/session", sessionHandler.Logout).Methods(http.MethodDelete)

	user.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/teams", teamHandler.Add).Methods(http.MethodPost)
	user.HandleFunc("/teams/{id}", teamHandler.Remove).Methods(http.MethodDelete)

	user.HandleFunc("/rounds", fixtureHandler.GenerateRound).Methods(http.MethodPost)
	user.HandleFunc("/fixtures", fixtureHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/fixtures/{id}/result", fixtureHandler.RecordResult).Methods(http.MethodPut)

	user.HandleFunc("/standings", tournamentHandler.Standings).Methods(http.MethodGet)
	user.HandleFunc("/dashboard", tournamentHandler.Dashboard).Methods(http.MethodGet)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(authMiddleware)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/tournament", tournamentHandler.Reset).Methods(http.MethodDelete)
	admin.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{username}", userHandler.Delete).Methods(http.MethodDelete)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
