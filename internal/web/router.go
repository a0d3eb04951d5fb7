package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/web/handler"
	"github.com/mcoot/padel-tournament/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Controller  *tournament.Controller
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the web pages onto r
func Register(r *mux.Router, cfg RouterConfig) {
	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Flash())
	pages.Use(middleware.OptionalAuth(cfg.AuthService))

	scoreboard := handler.NewScoreboardHandler(cfg.Controller, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)

	pages.HandleFunc("/", scoreboard.Dashboard).Methods(http.MethodGet)
	pages.HandleFunc("/standings", scoreboard.Standings).Methods(http.MethodGet)
	pages.HandleFunc("/fixtures", scoreboard.Fixtures).Methods(http.MethodGet)

	pages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	pages.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
}
