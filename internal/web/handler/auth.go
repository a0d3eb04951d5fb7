package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/web/middleware"
	"github.com/mcoot/padel-tournament/internal/web/templates/pages"
)

// AuthHandler handles sign-in pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage renders the sign-in form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginData{
		PageData: pageData(r, "Sign in", ""),
		Next:     r.URL.Query().Get("next"),
	}))
}

// Login handles sign-in form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		middleware.SetFlash(w, "error", "Username and password are required")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.SetFlash(w, "success", "Welcome back, "+session.Username+"!")

	http.Redirect(w, r, localPath(next), http.StatusSeeOther)
}

// localPath returns next when it is a path on this site and "/" otherwise.
// Browsers read a backslash as a slash, so "/\host" is treated like "//host".
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been signed out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
