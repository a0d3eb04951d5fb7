package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/web/middleware"
	"github.com/mcoot/padel-tournament/internal/web/templates/layout"
	"github.com/mcoot/padel-tournament/internal/web/templates/pages"
)

// pageData builds the shell data from the request context
func pageData(r *http.Request, title, active string) layout.PageData {
	data := layout.PageData{
		Title:  title,
		Flash:  middleware.GetFlash(r.Context()),
		Active: active,
	}
	if session := middleware.GetSession(r.Context()); session != nil {
		data.Username = session.Username
	}
	return data
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderError shows the error page with a status matching the failure
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred."

	switch {
	case errors.Is(err, tournament.ErrInvalidFilter):
		status = http.StatusBadRequest
		message = "Unknown fixture filter. Use all, pending or completed."
	case errors.Is(err, model.ErrStorageFailure):
		status = http.StatusServiceUnavailable
		message = "Tournament data is temporarily unavailable."
	}

	if status >= http.StatusInternalServerError {
		logger.Error("web page failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	render(w, r, status, pages.Error(pages.ErrorData{
		PageData: pageData(r, "Error", ""),
		Message:  message,
	}))
}
