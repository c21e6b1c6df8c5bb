package main

import (
	"log/slog"
	"net/http"

	"github.com/raceprep/raceprep/internal/errors"
)

// healthy reports whether the server and its store are usable.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := app.store.Ping(r.Context()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "health check failed", errors.SlogError(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
