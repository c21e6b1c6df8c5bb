package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	api := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(next)))
	}

	// WriteTimeout bounds the pipeline run behind the webhook, so no
	// per-route timeout middleware is needed.
	mux.Handle("POST /api/webhook", api(app.webhookHandler))
	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	return mux
}
