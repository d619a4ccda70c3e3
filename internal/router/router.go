// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain of the
// events server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventscms/internal/handlers"
	"eventscms/internal/middleware"
)

// New creates the chi router with the global middleware, the health check
// and the widget fragment routes.
func New(widgets *handlers.Widgets) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/{lang}/widgets/events", func(r chi.Router) {
		r.Get("/archive", widgets.EventsArchive)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
