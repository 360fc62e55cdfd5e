package graph

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/notifier"
)

// SetupRoutes registers the graph feature routes.
func SetupRoutes(
	router chi.Router,
	svc backend.Service,
	st store.Store,
	engine *layout.Engine,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(svc, st, engine, sessionStore, notify, logger)

	// SSE route (live updates only)
	router.Get("/graph/updates", handlers.Updates)

	router.Route("/api/schemas", func(r chi.Router) {
		r.Get("/", handlers.ListSchemas)
		r.Route("/{schemaID}", func(r chi.Router) {
			r.Get("/graph", handlers.GetGraph)
			r.Get("/layout", handlers.ComputeLayout)
			r.Get("/paths", handlers.FindPaths)
			r.Get("/stats", handlers.GetStats)
			r.Get("/highlight", handlers.Search)
		})
	})

	return nil
}
