// Package ui hosts the lineage dashboard's HTTP server: JSON endpoints
// for graph, layout, paths, stats and highlight, plus an SSE channel
// that pings clients when a schema definition on disk changes.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/loader"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
	graphfeature "github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/features/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/notifier"
)

// Server is the dashboard HTTP server.
type Server struct {
	service      backend.Service
	store        store.Store
	engine       *layout.Engine
	loader       *loader.Loader
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	schemasDir   string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the dashboard server.
type Config struct {
	Service       backend.Service
	Store         store.Store
	Engine        *layout.Engine
	Loader        *loader.Loader
	Port          int
	Watch         bool
	SchemasDir    string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		service:      cfg.Service,
		store:        cfg.Store,
		engine:       cfg.Engine,
		loader:       cfg.Loader,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		schemasDir:   cfg.SchemasDir,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := graphfeature.SetupRoutes(r, s.service, s.store, s.engine, s.sessionStore, s.notifier, s.logger); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.schemasDir != "" {
		eg.Go(func() error {
			return s.watchSchemas(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchSchemas reloads schema definition files when they change and
// notifies connected clients. Reload failures are logged; the previous
// stored graph stays in place until a good definition arrives.
func (s *Server) watchSchemas(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.schemasDir); err != nil {
		s.logger.Error("failed to watch schemas directory", "error", err)
		// Continue without watching rather than taking the server down.
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			// Editors fire several events per save; debounce them.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reloadSchema(name)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) reloadSchema(path string) {
	s.logger.Debug("schema file changed, reloading", "file", path)

	schema, err := s.loader.LoadFile(path)
	if err != nil {
		s.logger.Error("schema reload failed", "file", path, "error", err)
		return
	}
	s.notifier.Broadcast(notifier.Event{SchemaID: schema.ID, Name: schema.Name})
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
