// Package commands implements the datavisual subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli/output"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/config"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/loader"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *store.SQLiteStore
	Service  backend.Service
	Engine   *layout.Engine
	Renderer *output.Renderer
}

// NewCommandContext opens the store, loads the schema definitions from
// the schemas directory, and wires the lineage service. Returns the
// context and a cleanup function that must be called (typically via
// defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetCurrentConfig()
	logger := config.GetLogger(cmd.Context())

	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = st.Close() }

	if dir := cfg.SchemasDir; dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			if _, err := loader.New(st, logger).LoadDir(dir); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to load schemas from %s: %w", dir, err)
			}
		}
	}

	var svc backend.Service
	if cfg.BackendURL != "" {
		svc = backend.NewClient(cfg.BackendURL, logger)
	} else {
		svc = backend.NewLocal(st, logger)
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    st,
		Service:  svc,
		Engine:   layout.NewEngine(nil, logger),
		Renderer: r,
	}, cleanup, nil
}

// ResolveSchema finds a schema by name or id. With an empty ref and
// exactly one stored schema, that schema is selected.
func (c *CommandContext) ResolveSchema(ref string) (*store.Schema, error) {
	if ref == "" {
		schemas, err := c.Store.ListSchemas()
		if err != nil {
			return nil, err
		}
		switch len(schemas) {
		case 0:
			return nil, fmt.Errorf("no schemas loaded; check the schemas directory (%s)", c.Cfg.SchemasDir)
		case 1:
			return schemas[0], nil
		default:
			return nil, fmt.Errorf("multiple schemas loaded; pick one with --schema")
		}
	}

	if schema, err := c.Store.GetSchemaByName(ref); err == nil {
		return schema, nil
	}
	return c.Store.GetSchema(ref)
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	path := cfg.StatePath
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}
	return store.Open(path)
}
