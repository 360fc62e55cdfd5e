package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/config"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/loader"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the lineage dashboard server",
		Long: `Start a local web server hosting the lineage dashboard API.

The server exposes JSON endpoints for graph snapshots, layout passes,
path traces, schema statistics and search highlighting, plus an SSE
channel that notifies clients when a schema definition changes on disk.`,
		Example: `  # Start on the default port
  datavisual serve

  # Start on a custom port without watching schema files
  datavisual serve --port 3000 --watch=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the schemas directory for changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	srvCfg := cctx.Cfg.GetServerConfig()

	port := srvCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	watch := srvCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if watch {
		if _, err := os.Stat(cctx.Cfg.SchemasDir); os.IsNotExist(err) {
			return fmt.Errorf("schemas directory does not exist: %s", cctx.Cfg.SchemasDir)
		}
	}

	server := ui.NewServer(ui.Config{
		Service:       cctx.Service,
		Store:         cctx.Store,
		Engine:        cctx.Engine,
		Loader:        loader.New(cctx.Store, cctx.Logger),
		Port:          port,
		Watch:         watch,
		SchemasDir:    cctx.Cfg.SchemasDir,
		SessionSecret: srvCfg.SessionSecret,
		Logger:        cctx.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}
