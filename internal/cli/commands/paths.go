package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli/output"
)

// PathsOptions holds options for the paths command.
type PathsOptions struct {
	Schema   string
	MaxDepth int
}

// NewPathsCommand creates the paths command.
func NewPathsCommand() *cobra.Command {
	opts := &PathsOptions{}

	cmd := &cobra.Command{
		Use:   "paths <node> <node> [node...]",
		Short: "Trace paths between nodes",
		Long: `Enumerate the simple paths between consecutive node pairs, up to a
hop limit, and show which nodes and edges a dashboard highlight would
light up.`,
		Example: `  # All paths from customer to invoice
  datavisual paths customer invoice --schema retail

  # Multi-waypoint trace with a tighter hop limit
  datavisual paths customer order invoice --max-depth 3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema name or id")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", backend.DefaultPathDepth, "Maximum path length in hops")

	return cmd
}

func runPaths(cmd *cobra.Command, nodeIDs []string, opts *PathsOptions) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	schema, err := cctx.ResolveSchema(opts.Schema)
	if err != nil {
		return err
	}

	res, err := cctx.Service.FindPaths(cmd.Context(), schema.ID, nodeIDs, opts.MaxDepth)
	if err != nil {
		return err
	}

	r := cctx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(res)
	}

	r.Title(fmt.Sprintf("Paths in %s: %s", schema.Name, strings.Join(nodeIDs, " -> ")))
	if len(res.Paths) == 0 {
		r.Line("no paths found within %d hops", opts.MaxDepth)
		return nil
	}

	rows := make([]table.Row, 0, len(res.Paths))
	for i, path := range res.Paths {
		rows = append(rows, table.Row{i + 1, len(path) - 1, strings.Join(path, " -> ")})
	}
	r.Table(table.Row{"#", "Hops", "Path"}, rows)

	r.Line("highlighted nodes: %s", strings.Join(res.HighlightedNodes, ", "))
	return nil
}
