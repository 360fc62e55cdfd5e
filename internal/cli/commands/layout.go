package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli/output"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/hierarchy"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
)

// LayoutOptions holds options for the layout command.
type LayoutOptions struct {
	Schema    string
	Strategy  string
	Direction string
	Expanded  []string
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand() *cobra.Command {
	opts := &LayoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute node positions for a schema graph",
		Long: `Run a layout pass over a schema's graph and print the computed
positions. The same engine drives the dashboard; this command is useful
for inspecting and diffing layout output.`,
		Example: `  # Layered layout (default)
  datavisual layout --schema retail

  # Grid layout, flowing right
  datavisual layout --schema retail --strategy grid --direction right

  # Include data instances of a class
  datavisual layout --schema retail --expand customer`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayout(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema name or id")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "Layout strategy (grid|circular|force|layered)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "Flow direction (down|right|left|up)")
	cmd.Flags().StringSliceVar(&opts.Expanded, "expand", nil, "Class ids whose data instances are included")

	return cmd
}

func runLayout(cmd *cobra.Command, opts *LayoutOptions) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	schema, err := cctx.ResolveSchema(opts.Schema)
	if err != nil {
		return err
	}

	strategyName := opts.Strategy
	if strategyName == "" {
		strategyName = cctx.Cfg.GetLayoutConfig().Strategy
	}
	strategy, err := layout.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	layoutOpts := layout.DefaultOptions()
	direction := opts.Direction
	if direction == "" {
		direction = cctx.Cfg.GetLayoutConfig().Direction
	}
	if direction != "" {
		layoutOpts.Direction = layout.Direction(direction)
	}

	lg, err := cctx.Service.GetLineageGraph(cmd.Context(), schema.ID, opts.Expanded)
	if err != nil {
		return err
	}

	// Position hierarchy roots only; descendants render inside their parent.
	rootNodes, rootEdges := hierarchy.RootGraph(lg.Nodes, lg.Edges)

	result, err := cctx.Engine.Compute(cmd.Context(), rootNodes, rootEdges, strategy, layoutOpts)
	if err != nil {
		return err
	}

	r := cctx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			Schema   string          `json:"schema"`
			Strategy layout.Strategy `json:"strategy"`
			layout.Result
		}{schema.Name, strategy, result})
	}

	r.Title(fmt.Sprintf("Layout for %s (%s)", schema.Name, strategy))
	if result.FellBack {
		r.Warn("layered delegate failed; showing grid fallback positions")
	}

	ids := make([]string, 0, len(result.Positions))
	for id := range result.Positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		pos := result.Positions[id]
		rows = append(rows, table.Row{id, fmt.Sprintf("%.1f", pos.X), fmt.Sprintf("%.1f", pos.Y)})
	}
	r.Table(table.Row{"Node", "X", "Y"}, rows)

	if result.Diagnostics != nil {
		r.Warn("excluded %d malformed edges", len(result.Diagnostics.DanglingEdges))
	}
	return nil
}
