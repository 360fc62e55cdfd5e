package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli/output"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph/analysis"
)

// CyclesOptions holds options for the cycles command.
type CyclesOptions struct {
	Schema string
}

// NewCyclesCommand creates the cycles command.
func NewCyclesCommand() *cobra.Command {
	opts := &CyclesOptions{}

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Detect cycles in a schema graph",
		Long: `Find directed cycles in a schema's relationship graph. Cycles are
legal in lineage data but usually worth knowing about; the dashboard
renders them, while layered layout breaks them internally.`,
		Example: `  datavisual cycles --schema retail
  datavisual cycles --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCycles(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema name or id")

	return cmd
}

func runCycles(cmd *cobra.Command, opts *CyclesOptions) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	schema, err := cctx.ResolveSchema(opts.Schema)
	if err != nil {
		return err
	}

	nodes, edges, err := cctx.Store.GetGraph(schema.ID)
	if err != nil {
		return err
	}

	cycles := analysis.DetectCycles(nodes, edges)

	r := cctx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			Schema string     `json:"schema"`
			Cycles [][]string `json:"cycles"`
		}{schema.Name, cycles})
	}

	r.Title(fmt.Sprintf("Cycles in %s", schema.Name))
	if len(cycles) == 0 {
		r.Line("no cycles found")
		return nil
	}

	rows := make([]table.Row, 0, len(cycles))
	for i, cycle := range cycles {
		rows = append(rows, table.Row{i + 1, len(cycle) - 1, strings.Join(cycle, " -> ")})
	}
	r.Table(table.Row{"#", "Length", "Cycle"}, rows)
	return nil
}
