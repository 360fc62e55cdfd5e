package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/cli/output"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph/analysis"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Schema     string
	Upstream   bool
	Downstream bool
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage <node>",
		Short: "Show lineage for a node",
		Long: `Display the upstream and downstream nodes reachable from a node,
following relationship edges. This answers "what feeds this node" and
"what would a change here affect".`,
		Example: `  # Full lineage for a node
  datavisual lineage order --schema retail

  # Only what the node depends on
  datavisual lineage order --downstream=false

  # Output as JSON
  datavisual lineage order --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema name or id")
	cmd.Flags().BoolVar(&opts.Upstream, "upstream", true, "Include upstream nodes")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", true, "Include downstream nodes")

	return cmd
}

func runLineage(cmd *cobra.Command, nodeID string, opts *LineageOptions) error {
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

	found := false
	for i := range nodes {
		if nodes[i].ID == nodeID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("node not found: %s", nodeID)
	}

	var upstream, downstream []string
	if opts.Upstream {
		upstream = sortedIDs(analysis.ConnectedNodes(nodeID, edges, analysis.Upstream))
	}
	if opts.Downstream {
		downstream = sortedIDs(analysis.ConnectedNodes(nodeID, edges, analysis.Downstream))
	}

	r := cctx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			Root       string   `json:"root"`
			Upstream   []string `json:"upstream,omitempty"`
			Downstream []string `json:"downstream,omitempty"`
		}{nodeID, upstream, downstream})
	}

	r.Title(fmt.Sprintf("Lineage for %s", nodeID))
	if opts.Upstream {
		r.Line("")
		r.Line("Upstream (%d):", len(upstream))
		for _, id := range upstream {
			r.Line("  - %s", id)
		}
	}
	if opts.Downstream {
		r.Line("")
		r.Line("Downstream (%d):", len(downstream))
		for _, id := range downstream {
			r.Line("  - %s", id)
		}
	}
	return nil
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
