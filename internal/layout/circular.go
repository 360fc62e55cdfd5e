package layout

import (
	"math"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// circularLayout places nodes evenly on a ring around a fixed center. The
// radius grows with the node count so labels stay readable.
func circularLayout(nodes []graph.Node, opts Options, out map[string]graph.Position) {
	n := len(nodes)
	radius := math.Max(opts.MinRadius, float64(n)*opts.PerNodeSpacing)
	cx := opts.Margin + radius
	cy := opts.Margin + radius

	for i := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out[nodes[i].ID] = graph.Position{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
}
