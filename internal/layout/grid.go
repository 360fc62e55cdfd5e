package layout

import (
	"math"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// gridLayout places nodes row by row in input order on a square-ish grid:
// cols = ceil(sqrt(n)). O(n) and byte-identical across repeated calls.
func gridLayout(nodes []graph.Node, opts Options, out map[string]graph.Position) {
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	if cols < 1 {
		cols = 1
	}
	for i := range nodes {
		out[nodes[i].ID] = graph.Position{
			X: float64(i%cols)*opts.CellWidth + opts.Margin,
			Y: float64(i/cols)*opts.CellHeight + opts.Margin,
		}
	}
}
