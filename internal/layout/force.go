package layout

import (
	"math"
	"math/rand"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// Force simulation constants. The pairwise repulsion pass is O(n²) per
// iteration, which limits this strategy to small graphs.
const (
	repulsionStrength = 80000.0
	attractionFactor  = 0.02
	maxStep           = 40.0
	minSeparation     = 0.01
)

// forceLayout runs a fixed-iteration spring simulation: inverse-square
// repulsion between every node pair plus linear attraction along edges
// toward a rest length. Nodes without a prior position are seeded at a
// random offset from a fixed center using the seeded PRNG from opts, so a
// given (input, seed) pair always produces identical coordinates.
func forceLayout(nodes []graph.Node, edges []graph.Edge, opts Options, out map[string]graph.Position) {
	n := len(nodes)
	rng := rand.New(rand.NewSource(opts.Seed))

	cx := opts.Margin + float64(n)*opts.PerNodeSpacing
	cy := cx

	pos := make(map[string]graph.Position, n)
	for i := range nodes {
		if p := nodes[i].Position; p != nil && finite(p.X) && finite(p.Y) {
			pos[nodes[i].ID] = *p
			continue
		}
		pos[nodes[i].ID] = graph.Position{
			X: cx + (rng.Float64()-0.5)*opts.PerNodeSpacing*float64(n),
			Y: cy + (rng.Float64()-0.5)*opts.PerNodeSpacing*float64(n),
		}
	}

	restLength := opts.NodeSpacing + opts.NodeWidth
	ids := make([]string, n)
	for i := range nodes {
		ids[i] = nodes[i].ID
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		disp := make(map[string]graph.Position, n)

		// Pairwise repulsion.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := pos[ids[i]], pos[ids[j]]
				dx, dy := a.X-b.X, a.Y-b.Y
				distSq := dx*dx + dy*dy
				if distSq < minSeparation {
					// Coincident nodes: push apart on a deterministic
					// jitter vector.
					dx, dy = rng.Float64()-0.5, rng.Float64()-0.5
					distSq = dx*dx + dy*dy
				}
				force := repulsionStrength / distSq
				dist := math.Sqrt(distSq)
				fx, fy := force*dx/dist, force*dy/dist
				da, db := disp[ids[i]], disp[ids[j]]
				da.X += fx
				da.Y += fy
				db.X -= fx
				db.Y -= fy
				disp[ids[i]], disp[ids[j]] = da, db
			}
		}

		// Spring attraction along edges.
		for k := range edges {
			e := &edges[k]
			a, aok := pos[e.Source]
			b, bok := pos[e.Target]
			if !aok || !bok {
				continue
			}
			dx, dy := b.X-a.X, b.Y-a.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < minSeparation {
				continue
			}
			pull := attractionFactor * (dist - restLength)
			fx, fy := pull*dx/dist, pull*dy/dist
			da, db := disp[e.Source], disp[e.Target]
			da.X += fx
			da.Y += fy
			db.X -= fx
			db.Y -= fy
			disp[e.Source], disp[e.Target] = da, db
		}

		// Apply displacements, capped per iteration for stability.
		for _, id := range ids {
			d := disp[id]
			step := math.Sqrt(d.X*d.X + d.Y*d.Y)
			if step > maxStep {
				d.X = d.X / step * maxStep
				d.Y = d.Y / step * maxStep
			}
			p := pos[id]
			p.X += d.X
			p.Y += d.Y
			pos[id] = p
		}
	}

	for id, p := range pos {
		out[id] = p
	}
}
