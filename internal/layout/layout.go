// Package layout positions lineage graph nodes for rendering. It offers
// four interchangeable strategies (grid, circular, force-directed, layered)
// behind one engine entry point. All strategies are deterministic for a
// given input: the force simulation uses a seeded PRNG so repeated runs
// produce identical coordinates.
package layout

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// Strategy selects a layout algorithm.
type Strategy string

const (
	StrategyGrid     Strategy = "grid"
	StrategyCircular Strategy = "circular"
	StrategyForce    Strategy = "force"
	StrategyLayered  Strategy = "layered"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyGrid, StrategyCircular, StrategyForce, StrategyLayered:
		return Strategy(s), nil
	case "":
		return StrategyLayered, nil
	}
	return "", fmt.Errorf("unknown layout strategy %q", s)
}

// Direction is the primary flow direction of a layout.
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
	DirectionUp    Direction = "up"
)

// PortSide names the side of a node an edge attaches to.
type PortSide string

const (
	PortTop    PortSide = "top"
	PortBottom PortSide = "bottom"
	PortLeft   PortSide = "left"
	PortRight  PortSide = "right"
)

// Result maps every input node id to a finite position, plus the edge port
// orientation implied by the layout direction.
type Result struct {
	Positions  map[string]graph.Position `json:"positions"`
	SourcePort PortSide                  `json:"sourcePort"`
	TargetPort PortSide                  `json:"targetPort"`

	// FellBack is set when the layered delegate failed and the whole
	// graph was positioned by the grid strategy instead. Positions are
	// never a partial mix of delegate and fallback output.
	FellBack bool `json:"fellBack,omitempty"`

	// Diagnostics reports malformed edges that were excluded from the
	// pass (dangling endpoints, conflicting hierarchy encodings).
	Diagnostics *graph.ValidationError `json:"-"`
}

// Delegate is the external layered-layout algorithm boundary. The engine
// owns fallback behavior; a delegate only has to return a position per
// node or an error.
type Delegate interface {
	Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (map[string]graph.Position, error)
}

// Engine runs layout strategies over immutable graph snapshots.
type Engine struct {
	delegate Delegate
	logger   *slog.Logger
}

// NewEngine creates an engine. A nil delegate selects the built-in layered
// implementation; a nil logger discards logs.
func NewEngine(delegate Delegate, logger *slog.Logger) *Engine {
	if delegate == nil {
		delegate = &sugiyamaDelegate{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{delegate: delegate, logger: logger}
}

// Compute positions every node in the snapshot. Empty input is not an
// error: the result carries an empty position map. Malformed edges are
// excluded and reported via Result.Diagnostics; they never fail the pass.
func (e *Engine) Compute(ctx context.Context, nodes []graph.Node, edges []graph.Edge, strategy Strategy, opts Options) (Result, error) {
	opts = opts.clamped()

	res := Result{Positions: make(map[string]graph.Position, len(nodes))}
	res.SourcePort, res.TargetPort = ports(opts.Direction)
	if len(nodes) == 0 {
		return res, nil
	}

	if err := graph.Validate(nodes, edges); err != nil {
		verr, ok := err.(*graph.ValidationError)
		if !ok {
			return res, err
		}
		e.logger.Warn("layout: excluding malformed edges",
			"dangling", verr.DanglingEdges,
			"hierarchy_conflicts", verr.ConflictingHierarchyEdges)
		res.Diagnostics = verr
		edges = graph.ExcludeInvalidEdges(edges, verr)
	}

	switch strategy {
	case StrategyGrid:
		gridLayout(nodes, opts, res.Positions)
	case StrategyCircular:
		circularLayout(nodes, opts, res.Positions)
	case StrategyForce:
		forceLayout(nodes, edges, opts, res.Positions)
	case StrategyLayered:
		positions, err := e.delegate.Layout(ctx, nodes, edges, opts)
		if err == nil {
			err = checkComplete(nodes, positions)
		}
		if err != nil {
			// Recoverable: the whole graph falls back to grid so the
			// result is never a mix of delegate and fallback positions.
			e.logger.Error("layered layout failed, falling back to grid", "error", err)
			res.FellBack = true
			gridLayout(nodes, opts, res.Positions)
			break
		}
		for id, pos := range positions {
			res.Positions[id] = pos
		}
	default:
		return res, fmt.Errorf("unknown layout strategy %q", strategy)
	}

	return res, nil
}

// ports returns the deterministic edge attachment sides for a direction,
// so edges leave the source on its flow side and enter the target opposite.
func ports(dir Direction) (source, target PortSide) {
	switch dir {
	case DirectionUp:
		return PortTop, PortBottom
	case DirectionRight:
		return PortRight, PortLeft
	case DirectionLeft:
		return PortLeft, PortRight
	default:
		return PortBottom, PortTop
	}
}

// checkComplete verifies the delegate produced a finite position for every
// node. A missing or non-finite position is treated as a delegate failure.
func checkComplete(nodes []graph.Node, positions map[string]graph.Position) error {
	for i := range nodes {
		pos, ok := positions[nodes[i].ID]
		if !ok {
			return fmt.Errorf("delegate returned no position for node %q", nodes[i].ID)
		}
		if !finite(pos.X) || !finite(pos.Y) {
			return fmt.Errorf("delegate returned non-finite position for node %q", nodes[i].ID)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
