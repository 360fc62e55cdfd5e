package layout

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Layout constants. Cell dimensions match the canvas card size the
// renderer draws for a class node.
const (
	DefaultCellWidth  = 350
	DefaultCellHeight = 250
	DefaultMargin     = 50

	DefaultMinRadius      = 200
	DefaultPerNodeSpacing = 60

	DefaultNodeWidth    = 250
	DefaultNodeHeight   = 120
	DefaultNodeSpacing  = 80
	DefaultLayerSpacing = 150

	DefaultIterations = 50
	DefaultForceSeed  = 1

	// Spacing floors. Out-of-range values clamp here instead of failing
	// the layout.
	minCellSize = 40
	minSpacing  = 10
	minMargin   = 0
)

// Options configures a layout pass. Zero values select defaults; values
// below the documented minimums are clamped, never rejected.
type Options struct {
	// Grid.
	CellWidth  float64 `mapstructure:"cellWidth"`
	CellHeight float64 `mapstructure:"cellHeight"`
	Margin     float64 `mapstructure:"margin"`

	// Circular.
	MinRadius      float64 `mapstructure:"minRadius"`
	PerNodeSpacing float64 `mapstructure:"perNodeSpacing"`

	// Layered.
	Direction    Direction `mapstructure:"direction"`
	NodeWidth    float64   `mapstructure:"nodeWidth"`
	NodeHeight   float64   `mapstructure:"nodeHeight"`
	NodeSpacing  float64   `mapstructure:"nodeSpacing"`
	LayerSpacing float64   `mapstructure:"layerSpacing"`

	// Force.
	Iterations int   `mapstructure:"iterations"`
	Seed       int64 `mapstructure:"seed"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		CellWidth:      DefaultCellWidth,
		CellHeight:     DefaultCellHeight,
		Margin:         DefaultMargin,
		MinRadius:      DefaultMinRadius,
		PerNodeSpacing: DefaultPerNodeSpacing,
		Direction:      DirectionDown,
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		NodeSpacing:    DefaultNodeSpacing,
		LayerSpacing:   DefaultLayerSpacing,
		Iterations:     DefaultIterations,
		Seed:           DefaultForceSeed,
	}
}

// DecodeOptions merges a loosely-typed option map (as received from the
// HTTP layer) onto the defaults.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(raw); err != nil {
		return opts, fmt.Errorf("invalid layout options: %w", err)
	}
	return opts, nil
}

// clamped fills zero values with defaults and raises out-of-range values
// to their minimums.
func (o Options) clamped() Options {
	def := DefaultOptions()
	if o.CellWidth == 0 {
		o.CellWidth = def.CellWidth
	}
	if o.CellHeight == 0 {
		o.CellHeight = def.CellHeight
	}
	// Margin zero is valid (flush to origin) and is not defaulted here;
	// DefaultOptions carries the standard margin.
	if o.MinRadius == 0 {
		o.MinRadius = def.MinRadius
	}
	if o.PerNodeSpacing == 0 {
		o.PerNodeSpacing = def.PerNodeSpacing
	}
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = def.NodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = def.NodeHeight
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = def.NodeSpacing
	}
	if o.LayerSpacing == 0 {
		o.LayerSpacing = def.LayerSpacing
	}
	if o.Iterations <= 0 {
		o.Iterations = def.Iterations
	}
	if o.Seed == 0 {
		o.Seed = def.Seed
	}

	if o.CellWidth < minCellSize {
		o.CellWidth = minCellSize
	}
	if o.CellHeight < minCellSize {
		o.CellHeight = minCellSize
	}
	if o.Margin < minMargin {
		o.Margin = minMargin
	}
	if o.PerNodeSpacing < minSpacing {
		o.PerNodeSpacing = minSpacing
	}
	if o.NodeSpacing < minSpacing {
		o.NodeSpacing = minSpacing
	}
	if o.LayerSpacing < minSpacing {
		o.LayerSpacing = minSpacing
	}
	if o.MinRadius < minCellSize {
		o.MinRadius = minCellSize
	}
	return o
}
