package graph

import "sync/atomic"

// Generation hands out monotonically increasing tokens for layout
// requests. Each new request takes the next token; a completion is only
// applied while its token is still the newest one, so a slow pass that
// finishes after a newer request started is discarded instead of
// overwriting fresher positions.
type Generation struct {
	counter atomic.Int64
}

// Next reserves and returns a new token.
func (g *Generation) Next() int64 {
	return g.counter.Add(1)
}

// Current returns the most recently issued token.
func (g *Generation) Current() int64 {
	return g.counter.Load()
}

// IsCurrent reports whether token is still the newest one.
func (g *Generation) IsCurrent(token int64) bool {
	return g.counter.Load() == token
}
