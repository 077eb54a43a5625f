package state

import "sync/atomic"

// Generation counts writes to a canvas. Renderers compare successive values
// to skip redrawing frames nothing has painted on.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) tick() uint64 {
	return g.n.Add(1)
}

// Load returns the number of writes seen so far.
func (g *Generation) Load() uint64 {
	return g.n.Load()
}
