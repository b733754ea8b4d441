package buffer

import "sync"

// Pool provides sync.Pool-based Grid reuse for callers that build a
// pattern in scratch space before committing it.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get returns a zeroed Grid with the requested shape. channels is clamped to
// maxChannels. Callers must return it via Put when done.
func (p *Pool) Get(channels, steps, maxChannels int) (*Grid, error) {
	if maxChannels < 1 {
		return New(channels, steps, maxChannels)
	}
	if err := validateShape(channels, steps); err != nil {
		return nil, err
	}
	g := p.pool.Get().(*Grid)
	g.maxChannels = maxChannels
	g.reset(min(channels, maxChannels), steps)
	return g, nil
}

// Put returns a Grid to the pool for reuse.
// The caller must not use the grid after calling Put.
func (p *Pool) Put(g *Grid) {
	if g == nil {
		return
	}
	p.pool.Put(g)
}
