package pattern

import "fmt"

// State is a self-contained snapshot of an engine, used by persistence.
type State struct {
	Config   Config
	Channels int
	Steps    int
	// Cells is channel-major, Channels*Steps values of 0 or 1.
	Cells []uint8
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	cells := make([]uint8, 0, e.grid.Len())
	for _, row := range e.grid.Rows() {
		cells = append(cells, row...)
	}
	return State{
		Config:   e.cfg,
		Channels: e.grid.Channels(),
		Steps:    e.grid.Steps(),
		Cells:    cells,
	}
}

// FromState builds an engine from a snapshot. Channels above the bit width
// are dropped. opts are applied after the snapshot's configuration, so
// WithLogger can be passed here.
func FromState(s State, opts ...Option) (*Engine, error) {
	if s.Channels < 1 || s.Steps < 1 {
		return nil, fmt.Errorf("%w: channels and steps must be > 0: %dx%d",
			ErrInvalidDimension, s.Channels, s.Steps)
	}
	if len(s.Cells) != s.Channels*s.Steps {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid",
			ErrInvalidDimension, len(s.Cells), s.Channels, s.Steps)
	}
	for i, v := range s.Cells {
		if v > 1 {
			return nil, fmt.Errorf("%w: cell %d holds %d", ErrNonBinaryValue, i, v)
		}
	}

	all := append([]Option{WithConfig(s.Config), WithShape(s.Channels, s.Steps)}, opts...)
	e, err := New(all...)
	if err != nil {
		return nil, err
	}
	e.grid.Fill(func(ch, step int) uint8 {
		return s.Cells[ch*s.Steps+step]
	})
	return e, nil
}
