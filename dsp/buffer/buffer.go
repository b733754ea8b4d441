package buffer

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidDimension is returned when a channel, step or channel-ceiling
// count is below one.
var ErrInvalidDimension = errors.New("invalid pattern dimension")

// Grid stores one row of logic levels per channel.
// Cells are kept channel-major in a single backing slice.
type Grid struct {
	channels    int
	steps       int
	maxChannels int
	cells       []uint8
}

// New returns a zero-filled Grid. channels is clamped to maxChannels.
func New(channels, steps, maxChannels int) (*Grid, error) {
	if maxChannels < 1 {
		return nil, fmt.Errorf("%w: channel ceiling must be > 0: %d", ErrInvalidDimension, maxChannels)
	}
	if err := validateShape(channels, steps); err != nil {
		return nil, err
	}
	g := &Grid{maxChannels: maxChannels}
	g.reset(min(channels, maxChannels), steps)
	return g, nil
}

func validateShape(channels, steps int) error {
	if channels < 1 || steps < 1 {
		return fmt.Errorf("%w: channels and steps must be > 0: %dx%d", ErrInvalidDimension, channels, steps)
	}
	return nil
}

// reset reshapes the grid to channels x steps, reusing capacity, and zeroes it.
func (g *Grid) reset(channels, steps int) {
	n := channels * steps
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
		clear(g.cells)
	} else {
		g.cells = make([]uint8, n)
	}
	g.channels = channels
	g.steps = steps
}

// Channels returns the number of channels.
func (g *Grid) Channels() int { return g.channels }

// Steps returns the number of steps per channel.
func (g *Grid) Steps() int { return g.steps }

// MaxChannels returns the channel ceiling.
func (g *Grid) MaxChannels() int { return g.maxChannels }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Resize reshapes the grid in place. Values at coordinates present in both
// the old and the new shape are preserved; all other cells become 0.
// channels is clamped to the channel ceiling.
func (g *Grid) Resize(channels, steps int) error {
	if err := validateShape(channels, steps); err != nil {
		return err
	}
	channels = min(channels, g.maxChannels)
	if channels == g.channels && steps == g.steps {
		return nil
	}

	cells := make([]uint8, channels*steps)
	keepSteps := min(steps, g.steps)
	for ch := 0; ch < min(channels, g.channels); ch++ {
		copy(cells[ch*steps:ch*steps+keepSteps], g.cells[ch*g.steps:ch*g.steps+keepSteps])
	}

	g.cells = cells
	g.channels = channels
	g.steps = steps
	return nil
}

// SetMaxChannels changes the channel ceiling. If the current channel count
// exceeds the new ceiling the surplus channels are dropped.
func (g *Grid) SetMaxChannels(maxChannels int) error {
	if maxChannels < 1 {
		return fmt.Errorf("%w: channel ceiling must be > 0: %d", ErrInvalidDimension, maxChannels)
	}
	g.maxChannels = maxChannels
	if g.channels > maxChannels {
		return g.Resize(maxChannels, g.steps)
	}
	return nil
}

// Clear sets every cell to 0.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Randomize sets every cell to an independent pseudo-random bit drawn from
// math/rand seeded with seed. The same seed reproduces the same grid.
func (g *Grid) Randomize(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range g.cells {
		g.cells[i] = uint8(rng.Int63() & 1)
	}
}

func (g *Grid) inRange(channel, step int) bool {
	return channel >= 0 && channel < g.channels && step >= 0 && step < g.steps
}

// Set stores 1 for any non-zero value and 0 otherwise.
// Out-of-range coordinates are ignored.
func (g *Grid) Set(channel, step, value int) {
	if !g.inRange(channel, step) {
		return
	}
	var bit uint8
	if value != 0 {
		bit = 1
	}
	g.cells[channel*g.steps+step] = bit
}

// Get returns the bit at (channel, step). Out-of-range coordinates read as 0;
// use Lookup to tell them apart from stored zeros.
func (g *Grid) Get(channel, step int) uint8 {
	v, _ := g.Lookup(channel, step)
	return v
}

// Lookup returns the bit at (channel, step) and whether the coordinate is
// inside the grid.
func (g *Grid) Lookup(channel, step int) (uint8, bool) {
	if !g.inRange(channel, step) {
		return 0, false
	}
	return g.cells[channel*g.steps+step], true
}

// Channel returns a copy of one channel's levels, or nil if channel is out
// of range.
func (g *Grid) Channel(channel int) []uint8 {
	if channel < 0 || channel >= g.channels {
		return nil
	}
	out := make([]uint8, g.steps)
	copy(out, g.cells[channel*g.steps:(channel+1)*g.steps])
	return out
}

// Rows returns a copy of the grid as one slice per channel.
func (g *Grid) Rows() [][]uint8 {
	out := make([][]uint8, g.channels)
	for ch := range out {
		out[ch] = g.Channel(ch)
	}
	return out
}

// Fill overwrites every cell with level(channel, step), normalised to 0/1.
func (g *Grid) Fill(level func(channel, step int) uint8) {
	for ch := 0; ch < g.channels; ch++ {
		row := g.cells[ch*g.steps : (ch+1)*g.steps]
		for s := range row {
			row[s] = normalize(level(ch, s))
		}
	}
}

// Broadcast copies row into every channel. row must hold exactly Steps values.
func (g *Grid) Broadcast(row []uint8) error {
	if len(row) != g.steps {
		return fmt.Errorf("%w: row length %d does not match %d steps", ErrInvalidDimension, len(row), g.steps)
	}
	for ch := 0; ch < g.channels; ch++ {
		dst := g.cells[ch*g.steps : (ch+1)*g.steps]
		for s, v := range row {
			dst[s] = normalize(v)
		}
	}
	return nil
}

// Ones returns the number of cells set to 1.
func (g *Grid) Ones() int {
	n := 0
	for _, v := range g.cells {
		n += int(v)
	}
	return n
}

// Copy returns a deep copy of the grid.
func (g *Grid) Copy() *Grid {
	c := &Grid{
		channels:    g.channels,
		steps:       g.steps,
		maxChannels: g.maxChannels,
		cells:       make([]uint8, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether o has the same shape and contents.
// The channel ceiling is not compared.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.channels != o.channels || g.steps != o.steps {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

func normalize(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}
