package pattern

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-patgen/dsp/buffer"
	"github.com/cwbudde/algo-patgen/dsp/core"
	"github.com/cwbudde/algo-patgen/dsp/expr"
)

// Engine owns one configuration and one pattern grid.
type Engine struct {
	cfg    Config
	grid   *buffer.Grid
	pool   *buffer.Pool
	logger *slog.Logger
}

// New creates an engine from DefaultConfig with opts applied.
// The channel count is clamped to the bit width.
func New(opts ...Option) (*Engine, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := buffer.New(s.channels, s.steps, int(s.cfg.MaxChannels))
	if err != nil {
		return nil, err
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:    s.cfg,
		grid:   grid,
		pool:   buffer.NewPool(),
		logger: logger,
	}, nil
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Channels returns the number of channels.
func (e *Engine) Channels() int { return e.grid.Channels() }

// Steps returns the number of steps per channel.
func (e *Engine) Steps() int { return e.grid.Steps() }

// Timing returns the sample grid generation runs on.
func (e *Engine) Timing() core.Timing {
	return core.Timing{SampleRateMHz: e.cfg.SampleRateMHz, Steps: e.grid.Steps()}
}

// StepDuration returns the duration of one step in nanoseconds.
func (e *Engine) StepDuration() float64 {
	return 1000 / e.cfg.SampleRateMHz
}

// SetConfig validates cfg and installs it. A smaller bit width drops the
// surplus channels.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.grid.SetMaxChannels(int(cfg.MaxChannels)); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// SetMaxChannels changes the bit width, truncating channels above it.
func (e *Engine) SetMaxChannels(w BitWidth) error {
	cfg := e.cfg
	cfg.MaxChannels = w
	return e.SetConfig(cfg)
}

// SetSampleRateMHz sets the sample rate.
func (e *Engine) SetSampleRateMHz(mhz float64) error {
	if err := validateSampleRate(mhz); err != nil {
		return err
	}
	e.cfg.SampleRateMHz = mhz
	return nil
}

// SetDutyCycle sets the PWM/Clock duty cycle in percent.
func (e *Engine) SetDutyCycle(percent float64) error {
	if err := validateDutyCycle(percent); err != nil {
		return err
	}
	e.cfg.DutyCycle = percent
	return nil
}

// SetTargetFrequency sets the PWM/Clock frequency in Hz.
func (e *Engine) SetTargetFrequency(hz float64) error {
	if err := validateFrequency(hz); err != nil {
		return err
	}
	e.cfg.TargetFrequencyHz = hz
	return nil
}

// SetMode sets the generation mode.
func (e *Engine) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: unknown pattern mode %d", ErrInvalidConfigValue, int(m))
	}
	e.cfg.Mode = m
	return nil
}

// SetIOStandard sets the I/O standard.
func (e *Engine) SetIOStandard(std IOStandard) error {
	if !std.Valid() {
		return fmt.Errorf("%w: unknown I/O standard %d", ErrInvalidConfigValue, int(std))
	}
	e.cfg.IOStandard = std
	return nil
}

// SetExpression stores the expression text. It is parsed by Generate.
func (e *Engine) SetExpression(text string) {
	e.cfg.Expression = text
}

// Resize reshapes the grid, preserving the overlapping cells.
func (e *Engine) Resize(channels, steps int) error {
	return e.grid.Resize(channels, steps)
}

// Clear sets every cell to 0.
func (e *Engine) Clear() { e.grid.Clear() }

// Randomize fills the grid with seeded pseudo-random bits.
func (e *Engine) Randomize(seed int64) { e.grid.Randomize(seed) }

// Set stores a cell; non-zero values read as 1 and out-of-range coordinates
// are ignored.
func (e *Engine) Set(channel, step, value int) { e.grid.Set(channel, step, value) }

// SetStrict is Set for untrusted input: it rejects values other than 0 and 1
// and coordinates outside the grid.
func (e *Engine) SetStrict(channel, step, value int) error {
	if value != 0 && value != 1 {
		return fmt.Errorf("%w: %d", ErrNonBinaryValue, value)
	}
	if _, ok := e.grid.Lookup(channel, step); !ok {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid",
			ErrInvalidDimension, channel, step, e.grid.Channels(), e.grid.Steps())
	}
	e.grid.Set(channel, step, value)
	return nil
}

// Get returns a cell; out-of-range coordinates read as 0.
func (e *Engine) Get(channel, step int) uint8 { return e.grid.Get(channel, step) }

// Lookup returns a cell and whether the coordinate is inside the grid.
func (e *Engine) Lookup(channel, step int) (uint8, bool) { return e.grid.Lookup(channel, step) }

// Channel returns a copy of one channel.
func (e *Engine) Channel(channel int) []uint8 { return e.grid.Channel(channel) }

// Cells returns a copy of the grid, one slice per channel.
func (e *Engine) Cells() [][]uint8 { return e.grid.Rows() }

// CanGenerate reports whether Generate would fill the grid: false in Manual
// mode, for PWM/Clock above Nyquist, and for a blank expression.
func (e *Engine) CanGenerate() bool {
	switch e.cfg.Mode {
	case ModeManual:
		return false
	case ModePWM, ModeClock:
		return !e.Timing().ExceedsNyquist(e.cfg.TargetFrequencyHz)
	case ModeExpression:
		return !expr.IsBlank(e.cfg.Expression)
	default:
		return true
	}
}

// ApplyAdjustment adopts the frequency a PWM or Clock generation had to
// fall back to. It reports whether the configuration changed.
func (e *Engine) ApplyAdjustment(r Result) bool {
	if !r.Adjusted || !r.Mode.Periodic() || r.AdjustedFrequencyHz <= 0 {
		return false
	}
	e.cfg.TargetFrequencyHz = r.AdjustedFrequencyHz
	return true
}
