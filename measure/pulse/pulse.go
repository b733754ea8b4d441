package pulse

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-patgen/dsp/expr"
	"github.com/cwbudde/algo-patgen/dsp/spectrum"
	"github.com/cwbudde/algo-patgen/dsp/window"
	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/stats/logic"
)

// silenceThreshold is the peak power below which a channel is treated as
// having no AC content.
const silenceThreshold = 1e-12

// Measurement describes one channel.
type Measurement struct {
	Channel int `json:"channel"`
	logic.Stats

	// DominantHz is the centre frequency of the strongest non-DC FFT bin,
	// 0 for a constant channel.
	DominantHz    float64 `json:"dominant_hz"`
	DominantPower float64 `json:"dominant_power"`
	// TargetHz is the frequency the channel was generated for, 0 if the
	// mode has none. TargetPower is the Goertzel power there.
	TargetHz    float64 `json:"target_hz"`
	TargetPower float64 `json:"target_power"`
}

// Option configures Analyzer.
type Option func(*config)

type config struct {
	window  window.Type
	fftSize int
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFFTSize fixes the FFT length. Channels are zero-padded or truncated
// to it. The default is the next power of two of the channel length.
func WithFFTSize(n int) Option {
	return func(c *config) {
		c.fftSize = n
	}
}

// Analyzer measures channels sampled at a fixed rate.
type Analyzer struct {
	sampleRate float64
	cfg        config
}

// NewAnalyzer returns an Analyzer for channels sampled at sampleRate Hz.
func NewAnalyzer(sampleRate float64, opts ...Option) (*Analyzer, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("pulse: sample rate must be > 0: %v", sampleRate)
	}
	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fftSize < 0 || cfg.fftSize == 1 || cfg.fftSize&(cfg.fftSize-1) != 0 {
		return nil, fmt.Errorf("pulse: FFT size must be a power of two >= 2: %d", cfg.fftSize)
	}
	return &Analyzer{sampleRate: sampleRate, cfg: cfg}, nil
}

// Measure analyses one channel. targetHz is the expected frequency; pass 0
// to skip the Goertzel check.
func (a *Analyzer) Measure(levels []uint8, targetHz float64) (Measurement, error) {
	m := Measurement{Stats: logic.Calculate(levels)}
	if len(levels) < 2 {
		return m, nil
	}

	hz, power, err := a.dominant(levels)
	if err != nil {
		return Measurement{}, err
	}
	m.DominantHz = hz
	m.DominantPower = power

	if targetHz > 0 && targetHz <= a.sampleRate/2 {
		p, err := spectrum.LevelPower(levels, targetHz, a.sampleRate)
		if err != nil {
			return Measurement{}, err
		}
		m.TargetHz = targetHz
		m.TargetPower = p
	}
	return m, nil
}

func (a *Analyzer) dominant(levels []uint8) (float64, float64, error) {
	fftSize := a.cfg.fftSize
	if fftSize == 0 {
		fftSize = nextPowerOf2(len(levels))
	}
	n := min(len(levels), fftSize)

	x := logic.Bipolar(levels[:n])
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	for i := range x {
		x[i] -= mean
	}
	window.Apply(a.cfg.window, x)

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, 0, fmt.Errorf("pulse: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, 0, fmt.Errorf("pulse: %w", err)
	}

	power := spectrum.Power(out[:fftSize/2+1])
	k, err := spectrum.PeakBin(power, 1, len(power))
	if err != nil {
		return 0, 0, fmt.Errorf("pulse: %w", err)
	}
	if power[k] < silenceThreshold {
		return 0, 0, nil
	}
	return spectrum.BinFrequency(k, fftSize, a.sampleRate), power[k], nil
}

// Engine measures every channel of e. The target frequency is the one the
// grid was generated with: the configured one for PWM and Clock, the embedded
// multiplier for Expression mode, shortened to the fitted cycle when it did
// not fit into the grid.
func Engine(e *pattern.Engine, opts ...Option) ([]Measurement, error) {
	a, err := NewAnalyzer(e.Timing().SampleRateHz(), opts...)
	if err != nil {
		return nil, err
	}
	target := TargetFrequency(e.Config())
	if target > 0 {
		target = e.Timing().FitCycle(target).FrequencyHz
	}

	out := make([]Measurement, e.Channels())
	for ch := range out {
		m, err := a.Measure(e.Channel(ch), target)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		m.Channel = ch
		out[ch] = m
	}
	return out, nil
}

// TargetFrequency returns the frequency cfg asks for, or 0 when its mode
// has none.
func TargetFrequency(cfg pattern.Config) float64 {
	switch {
	case cfg.Mode.Periodic():
		return cfg.TargetFrequencyHz
	case cfg.Mode == pattern.ModeExpression:
		return expr.ExtractFrequency(cfg.Expression)
	default:
		return 0
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
