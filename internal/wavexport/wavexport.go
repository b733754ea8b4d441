// Package wavexport writes pattern channels to WAV files so they can be
// inspected in an audio editor or fed to a sound-card scope.
package wavexport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/cwbudde/algo-patgen/pattern"
)

// ErrChannels reports a channel selection that is empty, too long or out of
// range.
var ErrChannels = errors.New("wav export needs one or two valid channels")

type config struct {
	sampleRate int
	repeat     int
	amplitude  float64
	precision  int
}

// Option configures Export.
type Option func(*config)

// WithSampleRate overrides the WAV sample rate. By default the pattern's
// own sample rate is used, so one step is one frame.
func WithSampleRate(hz int) Option {
	return func(c *config) {
		c.sampleRate = hz
	}
}

// WithRepeat writes the pattern n times back to back.
func WithRepeat(n int) Option {
	return func(c *config) {
		c.repeat = n
	}
}

// WithAmplitude sets the level of a high step; a low step is its negative.
func WithAmplitude(a float64) Option {
	return func(c *config) {
		c.amplitude = a
	}
}

// WithPrecision sets the bytes per sample (1, 2 or 3).
func WithPrecision(bytes int) Option {
	return func(c *config) {
		c.precision = bytes
	}
}

// Export encodes the selected channels of e as a mono or stereo WAV stream.
func Export(w io.WriteSeeker, e *pattern.Engine, channels []int, opts ...Option) error {
	if len(channels) == 0 || len(channels) > 2 {
		return fmt.Errorf("%w: got %d", ErrChannels, len(channels))
	}
	rows := make([][]uint8, len(channels))
	for i, ch := range channels {
		rows[i] = e.Channel(ch)
		if rows[i] == nil {
			return fmt.Errorf("%w: channel %d not in [0,%d)", ErrChannels, ch, e.Channels())
		}
	}

	cfg := config{
		sampleRate: int(math.Round(e.Timing().SampleRateHz())),
		repeat:     1,
		amplitude:  0.8,
		precision:  2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleRate < 1 {
		return fmt.Errorf("wav export: sample rate must be > 0: %d", cfg.sampleRate)
	}
	if cfg.repeat < 1 {
		return fmt.Errorf("wav export: repeat must be > 0: %d", cfg.repeat)
	}
	if cfg.precision < 1 || cfg.precision > 3 {
		return fmt.Errorf("wav export: precision must be 1, 2 or 3 bytes: %d", cfg.precision)
	}
	if !(cfg.amplitude > 0 && cfg.amplitude <= 1) {
		return fmt.Errorf("wav export: amplitude must be in (0,1]: %v", cfg.amplitude)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(cfg.sampleRate),
		NumChannels: len(channels),
		Precision:   cfg.precision,
	}
	s := &levelStreamer{rows: rows, total: e.Steps() * cfg.repeat, amplitude: cfg.amplitude}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("wav export: %w", err)
	}
	return nil
}

// ExportFile writes the WAV stream to path.
func ExportFile(path string, e *pattern.Engine, channels []int, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav export: %w", err)
	}
	if err := Export(f, e, channels, opts...); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// levelStreamer plays the rows as bipolar levels. A single row is copied to
// both stereo slots; beep folds them back to mono on encode.
type levelStreamer struct {
	rows      [][]uint8
	pos       int
	total     int
	amplitude float64
}

func (s *levelStreamer) level(row []uint8, step int) float64 {
	if row[step%len(row)] != 0 {
		return s.amplitude
	}
	return -s.amplitude
}

func (s *levelStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := min(len(samples), s.total-s.pos)
	for i := 0; i < n; i++ {
		step := s.pos + i
		left := s.level(s.rows[0], step)
		right := left
		if len(s.rows) > 1 {
			right = s.level(s.rows[1], step)
		}
		samples[i][0] = left
		samples[i][1] = right
	}
	s.pos += n
	return n, true
}

func (s *levelStreamer) Err() error { return nil }
