package pattern

import "log/slog"

type settings struct {
	cfg      Config
	channels int
	steps    int
	logger   *slog.Logger
}

func defaultSettings() settings {
	return settings{
		cfg:      DefaultConfig(),
		channels: DefaultChannels,
		steps:    DefaultSteps,
	}
}

// Option configures an Engine at construction. Values are checked by New.
type Option func(*settings)

// WithConfig replaces the whole generation configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithShape sets the initial channel and step counts.
func WithShape(channels, steps int) Option {
	return func(s *settings) {
		s.channels = channels
		s.steps = steps
	}
}

// WithBitWidth sets the channel ceiling.
func WithBitWidth(w BitWidth) Option {
	return func(s *settings) {
		s.cfg.MaxChannels = w
	}
}

// WithSampleRateMHz sets the sample rate.
func WithSampleRateMHz(mhz float64) Option {
	return func(s *settings) {
		s.cfg.SampleRateMHz = mhz
	}
}

// WithIOStandard sets the I/O standard.
func WithIOStandard(std IOStandard) Option {
	return func(s *settings) {
		s.cfg.IOStandard = std
	}
}

// WithMode sets the generation mode.
func WithMode(m Mode) Option {
	return func(s *settings) {
		s.cfg.Mode = m
	}
}

// WithDutyCycle sets the PWM/Clock duty cycle in percent.
func WithDutyCycle(percent float64) Option {
	return func(s *settings) {
		s.cfg.DutyCycle = percent
	}
}

// WithTargetFrequency sets the PWM/Clock frequency in Hz.
func WithTargetFrequency(hz float64) Option {
	return func(s *settings) {
		s.cfg.TargetFrequencyHz = hz
	}
}

// WithExpression sets the Expression-mode text.
func WithExpression(text string) Option {
	return func(s *settings) {
		s.cfg.Expression = text
	}
}

// WithLogger sets the logger generation diagnostics are written to.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
