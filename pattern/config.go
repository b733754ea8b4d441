package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-patgen/dsp/core"
)

// BitWidth is the channel ceiling of a pattern.
type BitWidth int

const (
	Width8  BitWidth = 8
	Width16 BitWidth = 16
	Width32 BitWidth = 32
)

// BitWidths lists the supported widths.
func BitWidths() []BitWidth {
	return []BitWidth{Width8, Width16, Width32}
}

// Valid reports whether w is 8, 16 or 32.
func (w BitWidth) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

func (w BitWidth) String() string {
	return strconv.Itoa(int(w)) + "-bit"
}

// ParseBitWidth accepts "16" as well as "16-bit".
func ParseBitWidth(s string) (BitWidth, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-bit")
	n, err := strconv.Atoi(s)
	if err != nil || !BitWidth(n).Valid() {
		return 0, fmt.Errorf("%w: bit width must be 8, 16 or 32: %q", ErrInvalidConfigValue, s)
	}
	return BitWidth(n), nil
}

// Config holds the generation parameters of an Engine.
type Config struct {
	MaxChannels       BitWidth   `json:"max_channels"`
	SampleRateMHz     float64    `json:"sample_rate_mhz"`
	IOStandard        IOStandard `json:"io_standard"`
	Mode              Mode       `json:"mode"`
	DutyCycle         float64    `json:"duty_cycle"`          // percent, PWM and Clock only
	TargetFrequencyHz float64    `json:"target_frequency_hz"` // PWM and Clock only
	Expression        string     `json:"expression"`          // Expression mode only
}

// Default shape of a new engine.
const (
	DefaultChannels = 4
	DefaultSteps    = 8
)

// DefaultConfig returns the configuration a fresh engine starts from:
// 16-bit, 1 MHz, TTL, Manual, 50 % duty, 1 kHz, no expression.
func DefaultConfig() Config {
	return Config{
		MaxChannels:       Width16,
		SampleRateMHz:     1.0,
		IOStandard:        IOTTL,
		Mode:              ModeManual,
		DutyCycle:         50,
		TargetFrequencyHz: 1000,
	}
}

// Validate checks every field against its domain.
func (c Config) Validate() error {
	if !c.MaxChannels.Valid() {
		return fmt.Errorf("%w: bit width must be 8, 16 or 32: %d", ErrInvalidConfigValue, int(c.MaxChannels))
	}
	if err := validateSampleRate(c.SampleRateMHz); err != nil {
		return err
	}
	if err := validateDutyCycle(c.DutyCycle); err != nil {
		return err
	}
	if err := validateFrequency(c.TargetFrequencyHz); err != nil {
		return err
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown pattern mode %d", ErrInvalidConfigValue, int(c.Mode))
	}
	if !c.IOStandard.Valid() {
		return fmt.Errorf("%w: unknown I/O standard %d", ErrInvalidConfigValue, int(c.IOStandard))
	}
	return nil
}

func validateSampleRate(mhz float64) error {
	if !(mhz > 0) || !core.IsFinite(mhz) {
		return fmt.Errorf("%w: sample rate must be > 0 MHz: %v", ErrInvalidConfigValue, mhz)
	}
	return nil
}

func validateDutyCycle(duty float64) error {
	if !(duty >= 0 && duty <= 100) {
		return fmt.Errorf("%w: duty cycle must be in [0,100]: %v", ErrInvalidConfigValue, duty)
	}
	return nil
}

func validateFrequency(hz float64) error {
	if !(hz > 0) || !core.IsFinite(hz) {
		return fmt.Errorf("%w: target frequency must be > 0 Hz: %v", ErrInvalidConfigValue, hz)
	}
	return nil
}
