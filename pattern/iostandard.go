package pattern

import (
	"fmt"
	"strings"
)

// IOStandard is the voltage convention of the output lines. It is
// descriptive only and has no effect on generated bits.
type IOStandard int

const (
	IOTTL IOStandard = iota
	IOLVTTL
	IOLVCMOS
	IOLVDS
)

// VoltageLevels describes the electrical levels of an I/O standard.
type VoltageLevels struct {
	LowV         float64
	HighMinV     float64
	HighMaxV     float64
	Differential bool
	CommonModeV  float64
}

type ioInfo struct {
	name        string
	levels      VoltageLevels
	description string
}

var ioStandards = [...]ioInfo{
	IOTTL: {
		name:        "TTL",
		levels:      VoltageLevels{LowV: 0, HighMinV: 5, HighMaxV: 5},
		description: "0V (low), 5V (high)",
	},
	IOLVTTL: {
		name:        "LVTTL",
		levels:      VoltageLevels{LowV: 0, HighMinV: 3.3, HighMaxV: 3.3},
		description: "0V (low), 3.3V (high)",
	},
	IOLVCMOS: {
		name:        "LVCMOS",
		levels:      VoltageLevels{LowV: 0, HighMinV: 1.8, HighMaxV: 3.3},
		description: "0V (low), 1.8V-3.3V (high)",
	},
	IOLVDS: {
		name:        "LVDS",
		levels:      VoltageLevels{Differential: true, CommonModeV: 1.2},
		description: "Differential, ~1.2V common mode",
	},
}

// IOStandards lists every standard in display order.
func IOStandards() []IOStandard {
	return []IOStandard{IOTTL, IOLVTTL, IOLVCMOS, IOLVDS}
}

// Valid reports whether s is one of the defined standards.
func (s IOStandard) Valid() bool {
	return s >= IOTTL && s <= IOLVDS
}

func (s IOStandard) String() string {
	if !s.Valid() {
		return fmt.Sprintf("IOStandard(%d)", int(s))
	}
	return ioStandards[s].name
}

// Levels returns the voltage levels of the standard.
func (s IOStandard) Levels() VoltageLevels {
	if !s.Valid() {
		return VoltageLevels{}
	}
	return ioStandards[s].levels
}

// Description returns a one-line summary such as "TTL: 0V (low), 5V (high)".
func (s IOStandard) Description() string {
	if !s.Valid() {
		return "Unknown standard"
	}
	return ioStandards[s].name + ": " + ioStandards[s].description
}

// ParseIOStandard converts a standard name, ignoring case and surrounding space.
func ParseIOStandard(name string) (IOStandard, error) {
	name = strings.TrimSpace(name)
	for _, s := range IOStandards() {
		if strings.EqualFold(name, ioStandards[s].name) {
			return s, nil
		}
	}
	return IOTTL, fmt.Errorf("%w: unknown I/O standard %q", ErrInvalidConfigValue, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s IOStandard) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown I/O standard %d", ErrInvalidConfigValue, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *IOStandard) UnmarshalText(text []byte) error {
	v, err := ParseIOStandard(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
