package pattern

import (
	"fmt"
	"strings"
)

// Mode selects how Generate fills the grid.
type Mode int

const (
	ModeManual Mode = iota
	ModePWM
	ModePRBS
	ModeClock
	ModeExpression
)

var modeNames = [...]string{
	ModeManual:     "Manual",
	ModePWM:        "PWM",
	ModePRBS:       "PRBS",
	ModeClock:      "Clock",
	ModeExpression: "Expression",
}

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeManual, ModePWM, ModePRBS, ModeClock, ModeExpression}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeManual && m <= ModeExpression
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Periodic reports whether the mode synthesises a duty-cycle pulse train.
func (m Mode) Periodic() bool {
	return m == ModePWM || m == ModeClock
}

// ParseMode converts a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, modeNames[m]) {
			return m, nil
		}
	}
	return ModeManual, fmt.Errorf("%w: unknown pattern mode %q", ErrInvalidConfigValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown pattern mode %d", ErrInvalidConfigValue, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
