package expr

import "math"

// Threshold is the value at or above which an evaluated expression reads as
// logic high.
const Threshold = 0.5

// Eval evaluates the expression at time t seconds. freqHz drives the phase of
// sin and cos; totalDuration is the length of the pattern in seconds and sets
// the ramp period.
func (e Expr) Eval(t, freqHz, totalDuration float64) float64 {
	switch e.kind {
	case KindSine:
		return 0.5 * (1 + math.Sin(2*math.Pi*freqHz*t))
	case KindCosine:
		return 0.5 * (1 + math.Cos(2*math.Pi*freqHz*t))
	case KindRamp:
		if totalDuration <= 0 {
			return 0
		}
		return math.Mod(t, totalDuration) / totalDuration
	case KindConstant:
		return e.value
	default:
		return 0
	}
}

// Level evaluates the expression and maps it to a logic level.
func (e Expr) Level(t, freqHz, totalDuration float64) uint8 {
	if e.Eval(t, freqHz, totalDuration) >= Threshold {
		return 1
	}
	return 0
}

// Evaluate parses text and evaluates it once.
func Evaluate(text string, t, freqHz, totalDuration float64) (float64, error) {
	e, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return e.Eval(t, freqHz, totalDuration), nil
}
