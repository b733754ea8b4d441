package signal

import (
	"fmt"

	"github.com/cwbudde/algo-patgen/dsp/core"
)

// HighSteps returns how many steps of a stepsPerCycle-long cycle are held
// high for dutyCycle percent. The result is clamped to [0, stepsPerCycle-1]
// so every cycle keeps at least one low step.
func HighSteps(stepsPerCycle int, dutyCycle float64) int {
	if stepsPerCycle < 1 {
		return 0
	}
	high := int(core.RoundHalfUp(float64(stepsPerCycle) * dutyCycle / 100.0))
	return core.ClampInt(high, 0, stepsPerCycle-1)
}

// Pulse generates length steps of a pulse train: within each cycle of
// stepsPerCycle steps the first highSteps are 1 and the rest 0.
func Pulse(stepsPerCycle, highSteps, length int) ([]uint8, error) {
	if length <= 0 {
		return nil, fmt.Errorf("pulse length must be > 0: %d", length)
	}
	if stepsPerCycle <= 0 {
		return nil, fmt.Errorf("pulse steps per cycle must be > 0: %d", stepsPerCycle)
	}
	if highSteps < 0 || highSteps > stepsPerCycle {
		return nil, fmt.Errorf("pulse high steps must be in [0,%d]: %d", stepsPerCycle, highSteps)
	}

	out := make([]uint8, length)
	for i := range out {
		if i%stepsPerCycle < highSteps {
			out[i] = 1
		}
	}
	return out, nil
}

// DutyPulse combines HighSteps and Pulse.
func DutyPulse(stepsPerCycle int, dutyCycle float64, length int) ([]uint8, error) {
	if dutyCycle < 0 || dutyCycle > 100 {
		return nil, fmt.Errorf("duty cycle must be in [0,100]: %f", dutyCycle)
	}
	return Pulse(stepsPerCycle, HighSteps(stepsPerCycle, dutyCycle), length)
}

// Tile repeats seq until it is length values long.
func Tile(seq []uint8, length int) ([]uint8, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("tile input must not be empty")
	}
	if length <= 0 {
		return nil, fmt.Errorf("tile length must be > 0: %d", length)
	}
	out := make([]uint8, length)
	for i := range out {
		out[i] = seq[i%len(seq)]
	}
	return out, nil
}
