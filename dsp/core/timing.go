package core

import (
	"fmt"
	"math"
)

const hzPerMHz = 1_000_000

// Timing describes the discrete time grid a pattern is laid out on:
// Steps slots, each lasting one sample period of SampleRateMHz.
type Timing struct {
	SampleRateMHz float64
	Steps         int
}

// Validate checks that the grid is usable for generation.
func (t Timing) Validate() error {
	if !(t.SampleRateMHz > 0) || math.IsInf(t.SampleRateMHz, 1) {
		return fmt.Errorf("sample rate must be > 0 MHz: %f", t.SampleRateMHz)
	}
	if t.Steps < 1 {
		return fmt.Errorf("steps must be > 0: %d", t.Steps)
	}
	return nil
}

// SampleRateHz returns the sample rate in Hz.
func (t Timing) SampleRateHz() float64 {
	return t.SampleRateMHz * hzPerMHz
}

// SamplePeriod returns the duration of one step in seconds.
func (t Timing) SamplePeriod() float64 {
	return 1.0 / (t.SampleRateMHz * hzPerMHz)
}

// TotalDuration returns the duration of the whole grid in seconds.
func (t Timing) TotalDuration() float64 {
	return float64(t.Steps) * t.SamplePeriod()
}

// NyquistHz returns the highest frequency representable at this sample rate.
func (t Timing) NyquistHz() float64 {
	return t.SampleRateMHz * hzPerMHz / 2
}

// ExceedsNyquist reports whether freqHz is above the Nyquist limit.
func (t Timing) ExceedsNyquist(freqHz float64) bool {
	return freqHz > t.NyquistHz()
}

// CycleFit is the result of laying a periodic signal onto the step grid.
type CycleFit struct {
	// StepsPerCycle is the cycle length in steps.
	StepsPerCycle int
	// FrequencyHz is the frequency the cycle length corresponds to. It equals
	// the requested frequency unless Adjusted is set.
	FrequencyHz float64
	// Adjusted is set when the requested cycle did not fit into the grid and
	// was shortened to max(2, Steps/2) steps.
	Adjusted bool
}

// FitCycle computes how many steps one period of freqHz spans. When a full
// period is longer than the grid, the cycle is clamped to max(2, Steps/2)
// steps and the frequency is recomputed so that the clamped cycle is exact.
// A zero or negative frequency is never adjusted; its StepsPerCycle is the
// rounded (negative) cycle length, or 0 when the period is infinite.
func (t Timing) FitCycle(freqHz float64) CycleFit {
	samplePeriod := t.SamplePeriod()
	period := 1.0 / freqHz
	raw := RoundHalfUp(period / samplePeriod)

	if freqHz <= 0 {
		fit := CycleFit{FrequencyHz: freqHz}
		if !math.IsInf(raw, 0) {
			fit.StepsPerCycle = int(raw)
		}
		return fit
	}

	if raw > float64(t.Steps) || math.IsNaN(raw) {
		steps := max(2, t.Steps/2)
		return CycleFit{
			StepsPerCycle: steps,
			FrequencyHz:   1.0 / (float64(steps) * samplePeriod),
			Adjusted:      true,
		}
	}

	return CycleFit{
		StepsPerCycle: int(raw),
		FrequencyHz:   freqHz,
	}
}
