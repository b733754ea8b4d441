package pattern

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-patgen/dsp/buffer"
	"github.com/cwbudde/algo-patgen/dsp/core"
	"github.com/cwbudde/algo-patgen/dsp/expr"
	"github.com/cwbudde/algo-patgen/dsp/signal"
)

// ManualStatus is the status returned when Generate runs in Manual mode.
const ManualStatus = "Manual mode: edit cells directly."

// Result describes one Generate call.
type Result struct {
	Mode   Mode
	Status string
	// Warning is set when the requested frequency did not fit the grid.
	Warning bool
	// StepsPerCycle and HighSteps are zero for Manual and PRBS.
	StepsPerCycle int
	HighSteps     int
	// FrequencyHz is the frequency the grid was generated with.
	FrequencyHz float64
	// Adjusted and AdjustedFrequencyHz report a cycle that was shortened to
	// fit. The configuration is left unchanged; see Engine.ApplyAdjustment.
	Adjusted            bool
	AdjustedFrequencyHz float64
}

// Generate fills the grid according to the configured mode. On error the
// grid is left unchanged.
func (e *Engine) Generate() (Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return Result{}, err
	}
	if e.cfg.Mode == ModeManual {
		return Result{Mode: ModeManual, Status: ManualStatus}, nil
	}

	scratch, err := e.pool.Get(e.grid.Channels(), e.grid.Steps(), e.grid.MaxChannels())
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch e.cfg.Mode {
	case ModePWM, ModeClock:
		res, err = e.generatePeriodic(scratch)
	case ModePRBS:
		res, err = e.generatePRBS(scratch)
	case ModeExpression:
		res, err = e.generateExpression(scratch)
	default:
		err = fmt.Errorf("%w: unknown pattern mode %d", ErrInvalidConfigValue, int(e.cfg.Mode))
	}
	if err != nil {
		e.pool.Put(scratch)
		return Result{}, err
	}

	e.grid, scratch = scratch, e.grid
	e.pool.Put(scratch)
	res.Mode = e.cfg.Mode
	return res, nil
}

func (e *Engine) generatePeriodic(dst *buffer.Grid) (Result, error) {
	timing := e.Timing()
	freq := e.cfg.TargetFrequencyHz
	if timing.ExceedsNyquist(freq) {
		return Result{}, fmt.Errorf("%w: %g Hz > %g Hz at %g MHz",
			ErrNyquistViolation, freq, timing.NyquistHz(), e.cfg.SampleRateMHz)
	}

	fit := timing.FitCycle(freq)
	high := signal.HighSteps(fit.StepsPerCycle, e.cfg.DutyCycle)
	row, err := signal.Pulse(fit.StepsPerCycle, high, timing.Steps)
	if err != nil {
		return Result{}, err
	}
	if err := dst.Broadcast(row); err != nil {
		return Result{}, err
	}

	e.logger.Debug("generated pulse pattern",
		slog.String("mode", e.cfg.Mode.String()),
		slog.Float64("sample_period_s", timing.SamplePeriod()),
		slog.Int("steps_per_cycle", fit.StepsPerCycle),
		slog.Int("high_steps", high),
		slog.Float64("frequency_hz", fit.FrequencyHz))

	res := Result{
		StepsPerCycle: fit.StepsPerCycle,
		HighSteps:     high,
		FrequencyHz:   fit.FrequencyHz,
		Status:        fmt.Sprintf("Generated %s pattern.", e.cfg.Mode),
	}
	if fit.Adjusted {
		e.adjusted(&res, "Pattern", freq, fit)
	}
	return res, nil
}

func (e *Engine) generatePRBS(dst *buffer.Grid) (Result, error) {
	row, err := signal.PRBS7Tiled(dst.Steps())
	if err != nil {
		return Result{}, err
	}
	if err := dst.Broadcast(row); err != nil {
		return Result{}, err
	}
	e.logger.Debug("generated PRBS7 pattern", slog.Int("steps", dst.Steps()))
	return Result{Status: "Generated PRBS pattern."}, nil
}

func (e *Engine) generateExpression(dst *buffer.Grid) (Result, error) {
	parsed, err := expr.Parse(e.cfg.Expression)
	if err != nil {
		return Result{}, err
	}

	timing := e.Timing()
	freq := expr.ExtractFrequency(e.cfg.Expression)
	fit := timing.FitCycle(freq)
	samplePeriod := timing.SamplePeriod()
	total := timing.TotalDuration()

	row := make([]uint8, timing.Steps)
	for s := range row {
		row[s] = parsed.Level(float64(s)*samplePeriod, fit.FrequencyHz, total)
	}
	if err := dst.Broadcast(row); err != nil {
		return Result{}, err
	}

	e.logger.Debug("generated expression pattern",
		slog.String("kind", parsed.Kind().String()),
		slog.Float64("sample_period_s", samplePeriod),
		slog.Float64("total_duration_s", total),
		slog.Int("steps_per_cycle", fit.StepsPerCycle),
		slog.Float64("frequency_hz", fit.FrequencyHz))

	res := Result{
		StepsPerCycle: fit.StepsPerCycle,
		FrequencyHz:   fit.FrequencyHz,
		Status:        "Generated Expression pattern.",
	}
	if fit.Adjusted {
		e.adjusted(&res, "Expression", freq, fit)
	}
	return res, nil
}

func (e *Engine) adjusted(res *Result, subject string, requested float64, fit core.CycleFit) {
	res.Warning = true
	res.Adjusted = true
	res.AdjustedFrequencyHz = fit.FrequencyHz
	res.Status = fmt.Sprintf(
		"Warning: %s frequency too low (%g Hz). Increase steps or frequency to see transitions.",
		subject, fit.FrequencyHz)
	e.logger.Warn("frequency adjusted to fit pattern",
		slog.String("mode", e.cfg.Mode.String()),
		slog.Float64("requested_hz", requested),
		slog.Float64("adjusted_hz", fit.FrequencyHz),
		slog.Int("steps_per_cycle", fit.StepsPerCycle))
}
