package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/pattern/patfile"
	"github.com/cwbudde/algo-patgen/pattern/preset"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Preset          string
	BitWidth        string
	Channels        int
	Steps           int
	SampleRateMHz   float64
	IOStandard      string
	Mode            string
	DutyCycle       float64
	FrequencyHz     float64
	Expression      string
	Seed            int64
	ApplyAdjustment bool
	Out             string
}

// GenerateResult is the JSON payload of the generate command.
type GenerateResult struct {
	Result  resultView  `json:"result"`
	Pattern patternView `json:"pattern"`
	File    string      `json:"file,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}
	def := pattern.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pattern from flags or a preset",
		Long: `Build a pattern engine from flags or a preset and fill its grid.

With --preset, the preset provides the configuration and any flag given
explicitly overrides it. Manual mode leaves the grid blank unless --seed
asks for a random fill.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Preset, "preset", "p", "", "built-in preset name or YAML preset file")
	f.StringVar(&opts.BitWidth, "bit-width", strconv.Itoa(int(def.MaxChannels)), "channel ceiling (8|16|32)")
	f.IntVarP(&opts.Channels, "channels", "c", pattern.DefaultChannels, "number of channels")
	f.IntVarP(&opts.Steps, "steps", "s", pattern.DefaultSteps, "number of steps")
	f.Float64Var(&opts.SampleRateMHz, "sample-rate", def.SampleRateMHz, "sample rate in MHz")
	f.StringVar(&opts.IOStandard, "io-standard", def.IOStandard.String(), "I/O standard (TTL|LVTTL|LVCMOS|LVDS)")
	f.StringVarP(&opts.Mode, "mode", "m", def.Mode.String(), "pattern mode (Manual|PWM|Clock|PRBS|Expression)")
	f.Float64Var(&opts.DutyCycle, "duty", def.DutyCycle, "duty cycle in percent")
	f.Float64VarP(&opts.FrequencyHz, "frequency", "f", def.TargetFrequencyHz, "target frequency in Hz")
	f.StringVarP(&opts.Expression, "expression", "e", def.Expression, "expression of t (Expression mode)")
	f.Int64Var(&opts.Seed, "seed", 0, "randomize a Manual pattern with this seed")
	f.BoolVar(&opts.ApplyAdjustment, "apply-adjustment", false, "adopt an adjusted frequency and regenerate")
	f.StringVarP(&opts.Out, "out", "o", "", "write the pattern to this file")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := rootOpts.Logger()

	e, err := buildEngine(rootOpts, opts, cmd.Flags())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "build pattern", err)
	}

	if cmd.Flags().Changed("seed") {
		if e.Config().Mode != pattern.ModeManual {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
				fmt.Sprintf("--seed needs Manual mode, got %s", e.Config().Mode), nil)
		}
		e.Randomize(opts.Seed)
		formatter.VerboseLog("Randomized grid with seed %d", opts.Seed)
	}

	res, err := e.Generate()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGenerate, "generate", err)
	}
	if opts.ApplyAdjustment && e.ApplyAdjustment(res) {
		logger.Info("adopted adjusted frequency", "frequency_hz", res.AdjustedFrequencyHz)
		if res, err = e.Generate(); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeGenerate, "regenerate", err)
		}
	}

	if opts.Out != "" {
		if err := patfile.Save(opts.Out, e); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeIO, "save pattern", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Out)
	}

	if formatter.JSON() {
		return formatter.Success(GenerateResult{
			Result:  newResultView(res),
			Pattern: newPatternView(e),
			File:    opts.Out,
		})
	}

	formatter.Status(res.Status, res.Warning)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(patternText(render.New(rootOpts.Color), e))
	if opts.Out != "" {
		fmt.Fprintf(&b, "\nSaved to %s\n", opts.Out)
	}
	return formatter.Success(b.String())
}

// buildEngine creates the engine from a preset plus explicitly set flags,
// or from flags alone.
func buildEngine(rootOpts *RootOptions, opts *GenerateOptions, flags *pflag.FlagSet) (*pattern.Engine, error) {
	logger := pattern.WithLogger(rootOpts.Logger())

	if opts.Preset == "" {
		engineOpts, err := flagOptions(opts, flags, false)
		if err != nil {
			return nil, err
		}
		return pattern.New(append(engineOpts, logger)...)
	}

	p, err := preset.Resolve(opts.Preset)
	if err != nil {
		return nil, err
	}
	engineOpts, err := flagOptions(opts, flags, true)
	if err != nil {
		return nil, err
	}
	channels, steps := p.Channels, p.Steps
	if flags.Changed("channels") {
		channels = opts.Channels
	}
	if flags.Changed("steps") {
		steps = opts.Steps
	}
	engineOpts = append(engineOpts, pattern.WithShape(channels, steps), logger)
	return p.Build(engineOpts...)
}

// flagOptions converts flags to engine options. With changedOnly set, flags
// left at their defaults are skipped; shape is handled by the caller then.
func flagOptions(opts *GenerateOptions, flags *pflag.FlagSet, changedOnly bool) ([]pattern.Option, error) {
	use := func(name string) bool {
		return !changedOnly || flags.Changed(name)
	}

	var out []pattern.Option
	if use("bit-width") {
		w, err := pattern.ParseBitWidth(opts.BitWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, pattern.WithBitWidth(w))
	}
	if !changedOnly {
		out = append(out, pattern.WithShape(opts.Channels, opts.Steps))
	}
	if use("sample-rate") {
		out = append(out, pattern.WithSampleRateMHz(opts.SampleRateMHz))
	}
	if use("io-standard") {
		std, err := pattern.ParseIOStandard(opts.IOStandard)
		if err != nil {
			return nil, err
		}
		out = append(out, pattern.WithIOStandard(std))
	}
	if use("mode") {
		m, err := pattern.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		out = append(out, pattern.WithMode(m))
	}
	if use("duty") {
		out = append(out, pattern.WithDutyCycle(opts.DutyCycle))
	}
	if use("frequency") {
		out = append(out, pattern.WithTargetFrequency(opts.FrequencyHz))
	}
	if use("expression") {
		out = append(out, pattern.WithExpression(opts.Expression))
	}
	return out, nil
}
