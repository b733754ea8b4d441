package cli

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/internal/wavexport"
)

// ExportWAVOptions holds flags for the export-wav command.
type ExportWAVOptions struct {
	Channels   []int
	Out        string
	SampleRate int
	Repeat     int
	Amplitude  float64
	Precision  int
}

// NewExportWAVCommand creates the export-wav command.
func NewExportWAVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportWAVOptions{}

	cmd := &cobra.Command{
		Use:   "export-wav <file>",
		Short: "Write one or two channels of a pattern file as WAV",
		Long: `Write one (mono) or two (stereo) channels of a pattern file as a WAV
file. A high step is written as +amplitude and a low step as -amplitude.
By default one step is one frame at the pattern's own sample rate.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			e, err := loadPattern(rootOpts, args[0], false)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeIO, "export-wav", err)
			}

			var wavOpts []wavexport.Option
			if cmd.Flags().Changed("rate") {
				wavOpts = append(wavOpts, wavexport.WithSampleRate(opts.SampleRate))
			}
			wavOpts = append(wavOpts,
				wavexport.WithRepeat(opts.Repeat),
				wavexport.WithAmplitude(opts.Amplitude),
				wavexport.WithPrecision(opts.Precision),
			)
			if err := wavexport.ExportFile(opts.Out, e, opts.Channels, wavOpts...); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "export-wav", err)
			}

			if formatter.JSON() {
				return formatter.Success(map[string]any{
					"file":     opts.Out,
					"channels": opts.Channels,
					"frames":   e.Steps() * opts.Repeat,
				})
			}
			formatter.Status("Wrote "+opts.Out, false)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&opts.Channels, "channels", []int{0}, "channels to export (one or two)")
	f.StringVarP(&opts.Out, "out", "o", "", "output WAV file")
	f.IntVar(&opts.SampleRate, "rate", 0, "WAV sample rate in Hz (default: pattern sample rate)")
	f.IntVar(&opts.Repeat, "repeat", 1, "number of times the pattern is written")
	f.Float64Var(&opts.Amplitude, "amplitude", 0.8, "level of a high step, in (0,1]")
	f.IntVar(&opts.Precision, "precision", 2, "bytes per sample (1|2|3)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
