package cli

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/pattern/patfile"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var fallback bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a pattern file",
		Long: `Print the configuration, grid and waveform of a pattern file.

With --fallback an unreadable file is reported as a warning and a default
pattern is shown instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], fallback, cmd)
		},
	}
	cmd.Flags().BoolVar(&fallback, "fallback", false, "show a default pattern if the file cannot be read")

	return cmd
}

func runShow(rootOpts *RootOptions, path string, fallback bool, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	e, err := loadPattern(rootOpts, path, fallback)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, "show", err)
	}

	if formatter.JSON() {
		return formatter.Success(newPatternView(e))
	}
	return formatter.Success(patternText(render.New(rootOpts.Color), e))
}

// loadPattern reads a pattern file with the command logger attached.
// With fallback set, a load failure is logged and a default engine returned.
func loadPattern(rootOpts *RootOptions, path string, fallback bool) (*pattern.Engine, error) {
	logger := rootOpts.Logger()
	if !fallback {
		return patfile.Load(path, pattern.WithLogger(logger))
	}
	e, err := patfile.LoadOrDefault(path, pattern.WithLogger(logger))
	if e == nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("using default pattern", "path", path, "error", err)
	}
	return e, nil
}
