package cli

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/dsp/window"
	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/measure/pulse"
)

var windowTypes = []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		windowName string
		fftSize    int
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Measure the channels of a pattern file",
		Long: `Measure duty cycle, edges and run lengths of every channel, plus the
dominant FFT frequency and the power at the configured target frequency.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			wt, err := parseWindow(windowName)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "analyze", err)
			}
			analyzeOpts := []pulse.Option{pulse.WithWindow(wt)}
			if fftSize > 0 {
				analyzeOpts = append(analyzeOpts, pulse.WithFFTSize(fftSize))
			}

			e, err := loadPattern(rootOpts, args[0], false)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeIO, "analyze", err)
			}
			ms, err := pulse.Engine(e, analyzeOpts...)
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeInvalidInput, "analyze", err)
			}

			if formatter.JSON() {
				return formatter.Success(ms)
			}
			var buf bytes.Buffer
			if err := render.New(rootOpts.Color).Measurements(&buf, ms); err != nil {
				return err
			}
			return formatter.Success(buf.String())
		},
	}
	cmd.Flags().StringVar(&windowName, "window", "hann", "FFT window (rectangular|hann|hamming)")
	cmd.Flags().IntVar(&fftSize, "fft-size", 0, "FFT length, a power of two (default: next power of two of the step count)")

	return cmd
}

func parseWindow(name string) (window.Type, error) {
	for _, t := range windowTypes {
		if strings.EqualFold(name, window.Info(t).Name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown window %q", name)
}

type windowView struct {
	Name         string  `json:"name"`
	ENBW         float64 `json:"enbw"`
	CoherentGain float64 `json:"coherent_gain"`
}

// NewWindowsCommand creates the windows command.
func NewWindowsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "windows",
		Short:         "List the FFT windows accepted by analyze",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			views := make([]windowView, len(windowTypes))
			for i, t := range windowTypes {
				m := window.Info(t)
				views[i] = windowView{Name: strings.ToLower(m.Name), ENBW: m.ENBW, CoherentGain: m.CoherentGain}
			}
			if formatter.JSON() {
				return formatter.Success(views)
			}

			var buf bytes.Buffer
			tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Window\tENBW [bins]\tCoherent Gain\n")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", v.Name, v.ENBW, v.CoherentGain)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return formatter.Success(buf.String())
		},
	}
}
