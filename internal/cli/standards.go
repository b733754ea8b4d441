package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/pattern/preset"
)

type standardView struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	LowV         float64 `json:"low_v"`
	HighMinV     float64 `json:"high_min_v"`
	HighMaxV     float64 `json:"high_max_v"`
	Differential bool    `json:"differential"`
	CommonModeV  float64 `json:"common_mode_v,omitempty"`
}

// NewStandardsCommand creates the standards command.
func NewStandardsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "standards",
		Short:         "List I/O standards and their voltage levels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if formatter.JSON() {
				var views []standardView
				for _, std := range pattern.IOStandards() {
					lv := std.Levels()
					views = append(views, standardView{
						Name:         std.String(),
						Description:  std.Description(),
						LowV:         lv.LowV,
						HighMinV:     lv.HighMinV,
						HighMaxV:     lv.HighMaxV,
						Differential: lv.Differential,
						CommonModeV:  lv.CommonModeV,
					})
				}
				return formatter.Success(views)
			}
			var buf bytes.Buffer
			if err := render.New(rootOpts.Color).Standards(&buf); err != nil {
				return err
			}
			return formatter.Success(buf.String())
		},
	}
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "presets",
		Short:         "List built-in presets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			presets, err := preset.Builtin()
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeInvalidInput, "presets", err)
			}
			if formatter.JSON() {
				return formatter.Success(presets)
			}

			var buf bytes.Buffer
			tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Name\tMode\tShape\tDescription\n")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\n", p.Name, p.Mode, p.Channels, p.Steps, p.Description)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return formatter.Success(buf.String())
		},
	}
}
