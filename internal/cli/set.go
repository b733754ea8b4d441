package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern/patfile"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <channel> <step> <value>",
		Short: "Set one cell of a pattern file",
		Long: `Set one cell of a pattern file to 0 or 1 and write the file back.

Channel and step are zero-based. Any other value, or a cell outside the
grid, is rejected and the file is left untouched.`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runSet(rootOpts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	path := args[0]

	var nums [3]int
	for i, name := range []string{"channel", "step", "value"} {
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
				fmt.Sprintf("%s must be an integer: %q", name, args[i+1]), nil)
		}
		nums[i] = n
	}
	channel, step, value := nums[0], nums[1], nums[2]

	e, err := loadPattern(rootOpts, path, false)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, "set", err)
	}
	if err := e.SetStrict(channel, step, value); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "set", err)
	}
	if err := patfile.Save(path, e); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, "set", err)
	}
	formatter.VerboseLog("Set channel %d step %d to %d in %s", channel, step, value, path)

	if formatter.JSON() {
		return formatter.Success(newPatternView(e))
	}
	return formatter.Success(render.New(rootOpts.Color).Grid(e))
}
