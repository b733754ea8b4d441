package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern"
	"github.com/cwbudde/algo-patgen/pattern/library"
	"github.com/cwbudde/algo-patgen/pattern/patfile"
)

// NewLibraryCommand creates the library command and its subcommands.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Store named patterns in a SQLite library",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "patterns.db", "library database path")

	cmd.AddCommand(&cobra.Command{
		Use:           "save <name> <file>",
		Short:         "Store a pattern file under a name",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(rootOpts, dbPath, cmd, func(ctx context.Context, f *OutputFormatter, s *library.Store) error {
				e, err := loadPattern(rootOpts, args[1], false)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeIO, "library save", err)
				}
				entry, err := s.Save(ctx, args[0], e)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeInvalidInput, "library save", err)
				}
				if f.JSON() {
					return f.Success(entry)
				}
				f.Status(fmt.Sprintf("Saved %q (%s)", entry.Name, entry.ID), false)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List stored patterns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(rootOpts, dbPath, cmd, func(ctx context.Context, f *OutputFormatter, s *library.Store) error {
				entries, err := s.List(ctx)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeIO, "library list", err)
				}
				if f.JSON() {
					if entries == nil {
						entries = []library.Entry{}
					}
					return f.Success(entries)
				}
				var buf bytes.Buffer
				if err := writeEntries(&buf, entries); err != nil {
					return err
				}
				return f.Success(buf.String())
			})
		},
	})

	var out string
	loadCmd := &cobra.Command{
		Use:           "load <name|id>",
		Short:         "Print a stored pattern or write it to a file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(rootOpts, dbPath, cmd, func(ctx context.Context, f *OutputFormatter, s *library.Store) error {
				e, err := loadEntry(ctx, rootOpts, s, args[0])
				if errors.Is(err, library.ErrNotFound) {
					return f.Fail(ExitCommandError, ErrCodeNotFound, "library load", err)
				}
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeIO, "library load", err)
				}
				if out != "" {
					if err := patfile.Save(out, e); err != nil {
						return f.Fail(ExitCommandError, ErrCodeIO, "library load", err)
					}
					f.VerboseLog("Wrote %s", out)
				}
				if f.JSON() {
					return f.Success(newPatternView(e))
				}
				return f.Success(patternText(render.New(rootOpts.Color), e))
			})
		},
	}
	loadCmd.Flags().StringVarP(&out, "out", "o", "", "also write the pattern to this file")
	cmd.AddCommand(loadCmd)

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <name|id>",
		Short:         "Remove a stored pattern",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(rootOpts, dbPath, cmd, func(ctx context.Context, f *OutputFormatter, s *library.Store) error {
				err := s.Delete(ctx, args[0])
				if errors.Is(err, library.ErrNotFound) {
					return f.Fail(ExitCommandError, ErrCodeNotFound, "library delete", err)
				}
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeIO, "library delete", err)
				}
				if f.JSON() {
					return f.Success(map[string]string{"deleted": args[0]})
				}
				f.Status(fmt.Sprintf("Deleted %q", args[0]), false)
				return nil
			})
		},
	})

	return cmd
}

func withLibrary(rootOpts *RootOptions, dbPath string, cmd *cobra.Command,
	fn func(context.Context, *OutputFormatter, *library.Store) error,
) error {
	formatter := newFormatter(rootOpts, cmd)
	s, err := library.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, "library", err)
	}
	defer s.Close()
	formatter.VerboseLog("Opened library %s", dbPath)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, formatter, s)
}

// loadEntry looks key up by name first, then by ID.
func loadEntry(ctx context.Context, rootOpts *RootOptions, s *library.Store, key string) (*pattern.Engine, error) {
	logger := pattern.WithLogger(rootOpts.Logger())
	e, err := s.LoadByName(ctx, key, logger)
	if errors.Is(err, library.ErrNotFound) {
		return s.Load(ctx, key, logger)
	}
	return e, err
}

func writeEntries(buf *bytes.Buffer, entries []library.Entry) error {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tMode\tShape\tUpdated\tID\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%s\n",
			e.Name, e.Mode, e.Channels, e.Steps, e.UpdatedAt.Format(time.DateTime), e.ID)
	}
	return tw.Flush()
}
