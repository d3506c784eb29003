package main

import (
	"github.com/spf13/cobra"

	"github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/logging"
)

// newExplorer builds an OS-backed explorer from the loaded configuration.
func (o *rootOptions) newExplorer() (*explore.Explorer, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return explore.New(policy, explore.WithLogger(logging.NewLogger(cfg.LogLevel))), nil
}

// runExplore loads an explorer, runs op and prints its result.
func runExplore(cmd *cobra.Command, opts *rootOptions, op func(*explore.Explorer) explore.Result) error {
	e, err := opts.newExplorer()
	if err != nil {
		return err
	}
	return newPrinter(cmd.OutOrStdout(), opts.noColor).result(op(e))
}

func optionalArg(args []string, i int, def string) string {
	if len(args) > i {
		return args[i]
	}
	return def
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [directory]",
		Aliases: []string{"list"},
		Short:   "List the immediate contents of a directory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts, func(e *explore.Explorer) explore.Result {
				return e.ListFiles(optionalArg(args, 0, "."))
			})
		},
	}
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	var (
		pattern    string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "find [directory]",
		Short: "Recursively find files whose name matches a glob",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts, func(e *explore.Explorer) explore.Result {
				return e.FindFiles(optionalArg(args, 0, "."), pattern, maxResults)
			})
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "*", "Glob matched against file names")
	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 0, "Maximum number of paths (default from policy)")
	return cmd
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <filepath>",
		Short: "Show the first and last lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts, func(e *explore.Explorer) explore.Result {
				return e.ReadPreview(args[0])
			})
		},
	}
}

func newGrepCmd(opts *rootOptions) *cobra.Command {
	grepOpts := explore.DefaultGrepOptions()

	cmd := &cobra.Command{
		Use:   "grep <filepath> <keyword>",
		Short: "Search one file for a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts, func(e *explore.Explorer) explore.Result {
				return e.GrepSearch(args[0], args[1], grepOpts)
			})
		},
	}

	cmd.Flags().IntVarP(&grepOpts.Context, "context", "C", grepOpts.Context, "Lines of context around each match")
	cmd.Flags().BoolVarP(&grepOpts.UseRegex, "use-regex", "E", false, "Treat keyword as a regular expression")
	return cmd
}

func newGrepRecursiveCmd(opts *rootOptions) *cobra.Command {
	var recOpts explore.RecursiveOptions

	cmd := &cobra.Command{
		Use:   "grep-recursive <keyword> [directory]",
		Short: "Search every text file under a directory for a keyword",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts, func(e *explore.Explorer) explore.Result {
				return e.GrepRecursive(optionalArg(args, 1, "."), args[0], recOpts)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&recOpts.Pattern, "pattern", "p", "*", "Glob restricting which file names are searched")
	f.IntVarP(&recOpts.Context, "context", "C", 1, "Lines of context around each match")
	f.BoolVarP(&recOpts.UseRegex, "use-regex", "E", false, "Treat keyword as a regular expression")
	f.IntVar(&recOpts.MaxFiles, "max-files", 0, "Stop after this many files with matches (default from policy)")
	f.IntVar(&recOpts.MaxMatches, "max-matches", 0, "Stop after this many matches in total (default from policy)")
	return cmd
}
