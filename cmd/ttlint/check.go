package ttlint

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/ttlint/ttlint/internal/config"
	"github.com/ttlint/ttlint/internal/engine"
	"github.com/ttlint/ttlint/internal/lint"
	"github.com/ttlint/ttlint/internal/report"
)

var (
	flagPatterns        []string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagDefaultExcludes bool
)

func init() {
	check := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report structural defects in text files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLint(args, false)
		},
	}
	fix := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Remove flagged spans from files in place",
		Long:  "fix runs the same scan as check and rewrites each file with every matched span removed. Line structure is preserved: when a removed span consumed a newline, the newline stays.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLint(args, true)
		},
	}
	for _, cmd := range []*cobra.Command{check, fix} {
		cmd.Flags().StringArrayVarP(&flagPatterns, "pattern", "p", nil, "additional literal pattern to flag (repeatable)")
		cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (directory targets)")
		cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs (directory targets)")
		cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip walked files larger than this")
		cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, images, lockfiles, etc.)")
		rootCmd.AddCommand(cmd)
	}
}

func runLint(paths []string, fix bool) error {
	root, _ := filepath.Abs(".")

	// Config precedence: CLI > local > global.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}
	patterns := flagPatterns
	if len(patterns) == 0 {
		if len(lcfg.Patterns) > 0 {
			patterns = lcfg.Patterns
		} else {
			patterns = gcfg.Patterns
		}
	}

	cfg := engine.Config{
		Root:            root,
		Paths:           paths,
		Patterns:        patterns,
		Fix:             fix,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes: flagDefaultExcludes,
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) ||
		!isatty.IsTerminal(os.Stderr.Fd())

	var collector lint.Collector
	var sink lint.Sink = &collector
	if !flagJSON {
		sink = lint.Tee{lint.NewTextSink(os.Stderr, !noColor), &collector}
	}

	res, err := engine.Run(cfg, sink)
	if err != nil {
		return err
	}

	diags := collector.Diagnostics()
	if flagJSON {
		if err := report.PrintJSON(os.Stdout, diags); err != nil {
			return err
		}
	} else {
		report.PrintSummary(os.Stdout, diags, report.PrintOptions{
			NoColor:      noColor,
			Fix:          fix,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
			FilesFixed:   res.FilesFixed,
		})
	}
	if res.Bad {
		os.Exit(1)
	}
	return nil
}
