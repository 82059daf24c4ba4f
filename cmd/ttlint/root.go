package ttlint

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagNoColor bool
	flagThreads int
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the ttlint CLI.
var rootCmd = &cobra.Command{
	Use:           "ttlint",
	Short:         "Tiny text linter",
	Long:          "ttlint scans text files for merge conflict markers, trailing whitespace, carriage returns, byte-order marks and custom literal patterns, and can remove them in place.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the ttlint CLI. It should be called by the main package.
// Exit status: 0 clean, 1 when any file produced a diagnostic, 2 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit diagnostics as JSON on stdout")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the clean-file cache")
}
