// Package report renders run results: a human summary footer and a JSON view
// of collected diagnostics.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/ttlint/ttlint/internal/lint"
)

type PrintOptions struct {
	NoColor      bool
	Fix          bool
	Duration     time.Duration
	FilesScanned int
	FilesFixed   int
}

// PrintSummary writes a short footer after the diagnostics.
func PrintSummary(w io.Writer, diags []lint.Diagnostic, opts PrintOptions) {
	if len(diags) == 0 {
		msg := "No problems found"
		if !opts.NoColor {
			msg = color.GreenString(msg)
		}
		fmt.Fprintln(w, msg)
	} else {
		perRule := map[string]int{}
		for _, d := range diags {
			perRule[string(d.Reason)]++
		}
		keys := make([]string, 0, len(perRule))
		for k := range perRule {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		head := fmt.Sprintf("Problems: %d", len(diags))
		if !opts.NoColor {
			head = color.RedString(head)
		}
		fmt.Fprintln(w, head)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %d\n", k, perRule[k])
		}
		if opts.Fix {
			fmt.Fprintf(w, "Files fixed: %d\n", opts.FilesFixed)
		}
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files checked: %d\n", opts.FilesScanned)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// PrintJSON writes the diagnostics as a JSON array. An empty run prints [].
func PrintJSON(w io.Writer, diags []lint.Diagnostic) error {
	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
