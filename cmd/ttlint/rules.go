package ttlint

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ttlint/ttlint/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List built-in rules",
		Run: func(_ *cobra.Command, _ []string) {
			for _, r := range rules.Builtins() {
				fmt.Printf("%-20s %-14s %s\n", r.Reason, strconv.Quote(string(r.Pattern)), r.Message)
			}
			fmt.Printf("%-20s %-14s %s\n", rules.ReasonByteOrderMark, strconv.Quote("\xef\xbb\xbf"), "UTF-8 byte-order mark")
		},
	}
	rootCmd.AddCommand(cmd)
}
