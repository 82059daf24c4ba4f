package ttlint

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the ttlint version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("ttlint", version)
		},
	}
	rootCmd.AddCommand(cmd)
}
