package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogeorg/iwdscan/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of iwdscan",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
