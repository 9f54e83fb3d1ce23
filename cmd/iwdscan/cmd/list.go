package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	network_wifi "github.com/dogeorg/iwdscan/pkg/system/network/wifi"
)

var longOutput bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Scan and list visible networks, best first (default command)",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	config, log, scanner, err := setup(cmd)
	if err != nil {
		return err
	}

	networks, err := scanner.Scan(cmd.Context())
	if err != nil {
		explainFailure(config, log)
		return err
	}

	printNetworks(cmd.OutOrStdout(), networks, longOutput)
	return nil
}

func printNetworks(w io.Writer, networks []network_wifi.ScannedWifiNetwork, long bool) {
	for _, n := range networks {
		if !long {
			fmt.Fprintln(w, n.SSID)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			n.SSID, n.Security, n.Signal, yesNo(n.Connected, "connected"), yesNo(n.Known, "known"))
	}
}

func yesNo(b bool, word string) string {
	if b {
		return word
	}
	return "-"
}

func init() {
	listCmd.Flags().BoolVarP(&longOutput, "long", "l", false, "print security, signal, connected and known columns")
	rootCmd.AddCommand(listCmd)
}
