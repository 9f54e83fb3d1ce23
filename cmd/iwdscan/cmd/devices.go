package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the wireless devices iwd manages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, log, scanner, err := setup(cmd)
		if err != nil {
			return err
		}

		devices, err := scanner.Devices(cmd.Context())
		if err != nil {
			explainFailure(config, log)
			return err
		}

		w := cmd.OutOrStdout()
		for _, d := range devices {
			cols := []string{d.Name, d.Address, string(d.Mode), yesNo(d.Powered, "powered")}
			if hw := strings.TrimSpace(d.Vendor + " " + d.Model); hw != "" {
				cols = append(cols, hw)
			}
			if d.Index > 0 {
				cols = append(cols, fmt.Sprintf("ifindex=%d", d.Index))
			}
			if d.Frequency > 0 {
				cols = append(cols, fmt.Sprintf("freq=%dMHz", d.Frequency))
			}
			fmt.Fprintln(w, strings.Join(cols, "\t"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
