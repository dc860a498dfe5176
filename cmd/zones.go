package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// zones: list configured zones and their relays.
func zonesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List configured zones in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			for _, z := range cfg.Zones {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\trelay %s\n", z.Name, z.Relay)
			}
			return nil
		},
	}
}
