package main

import (
	"github.com/spf13/cobra"
)

// off: release every relay immediately.
func offCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Turn every zone off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			a, err := openApp(cfg, opts, true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.services.Stop(cmd.Context())
		},
	}
}
