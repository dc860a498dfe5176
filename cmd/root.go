package main

import (
	"fmt"
	"slices"
	"strings"

	"sprinkler/internal/config"
	"sprinkler/internal/duration"
	"sprinkler/internal/zone"

	"github.com/spf13/cobra"
)

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "sprinkler <zone> <duration>",
		Short: "Run one irrigation zone for a given time",
		Long: "Run one irrigation zone for a given time.\n\n" +
			"Durations: " + durationForms() + ", e.g. 30s, 5min or 45.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return cfg.ZoneNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := checkArgs(cfg, args[0], args[1]); err != nil {
				return err
			}

			a, err := openApp(cfg, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.services.Water(cmd.Context(), args[0], args[1]); err != nil {
				a.log.Errorw("run failed", "zone", args[0], "err", err)
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default configs/config.yml or /etc/sprinkler/config.yml)")
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "drive a simulated board instead of the hardware")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "console log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "rotating log file, empty to disable")

	root.AddCommand(zonesCmd(opts), offCmd(opts), historyCmd(opts))
	return root
}

// checkArgs rejects bad input before any board is opened.
func checkArgs(cfg config.Config, zoneName, rawDuration string) error {
	if !slices.Contains(cfg.ZoneNames(), zoneName) {
		return fmt.Errorf("%w: %q (choose from %v)", zone.ErrUnknownZone, zoneName, cfg.ZoneNames())
	}
	_, err := duration.Parse(rawDuration)
	return err
}

func durationForms() string {
	rules := duration.Rules()
	forms := make([]string, len(rules))
	for i, r := range rules {
		forms[i] = fmt.Sprintf("%s (x%d)", r.Form, r.Multiplier)
	}
	return strings.Join(forms, ", ")
}
