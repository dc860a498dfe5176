package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sprinkler/internal/service"

	"github.com/spf13/cobra"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var errJournalDisabled = errors.New("run journal disabled: set journal.path in the config")

// history: print journal entries, optionally filtered.
func historyCmd(opts *options) *cobra.Command {
	var from, to, typ, zoneName string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Journal.Path == "" {
				return errJournalDisabled
			}

			filter := service.LogFilter{Type: typ, Zone: zoneName}
			if from != "" {
				if filter.From, err = parseQueryTime(from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if to != "" {
				if filter.To, err = parseQueryTime(to); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				// A bare date means the whole day.
				if isDateOnly(to) {
					filter.To = filter.To.Add(24*time.Hour - time.Nanosecond)
				}
			}

			a, err := openApp(cfg, opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.services.EventLog.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ev := range events {
				fmt.Fprintf(out, "%s\t%-5s\t%s\t%ds\t%s\n",
					ev.OccurredAt.Format(time.RFC3339), ev.Type, orDash(ev.Zone), ev.Seconds, ev.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')")
	cmd.Flags().StringVar(&to, "to", "", "end of range; a bare date covers the whole day")
	cmd.Flags().StringVar(&typ, "type", "", "event type: "+strings.Join(service.EventTypes, ", "))
	cmd.Flags().StringVar(&zoneName, "zone", "", "only runs of this zone")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// isDateOnly reports whether the string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
