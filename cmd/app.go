package main

import (
	"database/sql"
	"errors"
	"fmt"

	"sprinkler/internal/config"
	"sprinkler/internal/hardware"
	"sprinkler/internal/logger"
	"sprinkler/internal/repository"
	"sprinkler/internal/repository/db"
	"sprinkler/internal/service"
	"sprinkler/internal/zone"

	"github.com/spf13/cobra"
)

// options carries persistent flag values.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	dryRun     bool

	clock service.Clock // nil means the system clock
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	switch {
	case cmd.Flags().Changed("log-file"):
		cfg.Log.File = opts.logFile
	case opts.dryRun:
		// Simulated runs stay off the production log.
		cfg.Log.File = ""
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app holds everything a command needs; close releases it.
type app struct {
	cfg      config.Config
	log      *logger.Logger
	board    hardware.Board
	db       *sql.DB
	services *service.Service
}

func openApp(cfg config.Config, opts *options, withBoard bool) (*app, error) {
	a := &app{cfg: cfg, log: logger.New(cfg.LoggerConfig())}

	var repos *repository.Repository
	if cfg.Journal.Path != "" {
		conn, err := db.InitDB(cfg.Journal.Path)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.db = conn
		repos = repository.NewRepository(conn)
	}

	if !withBoard {
		a.services = &service.Service{EventLog: service.NewEventLogService(eventRepoOf(repos))}
		return a, nil
	}

	if opts.dryRun {
		a.log.Infow("dry run: using simulated board")
		a.board = hardware.NewSimulator(a.log)
	} else {
		hat, err := hardware.OpenAutomationHAT(cfg.HardwareConfig(), a.log)
		if err != nil {
			a.close()
			return nil, err
		}
		a.board = hat
	}

	zones, err := buildZones(cfg, a.board)
	if err != nil {
		a.close()
		return nil, err
	}
	a.services = service.NewService(zones, repos, opts.clock, a.log)
	return a, nil
}

func eventRepoOf(repos *repository.Repository) repository.EventRepo {
	if repos == nil {
		return nil
	}
	return repos.EventRepo
}

// buildZones binds configured zones to board relays in config order.
func buildZones(cfg config.Config, board hardware.Board) (*zone.Map, error) {
	entries := make([]zone.Entry, 0, len(cfg.Zones))
	for _, z := range cfg.Zones {
		ch, err := board.Relay(z.Relay)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", z.Name, err)
		}
		entries = append(entries, zone.Entry{Name: z.Name, Channel: ch})
	}
	return zone.New(entries)
}

func (a *app) close() error {
	var errs []error
	if a.board != nil {
		errs = append(errs, a.board.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	_ = a.log.Sync()
	return errors.Join(errs...)
}
