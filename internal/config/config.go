// Package config loads sprinkler settings with viper from an optional YAML
// file, SPRINKLER_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"sprinkler/internal/hardware"
	"sprinkler/internal/logger"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "SPRINKLER"
	defaultConfigName = "config"
	defaultLogFile    = "/var/log/sprinkler/sprinkler.log"
)

// ZoneConfig maps a zone name to a board relay.
type ZoneConfig struct {
	Name  string `mapstructure:"name"`
	Relay string `mapstructure:"relay"`
}

type BoardConfig struct {
	I2CBus     string `mapstructure:"i2c_bus"`
	LEDAddr    uint16 `mapstructure:"led_addr"`
	Brightness uint8  `mapstructure:"brightness"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// JournalConfig enables the SQLite run journal when Path is set.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Zones   []ZoneConfig  `mapstructure:"zones"`
	Board   BoardConfig   `mapstructure:"board"`
	Log     LogConfig     `mapstructure:"log"`
	Journal JournalConfig `mapstructure:"journal"`
}

// DefaultZones is the stock wiring: backyard, frontyard and aux on relays one to three.
func DefaultZones() []ZoneConfig {
	return []ZoneConfig{
		{Name: "backyard", Relay: hardware.RelayOne},
		{Name: "frontyard", Relay: hardware.RelayTwo},
		{Name: "aux", Relay: hardware.RelayThree},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board.i2c_bus", "")
	v.SetDefault("board.led_addr", hardware.SN3218Addr)
	v.SetDefault("board.brightness", 0xFF)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.file", defaultLogFile)
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("journal.path", "")
}

// Load reads path, or configs/config.yml and /etc/sprinkler/config.yml when
// path is empty. A missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath("/etc/sprinkler")
		v.SetConfigName(defaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Zones) == 0 {
		cfg.Zones = DefaultZones()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the zone table and log level.
func (c Config) Validate() error {
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	relays := map[string]bool{}
	for _, r := range hardware.RelayNames() {
		relays[r] = true
	}
	seen := map[string]bool{}
	for i, z := range c.Zones {
		if z.Name == "" {
			return fmt.Errorf("zone %d: name is required", i)
		}
		if seen[z.Name] {
			return fmt.Errorf("zone %q: defined twice", z.Name)
		}
		seen[z.Name] = true
		if !relays[z.Relay] {
			return fmt.Errorf("zone %q: unknown relay %q", z.Name, z.Relay)
		}
	}
	return nil
}

// ZoneNames lists configured zones in order.
func (c Config) ZoneNames() []string {
	out := make([]string, len(c.Zones))
	for i, z := range c.Zones {
		out[i] = z.Name
	}
	return out
}

// LoggerConfig adapts the log section for the logger package.
func (c Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

// HardwareConfig adapts the board section for the hardware package.
func (c Config) HardwareConfig() hardware.BoardConfig {
	return hardware.BoardConfig{
		I2CBus:     c.Board.I2CBus,
		LEDAddr:    c.Board.LEDAddr,
		Brightness: c.Board.Brightness,
	}
}
