package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"sprinkler/internal/hardware"
	"sprinkler/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.ZoneNames(), []string{"backyard", "frontyard", "aux"}) {
		t.Fatalf("unexpected default zones %v", cfg.ZoneNames())
	}
	if cfg.Log.Level != logger.InfoLevel || cfg.Log.File != defaultLogFile {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Log.MaxSizeMB != 100 || cfg.Log.MaxBackups != 10 {
		t.Fatalf("unexpected rotation defaults %+v", cfg.Log)
	}
	if cfg.Board.LEDAddr != hardware.SN3218Addr || cfg.Board.Brightness != 0xFF {
		t.Fatalf("unexpected board defaults %+v", cfg.Board)
	}
	if cfg.Journal.Path != "" {
		t.Fatalf("journal should be disabled by default")
	}
}

func TestLoad_FileKeepsZoneOrder(t *testing.T) {
	path := writeConfig(t, `
zones:
  - name: veggies
    relay: three
  - name: lawn
    relay: one
log:
  level: debug
  file: ""
journal:
  path: /tmp/sprinkler.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Zones, []ZoneConfig{{Name: "veggies", Relay: "three"}, {Name: "lawn", Relay: "one"}}) {
		t.Fatalf("unexpected zones %+v", cfg.Zones)
	}
	if cfg.Log.Level != logger.DebugLevel || cfg.Log.File != "" {
		t.Fatalf("unexpected log section %+v", cfg.Log)
	}
	if cfg.Journal.Path != "/tmp/sprinkler.db" {
		t.Fatalf("unexpected journal path %q", cfg.Journal.Path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPRINKLER_LOG_LEVEL", "warn")
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != logger.WarnLevel {
		t.Fatalf("expected env to win, got %q", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown relay", "zones:\n  - name: a\n    relay: seven\n", "unknown relay"},
		{"duplicate zone", "zones:\n  - name: a\n    relay: one\n  - name: a\n    relay: two\n", "defined twice"},
		{"missing name", "zones:\n  - relay: one\n", "name is required"},
		{"bad level", "log:\n  level: loud\n", "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestAdapters(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Board: BoardConfig{I2CBus: "1", LEDAddr: 0x54, Brightness: 10},
		Log:   LogConfig{Level: "info", File: "x.log", MaxSizeMB: 5, MaxBackups: 2},
	}
	if got := cfg.LoggerConfig(); got != (logger.Config{Level: "info", File: "x.log", MaxSizeMB: 5, MaxBackups: 2}) {
		t.Fatalf("unexpected logger config %+v", got)
	}
	if got := cfg.HardwareConfig(); got != (hardware.BoardConfig{I2CBus: "1", LEDAddr: 0x54, Brightness: 10}) {
		t.Fatalf("unexpected board config %+v", got)
	}
}
