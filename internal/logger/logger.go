package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Config selects the console level and the optional rotating log file.
type Config struct {
	Level      string // console level; the file always records debug and up
	File       string // empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger built from cfg.
func New(cfg Config) *Logger {
	return newZapLogger(cfg)
}

// ValidLevel reports whether s names one of the supported levels.
func ValidLevel(s string) bool {
	switch s {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return true
	}
	return false
}
