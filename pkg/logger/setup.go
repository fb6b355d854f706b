package logger

import (
	"os"
)

// SetupLogger initializes the default logger. Logs go to stderr so the
// standard output of commands stays machine-readable.
func SetupLogger(logLevel string, logJSON, logSource bool) Logger {
	level := LogLevel(logLevel)
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
	default:
		level = InfoLevel
	}
	cfg := &Config{
		Level:      level,
		Output:     os.Stderr,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	}
	Init(cfg)
	return GetDefault()
}
