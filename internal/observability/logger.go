package observability

import (
	"io"
	"strings"

	"github.com/phuslu/log"
)

// ParseLevel converts a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetupLogger installs a console logger on log.DefaultLogger.
// Verbose forces debug level.
func SetupLogger(out io.Writer, level string, verbose bool) {
	lvl := ParseLevel(level)
	if verbose && lvl > log.DebugLevel {
		lvl = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         out,
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}
