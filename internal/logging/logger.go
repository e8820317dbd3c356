package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
)

// LogLevelEnv selects the log level (debug, info, warn, error)
const LogLevelEnv = "TREASURY_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates the stderr logger for the runtime configuration.
// --debug wins over TREASURY_LOG_LEVEL and turns on source locations.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	level, ok := ParseLevel(os.Getenv(LogLevelEnv))
	if !ok {
		level = slog.LevelInfo
	}

	debug := cfg != nil && cfg.Debug
	if debug {
		level = slog.LevelDebug
	}

	return New(os.Stderr, level, debug)
}

// New builds a text logger writing to w. Timestamps and source locations are
// only kept in debug mode.
func New(w io.Writer, level slog.Level, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && !debug {
				return slog.Attr{}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to a slog.Level. Unknown or empty names report false.
func ParseLevel(val string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// shortPath trims a source path to its location inside the module
func shortPath(file string) string {
	if idx := strings.Index(file, "treasury-cli/"); idx != -1 {
		return file[idx+len("treasury-cli/"):]
	}
	return filepath.Base(file)
}
