// Package logging builds the slog loggers used by the abacus commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ParseLevel maps debug, info, warn (or warning) and error to a slog level.
// Anything else is reported as info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger at the given level. When path is non-empty the
// log is appended to that file (parent directories are created) and the
// returned closer closes it; otherwise records go to fallback. Level "off"
// discards everything.
func New(level, path string, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	if level == "off" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}

	w := fallback
	var closer io.Closer = nopCloser{}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path comes from configuration
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		w = f
		closer = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
