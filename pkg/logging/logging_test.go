package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestNewFallbackWriter(t *testing.T) {
	var buf bytes.Buffer

	log, closer, err := New("warn", "", &buf)
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "abacus.log")

	log, closer, err := New("debug", path, nil)
	require.NoError(t, err)

	log.Debug("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewOff(t *testing.T) {
	var buf bytes.Buffer

	log, closer, err := New("off", "", &buf)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	log.Error("nothing")
	assert.Empty(t, buf.String())
}
