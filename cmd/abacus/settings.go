package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/config"
	"github.com/germanamz/abacus/pkg/logging"
)

// resolveConfigPath returns the config file to use. Priority:
// 1. Explicit --config flag (non-empty)
// 2. .abacus/config.yaml (if it exists)
// 3. abacus.yaml
func resolveConfigPath(explicit, abacusDirPath string) string {
	if explicit != "" {
		return explicit
	}

	abacusConfig := abacusdir.New(abacusDirPath).ConfigPath()
	if _, err := os.Stat(abacusConfig); err == nil {
		return abacusConfig
	}

	return "abacus.yaml"
}

// loadSettings resolves, loads and validates the configuration. A missing
// implicit config file means defaults; a missing explicit one is an error.
func loadSettings(explicit, abacusDirPath string) (config.Config, error) {
	path := resolveConfigPath(explicit, abacusDirPath)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if explicit != "" || !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
		cfg = config.Default()
	}

	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newEngine(cfg config.Config) *calculator.Engine {
	return calculator.New(calculator.WithClearResetsOperator(cfg.Engine.ClearResetsOperator))
}

// newHandler wraps eng with the standard dispatch middleware.
func newHandler(eng *calculator.Engine, log *slog.Logger) calculator.Handler {
	return calculator.Chain(eng,
		calculator.Recovery(),
		calculator.Logger(log),
	)
}

// tuiLogPath picks the log file for the UI, whose terminal cannot carry logs.
// An explicit log.file wins. Otherwise logs go under an existing project
// directory, whose structure is ensured first, or nowhere at all: the UI never
// creates .abacus on its own.
func tuiLogPath(cfg config.Config, d abacusdir.Dir) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}

	if !d.Exists() {
		return "", nil
	}

	if err := abacusdir.EnsureStructure(d); err != nil {
		return "", err
	}

	return d.LogPath(), nil
}

func newLogger(cfg config.Config, path string, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(cfg.Log.Level, path, fallback)
}
