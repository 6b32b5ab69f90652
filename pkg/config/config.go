// Package config loads abacus settings from a YAML file, expands ${VAR}
// references against the environment and then applies ABACUS_* environment
// overrides.
package config

import (
	"fmt"
	"net"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. ABACUS_LOG_LEVEL.
const EnvPrefix = "ABACUS"

// Config is the top-level configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Tape   TapeConfig   `yaml:"tape"`
	Log    LogConfig    `yaml:"log"`
	Serve  ServeConfig  `yaml:"serve"`
	UI     UIConfig     `yaml:"ui"`
}

// EngineConfig holds calculator behaviour settings.
type EngineConfig struct {
	// ClearResetsOperator makes clear also reset the pending operator to +.
	ClearResetsOperator bool `yaml:"clear_resets_operator" split_words:"true"`
}

// TapeConfig controls the in-memory evaluation history.
type TapeConfig struct {
	Size int `yaml:"size"` // 0 disables the tape.
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error or off.
	File  string `yaml:"file"`  // Empty means the .abacus/local default.
}

// ServeConfig holds host bridge settings.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Theme    string `yaml:"theme"` // dark or light.
	ShowTape bool   `yaml:"show_tape" split_words:"true"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Tape:  TapeConfig{Size: 50},
		Log:   LogConfig{Level: "info"},
		Serve: ServeConfig{Addr: "127.0.0.1:7357"},
		UI:    UIConfig{Theme: "dark", ShowTape: true},
	}
}

// LoadConfig reads a YAML file on top of Default. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default after environment expansion.
func Parse(data []byte) (Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from ABACUS_* environment variables. Variables
// that are not set leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}

	return nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return data, nil
}

// MaxTapeSize is the largest accepted tape.size.
const MaxTapeSize = 10_000

var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}, "off": {},
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Tape.Size < 0 || c.Tape.Size > MaxTapeSize {
		return fmt.Errorf("config: tape.size must be between 0 and %d, got %d", MaxTapeSize, c.Tape.Size)
	}

	if _, ok := logLevels[c.Log.Level]; !ok {
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}

	if c.Serve.Addr == "" {
		return fmt.Errorf("config: serve.addr is required")
	}
	if _, _, err := net.SplitHostPort(c.Serve.Addr); err != nil {
		return fmt.Errorf("config: serve.addr %q: %w", c.Serve.Addr, err)
	}

	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("config: unknown ui.theme %q", c.UI.Theme)
	}

	return nil
}
