package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/abacus/pkg/config"
)

// wizardValues holds the raw form answers. Numeric fields are strings because
// huh inputs edit text.
type wizardValues struct {
	ClearResetsOperator bool
	TapeSize            string
	LogLevel            string
	ServeAddr           string
	Theme               string
	ShowTape            bool
}

func newWizardValues(cfg config.Config) wizardValues {
	return wizardValues{
		ClearResetsOperator: cfg.Engine.ClearResetsOperator,
		TapeSize:            strconv.Itoa(cfg.Tape.Size),
		LogLevel:            cfg.Log.Level,
		ServeAddr:           cfg.Serve.Addr,
		Theme:               cfg.UI.Theme,
		ShowTape:            cfg.UI.ShowTape,
	}
}

func runWizard() ([]byte, error) {
	v := newWizardValues(config.Default())

	if err := wizardForm(&v).Run(); err != nil {
		return nil, err
	}

	cfg, err := v.config()
	if err != nil {
		return nil, err
	}

	return cfg.Marshal()
}

func wizardForm(v *wizardValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Should clear also reset the operator to +?").
				Value(&v.ClearResetsOperator),
			huh.NewInput().
				Title("Tape size (0 = no tape)").
				Value(&v.TapeSize).
				Validate(validateTapeSize),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
					huh.NewOption("Off", "off"),
				).
				Value(&v.LogLevel),
			huh.NewInput().
				Title("Host bridge address (abacus serve)").
				Value(&v.ServeAddr).
				Validate(validateAddr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Show the tape on start?").
				Value(&v.ShowTape),
		),
	)
}

func (v wizardValues) config() (config.Config, error) {
	size, err := strconv.Atoi(v.TapeSize)
	if err != nil {
		return config.Config{}, fmt.Errorf("tape size: %w", err)
	}

	cfg := config.Default()
	cfg.Engine.ClearResetsOperator = v.ClearResetsOperator
	cfg.Tape.Size = size
	cfg.Log.Level = v.LogLevel
	cfg.Serve.Addr = v.ServeAddr
	cfg.UI.Theme = v.Theme
	cfg.UI.ShowTape = v.ShowTape

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func validateTapeSize(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > config.MaxTapeSize {
		return fmt.Errorf("must be an integer between 0 and %d", config.MaxTapeSize)
	}

	return nil
}

func validateAddr(s string) error {
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("must be host:port")
	}

	return nil
}
