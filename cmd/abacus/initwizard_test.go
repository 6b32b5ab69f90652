package main

import (
	"testing"

	"github.com/germanamz/abacus/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardValuesRoundTrip(t *testing.T) {
	v := newWizardValues(config.Default())

	cfg, err := v.config()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestWizardValuesConfig(t *testing.T) {
	v := wizardValues{
		ClearResetsOperator: true,
		TapeSize:            "0",
		LogLevel:            "off",
		ServeAddr:           "0.0.0.0:9000",
		Theme:               "light",
		ShowTape:            false,
	}

	cfg, err := v.config()
	require.NoError(t, err)
	assert.True(t, cfg.Engine.ClearResetsOperator)
	assert.Equal(t, 0, cfg.Tape.Size)
	assert.Equal(t, "off", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9000", cfg.Serve.Addr)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowTape)
}

func TestWizardValuesInvalid(t *testing.T) {
	v := newWizardValues(config.Default())
	v.TapeSize = "lots"
	_, err := v.config()
	assert.Error(t, err)

	v = newWizardValues(config.Default())
	v.TapeSize = "20000"
	_, err = v.config()
	assert.ErrorContains(t, err, "tape.size")
}

func TestWizardValidators(t *testing.T) {
	assert.NoError(t, validateTapeSize("0"))
	assert.NoError(t, validateTapeSize("50"))
	assert.Error(t, validateTapeSize("-1"))
	assert.Error(t, validateTapeSize("abc"))
	assert.NoError(t, validateTapeSize("10000"))
	assert.Error(t, validateTapeSize("10001"))

	assert.NoError(t, validateAddr("127.0.0.1:7357"))
	assert.NoError(t, validateAddr(":8080"))
	assert.Error(t, validateAddr("localhost"))
}

func TestRunInitDefaults(t *testing.T) {
	dir := t.TempDir() + "/.abacus"

	require.NoError(t, runInit(dir, true))

	cfg, err := config.LoadConfig(dir + "/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestTapeSizeValidatorMatchesConfig(t *testing.T) {
	for _, size := range []string{"-1", "0", "9999", "10000", "10001", "20000"} {
		v := newWizardValues(config.Default())
		v.TapeSize = size

		_, cfgErr := v.config()
		fieldErr := validateTapeSize(size)

		assert.Equal(t, cfgErr == nil, fieldErr == nil, "tape size %s", size)
	}
}
