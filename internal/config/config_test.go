package config

import (
	"testing"

	"bmireport/domain/bmi"
	"bmireport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "BMI_TRAIN_FILE", "BMI_VALIDATION_FILE", "PREVIEW_ROWS",
		"GRID_HEIGHT_MIN", "GRID_HEIGHT_MAX", "GRID_WEIGHT_MIN", "GRID_WEIGHT_MAX", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Data.PreviewRows)
	assert.Equal(t, bmi.DefaultGridRange(), cfg.Grid.Range())
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GRID_HEIGHT_MIN", "150")
	t.Setenv("GRID_HEIGHT_MAX", "160")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PREVIEW_ROWS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 150, cfg.Grid.HeightMin)
	assert.Equal(t, 160, cfg.Grid.HeightMax)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Data.PreviewRows)
}

func TestLoad_InvalidGrid(t *testing.T) {
	t.Setenv("GRID_HEIGHT_MIN", "200")
	t.Setenv("GRID_HEIGHT_MAX", "150")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: "8080"},
		Data:    DataConfig{PreviewRows: 10},
		Grid:    GridConfig{HeightMin: 140, HeightMax: 199, WeightMin: 50, WeightMax: 159},
		Logging: LoggingConfig{Level: "LOUD"},
	}
	assert.Error(t, Validate(cfg))

	cfg.Logging.Level = "WARN"
	assert.NoError(t, Validate(cfg))
}
