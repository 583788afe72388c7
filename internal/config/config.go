package config

import (
	"os"
	"strconv"
	"strings"

	"bmireport/domain/bmi"
	"bmireport/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `validate:"required"`
	Data    DataConfig    `validate:"required"`
	Grid    GridConfig    `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `validate:"required,numeric"`
}

// DataConfig holds dataset locations and display settings
type DataConfig struct {
	TrainFile      string
	ValidationFile string
	PreviewRows    int `validate:"gte=1,lte=1000"`
}

// GridConfig bounds the synthetic mapping grid (inclusive, integer cm / kg)
type GridConfig struct {
	HeightMin int `validate:"gt=0"`
	HeightMax int `validate:"gtefield=HeightMin"`
	WeightMin int `validate:"gt=0"`
	WeightMax int `validate:"gtefield=WeightMin"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// Range converts the grid settings to the domain type
func (g GridConfig) Range() bmi.GridRange {
	return bmi.GridRange{
		HeightMin: g.HeightMin,
		HeightMax: g.HeightMax,
		WeightMin: g.WeightMin,
		WeightMax: g.WeightMax,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := bmi.DefaultGridRange()

	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			TrainFile:      getEnvOrDefault("BMI_TRAIN_FILE", "bmi_data/bmi_train.csv"),
			ValidationFile: getEnvOrDefault("BMI_VALIDATION_FILE", ""),
			PreviewRows:    getEnvIntOrDefault("PREVIEW_ROWS", 10),
		},
		Grid: GridConfig{
			HeightMin: getEnvIntOrDefault("GRID_HEIGHT_MIN", defaults.HeightMin),
			HeightMax: getEnvIntOrDefault("GRID_HEIGHT_MAX", defaults.HeightMax),
			WeightMin: getEnvIntOrDefault("GRID_WEIGHT_MIN", defaults.WeightMin),
			WeightMax: getEnvIntOrDefault("GRID_WEIGHT_MAX", defaults.WeightMax),
		},
		Logging: LoggingConfig{
			Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks struct tags on the configuration
func Validate(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "configuration validation failed"))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
