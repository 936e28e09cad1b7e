package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"cartcompare/internal/logging"

	"gopkg.in/yaml.v3"
)

func LoadConfig(filepath string) (*ComparisonConfig, error) {
	config, _, err := LoadConfigWithContent(filepath)
	return config, err
}

func LoadConfigWithContent(filepath string) (*ComparisonConfig, string, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(filepath)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
		return nil, "", err
	}

	originalContent := string(data)

	// Expand environment variables
	expanded := expandEnvVars(originalContent)

	var config ComparisonConfig
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to parse config file")
		return nil, "", err
	}

	// Set KeyName and defaults for each model based on the YAML key
	for keyName, model := range config.Models {
		model.KeyName = keyName
		if model.Label == "" {
			model.Label = keyName
		}
		if model.Start == 0 {
			model.Start = 1
		}
		if model.Format == "" {
			model.Format = "csv"
		}
		if model.TimeUnit == "" {
			model.TimeUnit = "days"
		}
		config.Models[keyName] = model
	}

	if config.Comparison.SDMultiplier == 0 {
		config.Comparison.SDMultiplier = 1
	}

	if err := validateConfig(&config); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	return &config, originalContent, nil
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

func validateConfig(config *ComparisonConfig) error {
	if config.Comparison.Name == "" {
		return fmt.Errorf("comparison name is required")
	}

	if config.Comparison.Days <= 0 {
		return fmt.Errorf("days must be greater than 0")
	}

	if config.Comparison.SDMultiplier < 0 {
		return fmt.Errorf("sd_multiplier must not be negative")
	}

	if len(config.Models) == 0 {
		return fmt.Errorf("at least one model must be defined")
	}

	if len(config.Comparison.Fields) == 0 && len(config.Comparison.Ratios) == 0 {
		return fmt.Errorf("at least one field or ratio must be requested")
	}

	switch config.Comparison.Axis.Mode {
	case "", "first", "union":
	case "grid":
		if config.Comparison.Axis.GridPoints < 2 {
			return fmt.Errorf("axis mode grid requires grid_points >= 2")
		}
	default:
		return fmt.Errorf("unknown axis mode %q", config.Comparison.Axis.Mode)
	}

	for _, ratio := range config.Comparison.Ratios {
		if ratio.Name == "" || ratio.Numerator == "" || ratio.Denominator == "" {
			return fmt.Errorf("ratio entries need name, numerator and denominator")
		}
	}

	// Validate models
	indices := make(map[int]bool)
	for name, model := range config.Models {
		if model.Dir == "" {
			return fmt.Errorf("model %s: dir is required", name)
		}

		if !strings.Contains(model.Pattern, "%d") {
			return fmt.Errorf("model %s: pattern must contain a %%d verb", name)
		}

		if model.Count <= 0 {
			return fmt.Errorf("model %s: count must be greater than 0", name)
		}

		switch model.Format {
		case "csv":
			if model.TimeColumn == "" {
				return fmt.Errorf("model %s: time_column is required", name)
			}
		case "dat":
			if len(model.Columns) == 0 {
				return fmt.Errorf("model %s: dat format requires column names", name)
			}
			if model.TimeColumn == "" {
				return fmt.Errorf("model %s: time_column is required", name)
			}
		default:
			return fmt.Errorf("model %s: unknown format %q", name, model.Format)
		}

		if model.TimeUnit != "days" && model.TimeUnit != "minutes" {
			return fmt.Errorf("model %s: time_unit must be days or minutes", name)
		}

		if indices[model.Index] {
			return fmt.Errorf("model %s: index %d is already used", name, model.Index)
		}
		indices[model.Index] = true
	}

	return nil
}
