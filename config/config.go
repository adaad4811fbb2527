// Package config loads planner configuration from .mawsool/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mawsool-planner/staffing"
	"mawsool-planner/workbook"
)

// ConfigFileName is the name of the planner configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the planner configuration directory
const ConfigDirName = ".mawsool"

// Config holds all planner configuration
type Config struct {
	Factors FactorsConfig `yaml:"factors"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Export  ExportConfig  `yaml:"export"`
}

// FactorsConfig overrides the planning constants applied during sizing
type FactorsConfig struct {
	Utilization  float64 `yaml:"utilization"`
	Availability float64 `yaml:"availability"`
	MinAgents    int     `yaml:"min_agents"`
	FallbackAHT  float64 `yaml:"fallback_aht_seconds"`
}

// SheetsConfig names the source tabs of the forecast workbook
type SheetsConfig struct {
	Calls string `yaml:"calls"`
	AHT   string `yaml:"aht"`
}

// ExportConfig controls where plan bundles are written
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .mawsool/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge with defaults
	merged := Merge(loaded, DefaultConfig())

	// Validate the merged config
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .mawsool directory by walking up from startDir.
// Returns the path to the .mawsool directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if cfg.Factors.Utilization <= 0 || cfg.Factors.Utilization > 1 {
		return fmt.Errorf("%w: utilization must be within (0, 1], got %f",
			ErrInvalidConfig, cfg.Factors.Utilization)
	}

	if cfg.Factors.Availability <= 0 || cfg.Factors.Availability > 1 {
		return fmt.Errorf("%w: availability must be within (0, 1], got %f",
			ErrInvalidConfig, cfg.Factors.Availability)
	}

	if cfg.Factors.MinAgents < 1 {
		return fmt.Errorf("%w: min_agents must be at least 1, got %d",
			ErrInvalidConfig, cfg.Factors.MinAgents)
	}

	if cfg.Factors.FallbackAHT <= 0 {
		return fmt.Errorf("%w: fallback_aht_seconds must be positive, got %f",
			ErrInvalidConfig, cfg.Factors.FallbackAHT)
	}

	if cfg.Sheets.Calls == "" || cfg.Sheets.AHT == "" {
		return fmt.Errorf("%w: sheet names must not be empty", ErrInvalidConfig)
	}

	return nil
}

// StaffingFactors converts the configured factors into the sizing constants
// used by ingestion and scenario planning.
func (c *Config) StaffingFactors() staffing.Factors {
	return staffing.Factors{
		Utilization:  c.Factors.Utilization,
		Availability: c.Factors.Availability,
		MinAgents:    c.Factors.MinAgents,
		FallbackAHT:  c.Factors.FallbackAHT,
	}
}

// SheetNames converts the configured tab names for the workbook reader.
func (c *Config) SheetNames() workbook.SheetNames {
	return workbook.SheetNames{
		Calls: c.Sheets.Calls,
		AHT:   c.Sheets.AHT,
	}
}
