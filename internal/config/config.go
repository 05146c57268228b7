// Package config provides configuration management for heron table operations
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for heron table operations
type Config struct {
	// Parsing Configuration
	Delimiter string `json:"delimiter" yaml:"delimiter"` // Field delimiter for CSV parsing (single character)

	// Display Configuration
	HeadRows int `json:"head_rows" yaml:"head_rows"` // Default number of rows returned by Head

	// Comparison Policy Configuration
	StrictComparisons   bool `json:"strict_comparisons" yaml:"strict_comparisons"`       // Fail ordered comparisons on non-coercible cells instead of yielding false
	LogCoercionFailures bool `json:"log_coercion_failures" yaml:"log_coercion_failures"` // Log per-operation counts of cells that failed numeric coercion
	VerboseLogging      bool `json:"verbose_logging" yaml:"verbose_logging"`             // Enable verbose logging
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultDelimiter = ","
	DefaultHeadRows  = 5
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		Delimiter: DefaultDelimiter,
		HeadRows:  DefaultHeadRows,

		// Comparison policy defaults: permissive and quiet
		StrictComparisons:   false,
		LogCoercionFailures: false,
		VerboseLogging:      false,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return fmt.Errorf("Delimiter must not be empty")
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("Delimiter must be a single character, got %q", c.Delimiter)
	}

	if c.HeadRows <= 0 {
		return fmt.Errorf("HeadRows must be positive, got %d", c.HeadRows)
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.HeadRows == 0 {
		c.HeadRows = defaults.HeadRows
	}

	// Boolean fields are intentionally not defaulted here so an explicitly
	// set false stays distinguishable from unset. Use NewConfig() directly
	// if you need boolean defaults.

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("HERON_DELIMITER"); val != "" {
		config.Delimiter = val
	}

	if val := os.Getenv("HERON_HEAD_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.HeadRows = parsed
		}
	}

	if val := os.Getenv("HERON_STRICT_COMPARISONS"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.StrictComparisons = parsed
		}
	}

	if val := os.Getenv("HERON_LOG_COERCION_FAILURES"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.LogCoercionFailures = parsed
		}
	}

	if val := os.Getenv("HERON_VERBOSE_LOGGING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.VerboseLogging = parsed
		}
	}

	return config
}
