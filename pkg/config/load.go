// Package config handles configuration loading, validation, and defaults for envup.
// It supports a YAML configuration file (.envup.yml) discovered in the working
// directory or passed explicitly, with built-in pip defaults filling unset fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigName is the config filename discovered in the working directory.
const LocalConfigName = ".envup.yml"

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .envup.yml in the working directory.
// If no config is found, it returns the built-in default configuration.
// Unset fields are always completed from the built-in defaults.
//
// Parameters:
//   - configPath: path to the config file, or empty to use discovery
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded and completed configuration
//   - error: any error encountered during loading
func LoadConfig(configPath, workDir string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg = loaded
	} else {
		localConfig := filepath.Join(workDir, LocalConfigName)
		if _, err := os.Stat(localConfig); err == nil {
			loaded, err := loadConfigFile(localConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			cfg = loaded
		}
	}

	if cfg == nil {
		cfg = loadDefaultConfig()
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	applyDefaults(cfg)

	return cfg, nil
}

// loadConfigFile loads a config file with the default size limit.
//
// The size limit prevents memory exhaustion from accidentally pointing the
// tool at a huge file.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file is too large, not found, or has invalid YAML
func loadConfigFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)",
			info.Size(), DefaultMaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return loadConfigData(data)
}

// loadConfigData parses YAML configuration data.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: error if YAML is invalid or malformed
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return &cfg, nil
}

// ResolvePath resolves a config-relative path against the working directory.
//
// Absolute paths are returned unchanged. Relative paths are joined with the
// configured working directory so snapshot and journal locations follow the
// directory the cycle operates on.
//
// Parameters:
//   - path: the path from configuration
//
// Returns:
//   - string: the resolved path
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkingDir, path)
}
