package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// This unmarshals the embedded default.yml file into a Config structure.
// If unmarshaling fails, returns an empty config.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{}
}

// GetDefaultConfig returns the embedded default configuration YAML.
//
// This returns the raw YAML string from the embedded default.yml file.
// Useful for displaying or saving the default configuration.
//
// Returns:
//   - string: the default configuration as YAML
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the embedded template configuration YAML.
//
// This returns the raw YAML string from the embedded template.yml file.
// Useful for generating starter configuration files for users.
//
// Returns:
//   - string: the template configuration as YAML
func GetTemplateConfig() string {
	return templateConfigYAML
}

// applyDefaults fills unset fields of cfg from the built-in defaults.
//
// User-provided values always win; only zero values are filled in. The hold
// list is never defaulted since the built-in config holds nothing.
//
// Parameters:
//   - cfg: the configuration to complete in place
func applyDefaults(cfg *Config) {
	defaults := loadDefaultConfig()

	if cfg.Tool == "" {
		cfg.Tool = defaults.Tool
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if cfg.AutoRollback == nil {
		cfg.AutoRollback = defaults.AutoRollback
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = defaults.SnapshotDir
	}
	if cfg.JournalFile == "" {
		cfg.JournalFile = defaults.JournalFile
	}
	if cfg.KeepSnapshots == 0 {
		cfg.KeepSnapshots = defaults.KeepSnapshots
	}

	if cfg.Audit == nil {
		cfg.Audit = defaults.Audit
	} else if defaults.Audit != nil {
		if cfg.Audit.File == "" {
			cfg.Audit.File = defaults.Audit.File
		}
		if cfg.Audit.ConsoleLevel == "" {
			cfg.Audit.ConsoleLevel = defaults.Audit.ConsoleLevel
		}
	}

	if cfg.Commands.ListInstalled == "" {
		cfg.Commands.ListInstalled = defaults.Commands.ListInstalled
	}
	if cfg.Commands.ListOutdated == "" {
		cfg.Commands.ListOutdated = defaults.Commands.ListOutdated
	}
	if cfg.Commands.Upgrade == "" {
		cfg.Commands.Upgrade = defaults.Commands.Upgrade
	}
	if cfg.Commands.Restore == "" {
		cfg.Commands.Restore = defaults.Commands.Restore
	}

	if cfg.Report == nil {
		cfg.Report = defaults.Report
	}
}
