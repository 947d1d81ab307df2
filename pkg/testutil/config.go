package testutil

import (
	"github.com/ajxudir/envup/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// Use this builder to construct Config objects for testing purposes
// without needing to set all required fields manually.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfig creates a new ConfigBuilder with default values.
//
// Initializes a builder with working directory set to "." and pip's
// command templates ready for configuration.
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Tool:       "pip",
			WorkingDir: ".",
			Commands:   PipCommands(),
		},
	}
}

// WithTool sets the wrapped package manager binary name.
//
// Parameters:
//   - tool: Binary name (e.g., "pip", "npm")
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithTool(tool string) *ConfigBuilder {
	b.cfg.Tool = tool
	return b
}

// WithWorkingDir sets the working directory for the configuration.
//
// Parameters:
//   - dir: Path to the working directory
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithWorkingDir(dir string) *ConfigBuilder {
	b.cfg.WorkingDir = dir
	return b
}

// WithCommands sets the tool command templates.
//
// Parameters:
//   - commands: The command templates to run
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithCommands(commands config.CommandsCfg) *ConfigBuilder {
	b.cfg.Commands = commands
	return b
}

// WithTimeout sets the per-invocation timeout in seconds.
//
// Parameters:
//   - seconds: Timeout in seconds, 0 for the default
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithTimeout(seconds int) *ConfigBuilder {
	b.cfg.TimeoutSeconds = seconds
	return b
}

// WithAutoRollback sets the auto-rollback flag explicitly.
//
// Parameters:
//   - enabled: Whether a failed upgrade phase restores the cycle snapshot
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithAutoRollback(enabled bool) *ConfigBuilder {
	b.cfg.AutoRollback = &enabled
	return b
}

// WithSnapshotDir sets the snapshot directory.
//
// Parameters:
//   - dir: Directory cycle manifests are written to
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithSnapshotDir(dir string) *ConfigBuilder {
	b.cfg.SnapshotDir = dir
	return b
}

// WithJournalFile sets the cycle journal path.
//
// Parameters:
//   - path: Journal file path
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithJournalFile(path string) *ConfigBuilder {
	b.cfg.JournalFile = path
	return b
}

// WithKeepSnapshots sets how many uncompressed snapshots prune retains.
//
// Parameters:
//   - keep: Number of snapshots to keep uncompressed
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithKeepSnapshots(keep int) *ConfigBuilder {
	b.cfg.KeepSnapshots = keep
	return b
}

// WithHold adds packages to the hold list.
//
// Parameters:
//   - names: Package names never upgraded automatically
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithHold(names ...string) *ConfigBuilder {
	b.cfg.Hold = append(b.cfg.Hold, names...)
	return b
}

// WithReportKeys overrides the outdated report's JSON key names.
//
// Parameters:
//   - name: JSON key for the package name
//   - current: JSON key for the installed version
//   - latest: JSON key for the latest available version
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithReportKeys(name, current, latest string) *ConfigBuilder {
	b.cfg.Report = &config.ReportCfg{
		NameKey:    name,
		CurrentKey: current,
		LatestKey:  latest,
	}
	return b
}

// Build returns the built configuration.
//
// Returns a pointer to the constructed Config. The builder can be
// reused after calling Build.
//
// Returns:
//   - *config.Config: Pointer to the built configuration
func (b *ConfigBuilder) Build() *config.Config {
	return &b.cfg
}

// PipCommands creates pip's standard command templates.
//
// Returns the templates envup ships as defaults: freeze for snapshots,
// the JSON outdated report, exact-version installs, and requirements
// restore.
//
// Returns:
//   - config.CommandsCfg: pip command templates
func PipCommands() config.CommandsCfg {
	return config.CommandsCfg{
		ListInstalled: "pip freeze",
		ListOutdated:  "pip list --outdated --format=json",
		Upgrade:       "pip install {{package}}=={{version}}",
		Restore:       "pip install --force-reinstall -r {{manifest}}",
	}
}

// NpmCommands creates npm's command templates.
//
// npm's outdated report keys differ from pip's, so configurations using
// these templates also need NpmReportKeys.
//
// Returns:
//   - config.CommandsCfg: npm command templates
func NpmCommands() config.CommandsCfg {
	return config.CommandsCfg{
		ListInstalled: "npm ls --depth=0 --parseable | tail -n +2",
		ListOutdated:  "npm outdated --json",
		Upgrade:       "npm install {{package}}@{{version}}",
		Restore:       "npm ci",
	}
}

// NpmReportKeys creates the report key mapping for npm's outdated JSON.
//
// Returns:
//   - *config.ReportCfg: Key names matching `npm outdated --json`
func NpmReportKeys() *config.ReportCfg {
	return &config.ReportCfg{
		NameKey:    "name",
		CurrentKey: "current",
		LatestKey:  "latest",
	}
}
