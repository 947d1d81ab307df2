package config

import (
	"time"

	"github.com/ajxudir/envup/pkg/utils"
)

// DefaultMaxConfigFileSize is the default maximum config file size (10MB).
const DefaultMaxConfigFileSize = 10 * 1024 * 1024

// Placeholders usable in command templates.
const (
	// PlaceholderPackage is replaced with the package name in upgrade commands.
	PlaceholderPackage = "{{package}}"

	// PlaceholderVersion is replaced with the target version in upgrade commands.
	PlaceholderVersion = "{{version}}"

	// PlaceholderManifest is replaced with the manifest path in restore commands.
	PlaceholderManifest = "{{manifest}}"
)

// Config is the root configuration structure.
type Config struct {
	// Tool is the display name of the wrapped package manager binary.
	// Preflight resolves this command before any cycle runs.
	Tool string `yaml:"tool,omitempty"`

	// WorkingDir is the directory commands run in and relative paths resolve against.
	WorkingDir string `yaml:"working_dir,omitempty"`

	// TimeoutSeconds bounds each tool invocation. Zero means the default applies.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// AutoRollback restores the cycle snapshot when any upgrade fails.
	// Nil means enabled (the default).
	AutoRollback *bool `yaml:"auto_rollback,omitempty"`

	// SnapshotDir is where cycle manifests are written.
	SnapshotDir string `yaml:"snapshot_dir,omitempty"`

	// JournalFile is the cycle journal path.
	JournalFile string `yaml:"journal_file,omitempty"`

	// KeepSnapshots is how many uncompressed manifests prune retains.
	KeepSnapshots int `yaml:"keep_snapshots,omitempty"`

	// Audit configures the audit log.
	Audit *AuditCfg `yaml:"audit,omitempty"`

	// Commands holds the tool command templates.
	Commands CommandsCfg `yaml:"commands"`

	// Report configures the outdated report's JSON key names.
	Report *ReportCfg `yaml:"report,omitempty"`

	// Hold lists packages never upgraded automatically.
	Hold []string `yaml:"hold,omitempty"`

	// NoTimeout is a runtime flag that disables command timeouts when set to true.
	// It is not persisted to YAML and is set by CLI flags (--no-timeout).
	NoTimeout bool `yaml:"-"`
}

// CommandsCfg holds the command templates for the wrapped tool.
//
// Each template runs through the user's shell. The upgrade template supports
// the {{package}} and {{version}} placeholders; the restore template supports
// {{manifest}}.
type CommandsCfg struct {
	// ListInstalled prints installed packages in manifest format (name==version per line).
	ListInstalled string `yaml:"list_installed,omitempty"`

	// ListOutdated prints the outdated report as JSON.
	ListOutdated string `yaml:"list_outdated,omitempty"`

	// Upgrade upgrades one package to one version.
	Upgrade string `yaml:"upgrade,omitempty"`

	// Restore reinstalls exact versions from a manifest file.
	Restore string `yaml:"restore,omitempty"`
}

// AuditCfg holds audit log configuration.
type AuditCfg struct {
	// File is the append-only audit log path. Empty disables file logging.
	File string `yaml:"file,omitempty"`

	// ConsoleLevel is the minimum level mirrored to the console
	// ("debug", "info", "warn", "error").
	ConsoleLevel string `yaml:"console_level,omitempty"`
}

// ReportCfg maps the outdated report's JSON keys for tools whose field
// names differ from pip's.
type ReportCfg struct {
	// NameKey is the JSON key holding the package name.
	NameKey string `yaml:"name_key,omitempty"`

	// CurrentKey is the JSON key holding the installed version.
	CurrentKey string `yaml:"current_key,omitempty"`

	// LatestKey is the JSON key holding the latest available version.
	LatestKey string `yaml:"latest_key,omitempty"`
}

// AutoRollbackEnabled reports whether a failed upgrade phase triggers a restore.
//
// Rollback is enabled unless the config explicitly disables it.
//
// Returns:
//   - bool: true if auto-rollback is enabled
func (c *Config) AutoRollbackEnabled() bool {
	if c.AutoRollback == nil {
		return true
	}
	return *c.AutoRollback
}

// CommandTimeout returns the per-invocation timeout.
//
// Returns zero when timeouts are disabled via the NoTimeout runtime flag.
//
// Returns:
//   - time.Duration: the timeout for one tool invocation, 0 for unlimited
func (c *Config) CommandTimeout() time.Duration {
	if c.NoTimeout {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IsHeld reports whether a package is excluded from upgrades by configuration.
//
// Matching folds case because the wrapped tools compare package names
// case-insensitively.
//
// Parameters:
//   - name: The package name to check
//
// Returns:
//   - bool: true if the package appears in the hold list
func (c *Config) IsHeld(name string) bool {
	return utils.ContainsIgnoreCase(c.Hold, name)
}

// ReportKeys returns the effective JSON key names for the outdated report.
//
// Missing keys fall back to pip's field names.
//
// Returns:
//   - name: JSON key for the package name
//   - current: JSON key for the installed version
//   - latest: JSON key for the latest available version
func (c *Config) ReportKeys() (name, current, latest string) {
	name, current, latest = "name", "version", "latest_version"
	if c.Report == nil {
		return name, current, latest
	}
	if c.Report.NameKey != "" {
		name = c.Report.NameKey
	}
	if c.Report.CurrentKey != "" {
		current = c.Report.CurrentKey
	}
	if c.Report.LatestKey != "" {
		latest = c.Report.LatestKey
	}
	return name, current, latest
}
