package config

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/errors"
)

// Schema information for validation errors
var configSchema = map[string]schemaInfo{
	"Config": {
		fields: "tool, working_dir, timeout_seconds, auto_rollback, snapshot_dir, journal_file, keep_snapshots, audit, commands, report, hold",
	},
	"CommandsCfg": {
		fields: "list_installed, list_outdated, upgrade, restore",
	},
	"AuditCfg": {
		fields: "file, console_level",
	},
	"ReportCfg": {
		fields: "name_key, current_key, latest_key",
	},
}

type schemaInfo struct {
	fields string
}

// ValidateConfigFile validates a YAML configuration file for syntax errors and unknown fields.
//
// This performs strict validation using KnownFields(true) to detect typos and
// unknown configuration options. It also validates required fields and constraints.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func ValidateConfigFile(data []byte) *errors.ValidationResult {
	result := errors.NewValidationResult()

	// First, check for unknown fields using strict YAML parsing
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "field") && strings.Contains(errMsg, "not found") {
			// Extract field name and type from error like "field foo not found in type config.Config"
			fieldName, typeName := extractFieldAndType(errMsg)
			lineNum := extractLineNumber(errMsg)

			verr := &errors.ValidationError{
				Category: errors.ValidationCategoryConfig,
				Message:  fmt.Sprintf("unknown field '%s'", fieldName),
			}
			if lineNum > 0 {
				verr.Message = fmt.Sprintf("unknown field '%s' (line %d)", fieldName, lineNum)
			}

			// Add schema hints
			if schema, ok := configSchema[typeName]; ok {
				verr.ValidKeys = strings.Split(schema.fields, ", ")
			} else if typeName != "" {
				verr.Expected = fmt.Sprintf("valid field for %s", typeName)
			}

			result.AddError(verr)
		} else if strings.Contains(errMsg, "cannot unmarshal") {
			// Type mismatch errors
			result.AddError(&errors.ValidationError{
				Category: errors.ValidationCategoryConfig,
				Message:  errMsg,
			})
		} else {
			result.AddError(&errors.ValidationError{
				Category: errors.ValidationCategoryConfig,
				Message:  fmt.Sprintf("YAML syntax error: %s", errMsg),
			})
		}
		return result
	}

	// Validate the effective shape: unset fields inherit the built-in
	// defaults at load time, so only what the file overrides can fail.
	applyDefaults(&cfg)
	validateConfigStruct(&cfg, result)
	return result
}

// Validate validates a loaded Config struct.
//
// This validates the configuration structure for required fields,
// valid values, and logical consistency.
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *errors.ValidationResult {
	result := errors.NewValidationResult()
	validateConfigStruct(c, result)
	return result
}

// validateConfigStruct validates the Config structure.
//
// This checks command templates, placeholder usage, numeric bounds,
// and audit settings for validity and consistency.
//
// Parameters:
//   - cfg: the configuration to validate
//   - result: validation result to append errors and warnings to
func validateConfigStruct(cfg *Config, result *errors.ValidationResult) {
	validateCommands(&cfg.Commands, result)

	if cfg.TimeoutSeconds < 0 {
		result.AddError(&errors.ValidationError{
			Category: errors.ValidationCategoryConfig,
			Field:    "timeout_seconds",
			Message:  fmt.Sprintf("must not be negative, got %d", cfg.TimeoutSeconds),
			Expected: "a non-negative number of seconds (0 uses the default)",
		})
	}

	if cfg.KeepSnapshots < 0 {
		result.AddError(&errors.ValidationError{
			Category: errors.ValidationCategoryConfig,
			Field:    "keep_snapshots",
			Message:  fmt.Sprintf("must not be negative, got %d", cfg.KeepSnapshots),
			Expected: "a non-negative snapshot count",
		})
	}

	if cfg.Audit != nil && cfg.Audit.ConsoleLevel != "" {
		if _, ok := audit.ParseLevel(cfg.Audit.ConsoleLevel); !ok {
			result.AddError(&errors.ValidationError{
				Category:  errors.ValidationCategoryConfig,
				Field:     "audit.console_level",
				Message:   fmt.Sprintf("invalid level '%s'", cfg.Audit.ConsoleLevel),
				ValidKeys: []string{"debug", "info", "warn", "error"},
			})
		}
	}

	for i, pkg := range cfg.Hold {
		if strings.TrimSpace(pkg) == "" {
			result.AddError(&errors.ValidationError{
				Category: errors.ValidationCategoryConfig,
				Field:    fmt.Sprintf("hold[%d]", i),
				Message:  "held package name cannot be empty",
			})
		}
	}
}

// validateCommands validates the tool command templates.
//
// Each template must be non-empty, the upgrade template must carry the
// {{package}} placeholder so upgrades can target packages, and the restore
// template must carry {{manifest}} so rollback can name the snapshot file.
//
// Parameters:
//   - cmds: the command templates to validate
//   - result: validation result to append errors and warnings to
func validateCommands(cmds *CommandsCfg, result *errors.ValidationResult) {
	required := []struct {
		field string
		value string
	}{
		{"commands.list_installed", cmds.ListInstalled},
		{"commands.list_outdated", cmds.ListOutdated},
		{"commands.upgrade", cmds.Upgrade},
		{"commands.restore", cmds.Restore},
	}
	for _, cmd := range required {
		if strings.TrimSpace(cmd.value) == "" {
			result.AddError(&errors.ValidationError{
				Category: errors.ValidationCategoryConfig,
				Field:    cmd.field,
				Message:  "command template cannot be empty",
				Expected: "a shell command for the wrapped tool",
			})
		}
	}

	if cmds.Upgrade != "" && !strings.Contains(cmds.Upgrade, PlaceholderPackage) {
		result.AddError(&errors.ValidationError{
			Category: errors.ValidationCategoryConfig,
			Field:    "commands.upgrade",
			Message:  fmt.Sprintf("template must contain the %s placeholder", PlaceholderPackage),
			Expected: fmt.Sprintf("e.g. pip install %s==%s", PlaceholderPackage, PlaceholderVersion),
		})
	}

	if cmds.Upgrade != "" && strings.Contains(cmds.Upgrade, PlaceholderManifest) {
		result.AddWarning(fmt.Sprintf("commands.upgrade: %s is not substituted in upgrade commands", PlaceholderManifest))
	}

	if cmds.Restore != "" && !strings.Contains(cmds.Restore, PlaceholderManifest) {
		result.AddError(&errors.ValidationError{
			Category: errors.ValidationCategoryConfig,
			Field:    "commands.restore",
			Message:  fmt.Sprintf("template must contain the %s placeholder", PlaceholderManifest),
			Expected: fmt.Sprintf("e.g. pip install -r %s", PlaceholderManifest),
		})
	}
}

// fieldErrorRe matches yaml.v3 unknown field errors like
// "line 12: field foo not found in type config.Config".
var fieldErrorRe = regexp.MustCompile(`field (\S+) not found in type (?:\w+\.)?(\w+)`)

// lineNumberRe matches the line prefix of yaml.v3 errors.
var lineNumberRe = regexp.MustCompile(`line (\d+):`)

// extractFieldAndType extracts the field name and type name from a yaml.v3
// unknown field error message.
//
// Parameters:
//   - errMsg: the yaml decode error message
//
// Returns:
//   - string: the unknown field name, or empty if not found
//   - string: the struct type name without package prefix, or empty if not found
func extractFieldAndType(errMsg string) (string, string) {
	matches := fieldErrorRe.FindStringSubmatch(errMsg)
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

// extractLineNumber extracts the line number from a yaml.v3 error message.
//
// Parameters:
//   - errMsg: the yaml decode error message
//
// Returns:
//   - int: the line number, or 0 if not present
func extractLineNumber(errMsg string) int {
	matches := lineNumberRe.FindStringSubmatch(errMsg)
	if len(matches) == 2 {
		if n, err := strconv.Atoi(matches[1]); err == nil {
			return n
		}
	}
	return 0
}
