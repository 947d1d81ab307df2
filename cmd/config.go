package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/errors"
)

var (
	configShowDefaultsFlag bool
	configInitFlag         bool
	configValidateFlag     bool
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	readFileFunc   = os.ReadFile
)

// loadAndValidateConfig loads the configuration and validates it for unknown fields.
//
// This provides preflight validation to catch configuration errors early,
// ensuring users are notified of typos or deprecated options before any
// tool command runs.
//
// Parameters:
//   - configPath: Path to custom config file, or empty for default location
//   - workDir: Working directory to search for default config
//
// Returns:
//   - *config.Config: Loaded and validated configuration
//   - error: Validation or load error with details
func loadAndValidateConfig(configPath, workDir string) (*config.Config, error) {
	candidate := configPath
	if candidate == "" {
		candidate = filepath.Join(workDir, config.LocalConfigName)
	}

	if data, err := readFileFunc(candidate); err == nil {
		result := config.ValidateConfigFile(data)
		if result.HasErrors() {
			var errBuilder strings.Builder
			errBuilder.WriteString(fmt.Sprintf("configuration validation failed for %s:\n", candidate))
			for _, e := range result.Errors {
				errBuilder.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
			}
			errBuilder.WriteString("\n" + constants.IconLightbulb + " Run 'envup config --validate' for details")
			return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s", errBuilder.String()))
		}
	} else if configPath != "" {
		return nil, errors.NewExitError(errors.ExitConfigError,
			fmt.Errorf("failed to read config file '%s': %w", configPath, err))
	}

	cfg, err := loadConfigFunc(configPath, workDir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	return cfg, nil
}

// resolveWorkingDir determines the working directory to use.
//
// Priority order:
//  1. Flag value (if specified)
//  2. Config WorkingDir (if specified)
//  3. Current directory (".")
//
// Parameters:
//   - flagValue: Value from --dir flag
//   - cfg: Loaded configuration (may be nil)
//
// Returns:
//   - string: Resolved working directory path
func resolveWorkingDir(flagValue string, cfg *config.Config) string {
	if flagValue != "" && flagValue != "." {
		return flagValue
	}

	if cfg != nil && cfg.WorkingDir != "" {
		return cfg.WorkingDir
	}

	return "."
}

// setupConfig loads, validates, and finalizes the configuration for a command run.
//
// It performs the following operations:
//   - Loads the config from --config or the working directory
//   - Resolves the effective working directory from flag and config
//   - Applies the --no-timeout runtime flag
//
// Parameters:
//   - noTimeout: Whether command timeouts are disabled for this run
//
// Returns:
//   - *config.Config: The finalized configuration
//   - error: Load or validation error
func setupConfig(noTimeout bool) (*config.Config, error) {
	workDir := dirFlag
	if workDir == "" {
		workDir = "."
	}

	cfg, err := loadAndValidateConfig(configFlag, workDir)
	if err != nil {
		return nil, err
	}

	cfg.WorkingDir = resolveWorkingDir(dirFlag, cfg)
	cfg.NoTimeout = noTimeout
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Show the effective configuration, validate a config file, or create a starter template.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .envup.yml template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .envup.yml template file
//   - --validate: Validates the configuration file for schema errors
//   - --show-defaults: Displays the default configuration
//   - no flags: Displays the effective merged configuration
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	if configValidateFlag {
		return validateConfigFile()
	}

	if configShowDefaultsFlag {
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(config.GetDefaultConfig())
		return nil
	}

	cfg, err := setupConfig(false)
	if err != nil {
		return err
	}

	printEffectiveConfig(cfg)
	return nil
}

// printEffectiveConfig prints the merged configuration to stdout.
func printEffectiveConfig(cfg *config.Config) {
	fmt.Println("Effective configuration:")
	fmt.Println()
	fmt.Printf("Tool:              %s\n", cfg.Tool)
	fmt.Printf("Working Directory: %s\n", cfg.WorkingDir)
	fmt.Printf("Timeout:           %ds\n", cfg.TimeoutSeconds)
	fmt.Printf("Auto Rollback:     %v\n", cfg.AutoRollbackEnabled())
	fmt.Printf("Snapshot Dir:      %s\n", cfg.SnapshotDir)
	fmt.Printf("Journal File:      %s\n", cfg.JournalFile)
	fmt.Printf("Keep Snapshots:    %d\n", cfg.KeepSnapshots)
	fmt.Println()

	fmt.Println("Commands:")
	fmt.Printf("  List Installed: %s\n", cfg.Commands.ListInstalled)
	fmt.Printf("  List Outdated:  %s\n", cfg.Commands.ListOutdated)
	fmt.Printf("  Upgrade:        %s\n", cfg.Commands.Upgrade)
	fmt.Printf("  Restore:        %s\n", cfg.Commands.Restore)

	if len(cfg.Hold) > 0 {
		fmt.Println()
		fmt.Printf("Hold: %s\n", strings.Join(cfg.Hold, ", "))
	}

	if cfg.Audit != nil && cfg.Audit.File != "" {
		fmt.Println()
		fmt.Printf("Audit Log: %s\n", cfg.Audit.File)
	}
}

// validateConfigFile validates the configuration file at the specified path.
//
// If no path is specified via --config flag, validates .envup.yml in the
// current working directory. Reports validation errors and warnings.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on validation failure
func validateConfigFile() error {
	configPath := configFlag
	if configPath == "" {
		workDir := dirFlag
		if workDir == "" {
			workDir, _ = os.Getwd()
		}
		configPath = filepath.Join(workDir, config.LocalConfigName)
	}

	data, err := readFileFunc(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	result := config.ValidateConfigFile(data)

	if result.HasErrors() {
		fmt.Printf("%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)

		// Use verbose errors when --verbose flag is set
		if verboseFlag {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.VerboseError())
			}
		} else {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.Error())
			}
		}

		if len(result.Warnings) > 0 {
			fmt.Println()
			for _, w := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
		}
		fmt.Println()
		if !verboseFlag {
			fmt.Printf("%s Run with --verbose for detailed schema information\n", constants.IconLightbulb)
		}
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("%s Configuration valid with warnings: %s\n\n", constants.IconWarn, configPath)
		for _, w := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", w)
		}
		fmt.Println()
	} else {
		fmt.Printf("%s Configuration valid: %s\n", constants.IconCheckmark, configPath)
	}

	return nil
}

// createConfigTemplate creates a new .envup.yml template file.
//
// The template is created in the current directory. Fails if a config
// file already exists at that location.
//
// Returns:
//   - error: Returns error if file exists or cannot be created
func createConfigTemplate() error {
	configPath := config.LocalConfigName
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	template := config.GetTemplateConfig()

	// 0600: config may carry private index URLs or tokens in commands.
	if err := writeFileFunc(configPath, []byte(template), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created configuration template: %s\n", configPath)
	return nil
}
