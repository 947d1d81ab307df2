// Package cmd implements the command-line interface for envup.
// It provides commands for snapshotting the environment, checking outdated
// packages, running update cycles, and restoring from snapshot manifests.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/preflight"
	"github.com/ajxudir/envup/pkg/updater"
)

var exitFunc = os.Exit

// Persistent flags shared by every subcommand.
var (
	configFlag  string
	dirFlag     string
	verboseFlag bool
)

var versionFlag bool

var rootCmd = &cobra.Command{
	Use:   "envup",
	Short: "Package environment snapshot and update automation",
	Long:  `Snapshot, scan, upgrade, and restore a package environment through its own package manager CLI.`,
	// Errors are printed once, with hints, in Execute.
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: Partial failure (some upgrades failed)
//   - 2: Complete failure
//   - 3: Configuration or validation error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)

		// Check for partial success
		var partialErr *errors.PartialSuccessError
		if stderrors.As(err, &partialErr) {
			code = errors.ExitPartialFailure
		}

		errors.PrintErrorWithHints(os.Stderr, []error{err}, verboseFlag)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Working directory for tool commands")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Mirror debug audit entries to the console")

	// Add -v/--version as a LOCAL flag (not persistent) so it only works on root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Commands ordered logically: info → config → workflow (snapshot → outdated → update → restore → history)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
}

// newAuditSinkFunc allows tests to intercept audit sink construction.
var newAuditSinkFunc = newAuditSink

// newAuditSink builds the audit log configured for the loaded config.
//
// It performs the following operations:
//   - Resolves the audit file path against the working directory
//   - Applies the configured console level, lowered to debug with --verbose
//
// Parameters:
//   - cfg: The loaded configuration
//
// Returns:
//   - *audit.Log: The audit sink for this invocation
//   - error: When the audit file cannot be opened; returns nil on success
func newAuditSink(cfg *config.Config) (*audit.Log, error) {
	opts := audit.Options{ConsoleLevel: zapcore.InfoLevel}

	if cfg.Audit != nil {
		if cfg.Audit.File != "" {
			opts.FilePath = cfg.ResolvePath(cfg.Audit.File)
		}
		if level, ok := audit.ParseLevel(cfg.Audit.ConsoleLevel); ok {
			opts.ConsoleLevel = level
		}
	}

	if verboseFlag {
		opts.ConsoleLevel = zapcore.DebugLevel
	}

	sink, err := audit.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return sink, nil
}

// setupManager prepares an update manager for a workflow command.
//
// It performs the following operations:
//   - Loads and validates the configuration
//   - Runs preflight command resolution unless skipped
//   - Opens the audit sink
//
// Parameters:
//   - noTimeout: Whether command timeouts are disabled for this run
//   - skipPreflight: Whether preflight command validation is skipped
//
// Returns:
//   - *updater.Manager: The configured manager
//   - *audit.Log: The audit sink; the caller must Close it
//   - error: Configuration, preflight, or audit setup error
func setupManager(noTimeout, skipPreflight bool) (*updater.Manager, *audit.Log, error) {
	cfg, err := setupConfig(noTimeout)
	if err != nil {
		return nil, nil, err
	}

	if !skipPreflight {
		validation := preflight.Check(cfg)
		if validation.HasErrors() {
			return nil, nil, errors.NewExitError(errors.ExitConfigError,
				fmt.Errorf("%s\n  %s --skip-preflight bypasses validation if commands are available through other means",
					validation.ErrorMessage(), constants.IconLightbulb))
		}
		for _, warning := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "%s  %s\n", constants.IconWarn, warning)
		}
	}

	sink, err := newAuditSinkFunc(cfg)
	if err != nil {
		return nil, nil, err
	}

	return updater.New(cfg, sink), sink, nil
}
