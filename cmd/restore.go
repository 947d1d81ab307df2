package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/manifest"
)

var (
	restoreYesFlag       bool
	restoreNoTimeoutFlag bool
	restoreSkipPreflight bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore [manifest]",
	Short: "Restore the environment from a snapshot manifest",
	Long: `Reinstall the exact package versions recorded in a snapshot manifest.
Without an argument the most recent snapshot is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYesFlag, "yes", "y", false, "Skip confirmation prompt")
	restoreCmd.Flags().BoolVar(&restoreNoTimeoutFlag, "no-timeout", false, "Disable command timeouts")
	restoreCmd.Flags().BoolVar(&restoreSkipPreflight, "skip-preflight", false, "Skip pre-flight command validation")
}

// runRestore executes the restore command.
//
// It performs the following operations:
//   - Resolves the manifest argument, falling back to the newest snapshot
//   - Prompts for confirmation unless --yes is set
//   - Invokes the tool's restore command with the manifest
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional manifest path
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runRestore(cmd *cobra.Command, args []string) error {
	manager, sink, err := setupManager(restoreNoTimeoutFlag, restoreSkipPreflight)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	cfg := manager.Config()

	var path string
	if len(args) > 0 {
		path = cfg.ResolvePath(args[0])
	} else {
		path, err = manifest.Latest(cfg.ResolvePath(cfg.SnapshotDir))
		if err != nil {
			return err
		}
	}

	if !restoreYesFlag {
		fmt.Printf("Restore environment from %s? [y/N]: ", path)
		reader := stdinReaderFunc()
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nRestore cancelled (input not available).")
			return nil
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := manager.Restore(path); err != nil {
		return err
	}

	fmt.Printf("%s Environment restored from %s\n", constants.IconRollback, path)
	return nil
}
