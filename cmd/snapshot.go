package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/manifest"
	"github.com/ajxudir/envup/pkg/output"
)

var (
	snapshotNoTimeoutFlag bool
	snapshotSkipPreflight bool
	snapshotOutputFlag    string
)

// writeSnapshotReportFunc allows mocking structured output in tests
var writeSnapshotReportFunc = output.WriteSnapshotReport

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture the installed package set",
	Long:  `Write a timestamped, restorable manifest of every installed package and its exact version.`,
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotNoTimeoutFlag, "no-timeout", false, "Disable command timeouts")
	snapshotCmd.Flags().BoolVar(&snapshotSkipPreflight, "skip-preflight", false, "Skip pre-flight command validation")
	snapshotCmd.Flags().StringVarP(&snapshotOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// runSnapshot executes the snapshot command.
//
// Invokes the tool's list-installed command, parses the result into a
// manifest, and writes it to the snapshot directory.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runSnapshot(cmd *cobra.Command, args []string) error {
	manager, sink, err := setupManager(snapshotNoTimeoutFlag, snapshotSkipPreflight)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	mani, path, err := manager.Snapshot()
	if err != nil {
		return err
	}

	outputFormat := output.ParseFormat(snapshotOutputFlag)
	if output.IsStructuredFormat(outputFormat) {
		report := &output.SnapshotReport{
			Path:      path,
			Packages:  mani.Len(),
			CreatedAt: snapshotCreatedAt(path),
		}
		return writeSnapshotReportFunc(os.Stdout, outputFormat, report)
	}

	fmt.Printf("%s Snapshot written: %s (%d packages)\n", constants.IconSuccess, path, mani.Len())
	return nil
}

// snapshotCreatedAt derives the creation time from the snapshot file name.
func snapshotCreatedAt(path string) string {
	ts, err := manifest.SnapshotTime(filepath.Base(path))
	if err != nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}
