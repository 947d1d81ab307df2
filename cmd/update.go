package cmd

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/output"
	"github.com/ajxudir/envup/pkg/scan"
	"github.com/ajxudir/envup/pkg/updater"
)

var (
	updateDryRunFlag     bool
	updateNoRollbackFlag bool
	updateYesFlag        bool
	updateNoTimeoutFlag  bool
	updateSkipPreflight  bool
	updateOutputFlag     string
)

// Testable function variables
var stdinReaderFunc = func() *bufio.Reader { return bufio.NewReader(os.Stdin) }
var writeCycleReportFunc = output.WriteCycleReport

var updateCmd = &cobra.Command{
	Use:   "update [package...]",
	Short: "Run a full update cycle",
	Long: `Snapshot the environment, scan for outdated packages, upgrade each one,
and restore the snapshot if any upgrade fails. Positional arguments restrict
the cycle to the named packages.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateDryRunFlag, "dry-run", false, "Plan the cycle without invoking any upgrade")
	updateCmd.Flags().BoolVar(&updateNoRollbackFlag, "no-rollback", false, "Leave the environment as-is when upgrades fail")
	updateCmd.Flags().BoolVarP(&updateYesFlag, "yes", "y", false, "Skip confirmation prompt")
	updateCmd.Flags().BoolVar(&updateNoTimeoutFlag, "no-timeout", false, "Disable command timeouts")
	updateCmd.Flags().BoolVar(&updateSkipPreflight, "skip-preflight", false, "Skip pre-flight command validation")
	updateCmd.Flags().StringVarP(&updateOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// runUpdate executes the update command: one full cycle.
//
// It performs the following operations:
//   - Plans without mutating when --dry-run is set
//   - Prompts for confirmation in interactive table mode
//   - Runs the snapshot, scan, upgrade, and rollback phases
//   - Renders the per-package outcomes and maps failures to exit codes
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional package names restricting the upgrade set
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runUpdate(cmd *cobra.Command, args []string) error {
	outputFormat := output.ParseFormat(updateOutputFlag)
	structured := output.IsStructuredFormat(outputFormat)

	// A confirmation prompt would corrupt a structured output stream.
	if structured && !updateYesFlag && !updateDryRunFlag {
		return errors.NewExitError(errors.ExitConfigError,
			fmt.Errorf("structured output requires --yes or --dry-run"))
	}

	manager, sink, err := setupManager(updateNoTimeoutFlag, updateSkipPreflight)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	cfg := manager.Config()
	if updateNoRollbackFlag {
		disabled := false
		cfg.AutoRollback = &disabled
	}

	if updateDryRunFlag {
		return runUpdatePlan(manager, args, outputFormat)
	}

	if !structured && !updateYesFlag {
		proceed, err := confirmUpdatePlan(manager, args)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	var progress *output.Progress
	if !structured {
		manager.SetProgress(func(done, total int, name string) {
			if progress == nil {
				progress = output.NewProgress(os.Stderr, total, "Upgrading packages")
			}
			progress.SetCurrent(done)
		})
	}

	result, err := manager.UpdateAll(args)
	if progress != nil {
		progress.Done()
	}
	if err != nil && result == nil {
		return err
	}

	if structured {
		if writeErr := writeCycleReportFunc(os.Stdout, outputFormat, buildCycleReport(result, false)); writeErr != nil {
			return writeErr
		}
	} else {
		printCycleResult(result)
	}

	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("rollback failed: %w", err))
	}

	return cycleExitError(result)
}

// runUpdatePlan scans and renders the upgrade plan without mutating anything.
func runUpdatePlan(manager *updater.Manager, targets []string, outputFormat output.Format) error {
	entries, err := manager.Scan()
	if err != nil {
		return err
	}

	cfg := manager.Config()
	candidates, skipped := scan.Filter(entries, targets, cfg.IsHeld)

	result := &updater.CycleResult{
		Success:    true,
		Candidates: candidates,
		Skipped:    skipped,
	}

	if output.IsStructuredFormat(outputFormat) {
		return writeCycleReportFunc(os.Stdout, outputFormat, buildCycleReport(result, true))
	}

	if len(candidates) == 0 && len(skipped) == 0 {
		fmt.Printf("%s All packages are up to date\n", constants.IconSuccess)
		return nil
	}

	printCycleTable(cycleRows(result, true))
	fmt.Printf("\nPlanned upgrades: %d\n", len(candidates))
	return nil
}

// confirmUpdatePlan shows the upgrade plan and prompts for confirmation.
//
// Returns:
//   - bool: True if the cycle should proceed
//   - error: Scan failure while building the plan
func confirmUpdatePlan(manager *updater.Manager, targets []string) (bool, error) {
	entries, err := manager.Scan()
	if err != nil {
		return false, err
	}

	cfg := manager.Config()
	candidates, skipped := scan.Filter(entries, targets, cfg.IsHeld)
	if len(candidates) == 0 {
		if len(skipped) > 0 {
			printCycleTable(cycleRows(&updater.CycleResult{Skipped: skipped}, true))
			fmt.Println()
		}
		fmt.Printf("%s Nothing to upgrade\n", constants.IconSuccess)
		return false, nil
	}

	printCycleTable(cycleRows(&updater.CycleResult{Candidates: candidates, Skipped: skipped}, true))

	fmt.Printf("\n%d package(s) will be upgraded. Continue? [y/N]: ", len(candidates))
	reader := stdinReaderFunc()
	response, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("\nUpdate cancelled (input not available).")
		return false, nil
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Update cancelled.")
		return false, nil
	}
	return true, nil
}

// cycleRows converts a cycle result to display rows.
//
// Parameters:
//   - result: The cycle outcome
//   - plan: True when candidates are planned rather than attempted
//
// Returns:
//   - []output.CyclePackage: Rows for table or structured output
func cycleRows(result *updater.CycleResult, plan bool) []output.CyclePackage {
	rows := make([]output.CyclePackage, 0,
		len(result.Candidates)+len(result.Skipped))

	if plan {
		for _, entry := range result.Candidates {
			rows = append(rows, output.CyclePackage{
				Name:    entry.Name,
				Current: entry.Current,
				Target:  entry.Latest,
				Status:  constants.StatusPlanned,
			})
		}
	} else {
		for _, name := range result.Upgraded {
			row := output.CyclePackage{Name: name, Status: constants.StatusUpgraded}
			if entry, ok := result.Candidate(name); ok {
				row.Current = entry.Current
				row.Target = entry.Latest
			}
			rows = append(rows, row)
		}
		for _, failure := range result.Failed {
			row := output.CyclePackage{
				Name:   failure.Name,
				Status: constants.StatusFailed,
				Error:  failure.Reason,
			}
			if entry, ok := result.Candidate(failure.Name); ok {
				row.Current = entry.Current
				row.Target = entry.Latest
			}
			rows = append(rows, row)
		}
	}

	for _, skip := range result.Skipped {
		status := constants.StatusSkipped
		if skip.Reason == scan.ReasonHeld {
			status = constants.StatusHeld
		}
		rows = append(rows, output.CyclePackage{
			Name:    skip.Name,
			Current: constants.PlaceholderNA,
			Target:  constants.PlaceholderNA,
			Status:  status,
			Error:   skip.Reason,
		})
	}

	return rows
}

// cycleStatusIcon prefixes a cycle row status with its display icon.
func cycleStatusIcon(status string) string {
	switch status {
	case constants.StatusUpgraded:
		return constants.IconSuccess + " " + status
	case constants.StatusFailed:
		return constants.IconError + " " + status
	case constants.StatusPlanned:
		return constants.IconPending + " " + status
	case constants.StatusHeld:
		return constants.IconIgnored + " " + status
	default:
		return constants.IconInfo + " " + status
	}
}

// printCycleTable renders cycle rows as a table.
func printCycleTable(rows []output.CyclePackage) {
	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("CURRENT").
		AddColumn("TARGET").
		AddColumn("STATUS")

	for _, row := range rows {
		table.UpdateWidths(row.Name, row.Current, row.Target, cycleStatusIcon(row.Status))
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())

	for _, row := range rows {
		fmt.Println(table.FormatRow(row.Name, row.Current, row.Target, cycleStatusIcon(row.Status)))
	}
}

// printCycleResult renders the cycle outcome with a summary.
func printCycleResult(result *updater.CycleResult) {
	rows := cycleRows(result, false)

	if len(rows) == 0 {
		fmt.Printf("%s Nothing to upgrade\n", constants.IconSuccess)
		return
	}

	printCycleTable(rows)

	fmt.Printf("\nCycle %s\n", result.CycleID)
	fmt.Printf("  %s Upgraded: %d\n", constants.IconSuccess, len(result.Upgraded))
	if len(result.Failed) > 0 {
		fmt.Printf("  %s Failed:   %d\n", constants.IconError, len(result.Failed))
	}
	if len(result.Skipped) > 0 {
		fmt.Printf("  %s Skipped:  %d\n", constants.IconInfo, len(result.Skipped))
	}
	if result.RolledBack {
		fmt.Printf("  %s Rolled back to %s\n", constants.IconRollback, result.ManifestPath)
	} else if result.ManifestPath != "" {
		fmt.Printf("  Snapshot: %s\n", result.ManifestPath)
	}

	for _, failure := range result.Failed {
		fmt.Printf("\n%s %s: %s\n", constants.IconError, failure.Name, failure.Reason)
	}
}

// buildCycleReport converts a cycle result to the structured report form.
func buildCycleReport(result *updater.CycleResult, dryRun bool) *output.CycleReport {
	var errStrings []string
	for _, failure := range result.Failed {
		errStrings = append(errStrings, fmt.Sprintf("%s: %s", failure.Name, failure.Reason))
	}

	return &output.CycleReport{
		Summary: output.CycleSummary{
			CycleID:      result.CycleID,
			Success:      result.Success,
			Total:        len(result.Candidates),
			Upgraded:     len(result.Upgraded),
			Failed:       len(result.Failed),
			Skipped:      len(result.Skipped),
			RolledBack:   result.RolledBack,
			DryRun:       dryRun,
			ManifestPath: result.ManifestPath,
		},
		Packages: cycleRows(result, dryRun),
		Errors:   errStrings,
	}
}

// cycleExitError maps a finished cycle to its exit code.
//
// A rolled-back cycle exits with ExitFailure even when some upgrades
// succeeded: the rollback reverted them.
//
// Returns:
//   - error: nil on success, ExitError with ExitPartialFailure when some
//     upgrades stuck, ExitFailure otherwise
func cycleExitError(result *updater.CycleResult) error {
	if result.Success {
		return nil
	}

	errs := make([]error, 0, len(result.Failed))
	for _, failure := range result.Failed {
		errs = append(errs, fmt.Errorf("%s: %s", failure.Name, failure.Reason))
	}

	if len(result.Upgraded) > 0 && !result.RolledBack {
		return errors.NewExitError(errors.ExitPartialFailure,
			errors.NewPartialSuccessError(len(result.Upgraded), len(result.Failed), errs))
	}

	return errors.NewExitError(errors.ExitFailure, stderrors.Join(errs...))
}
