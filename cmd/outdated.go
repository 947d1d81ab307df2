package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/output"
	"github.com/ajxudir/envup/pkg/scan"
)

var (
	outdatedNoTimeoutFlag bool
	outdatedSkipPreflight bool
	outdatedOutputFlag    string
)

// writeOutdatedReportFunc allows mocking structured output in tests
var writeOutdatedReportFunc = output.WriteOutdatedReport

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "Find packages with available updates",
	Long:  `Run the tool's outdated report and classify each entry by update severity.`,
	RunE:  runOutdated,
}

func init() {
	outdatedCmd.Flags().BoolVar(&outdatedNoTimeoutFlag, "no-timeout", false, "Disable command timeouts")
	outdatedCmd.Flags().BoolVar(&outdatedSkipPreflight, "skip-preflight", false, "Skip pre-flight command validation")
	outdatedCmd.Flags().StringVarP(&outdatedOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// runOutdated executes the outdated command.
//
// Invokes the tool's outdated report, parses it, and renders each entry
// with its update severity. Held packages are shown but marked.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runOutdated(cmd *cobra.Command, args []string) error {
	manager, sink, err := setupManager(outdatedNoTimeoutFlag, outdatedSkipPreflight)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	entries, err := manager.Scan()
	if err != nil {
		return err
	}

	cfg := manager.Config()
	outputFormat := output.ParseFormat(outdatedOutputFlag)
	if output.IsStructuredFormat(outputFormat) {
		return writeOutdatedReportFunc(os.Stdout, outputFormat, buildOutdatedReport(entries, cfg.Tool, cfg.IsHeld))
	}

	if len(entries) == 0 {
		fmt.Printf("%s All packages are up to date\n", constants.IconSuccess)
		return nil
	}

	printOutdatedTable(entries, cfg.IsHeld)
	return nil
}

// outdatedStatus derives the display status for one outdated entry.
func outdatedStatus(entry scan.Entry, isHeld func(string) bool) string {
	if isHeld != nil && isHeld(entry.Name) {
		return constants.StatusHeld
	}
	return constants.StatusOutdated
}

// outdatedStatusIcon prefixes a status with its display icon.
func outdatedStatusIcon(status string) string {
	switch status {
	case constants.StatusHeld:
		return constants.IconIgnored + " " + status
	default:
		return constants.IconWarning + " " + status
	}
}

// printOutdatedTable renders the outdated entries as a table with a
// severity summary.
//
// Parameters:
//   - entries: The outdated entries to display
//   - isHeld: Reports whether a package is excluded by configuration
func printOutdatedTable(entries []scan.Entry, isHeld func(string) bool) {
	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("CURRENT").
		AddColumn("LATEST").
		AddColumn("SEVERITY").
		AddColumn("STATUS")

	for _, entry := range entries {
		table.UpdateWidths(entry.Name, entry.Current, entry.Latest, entry.Severity,
			outdatedStatusIcon(outdatedStatus(entry, isHeld)))
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())

	for _, entry := range entries {
		fmt.Println(table.FormatRow(entry.Name, entry.Current, entry.Latest, entry.Severity,
			outdatedStatusIcon(outdatedStatus(entry, isHeld))))
	}

	summary := summarizeOutdated(entries, isHeld)
	fmt.Printf("\nTotal outdated: %d\n", summary.TotalOutdated)
	if summary.Major > 0 {
		fmt.Printf("  major:   %d\n", summary.Major)
	}
	if summary.Minor > 0 {
		fmt.Printf("  minor:   %d\n", summary.Minor)
	}
	if summary.Patch > 0 {
		fmt.Printf("  patch:   %d\n", summary.Patch)
	}
	if summary.Unknown > 0 {
		fmt.Printf("  unknown: %d\n", summary.Unknown)
	}
	if summary.Held > 0 {
		fmt.Printf("  held:    %d\n", summary.Held)
	}
}

// summarizeOutdated counts entries per severity class and held state.
func summarizeOutdated(entries []scan.Entry, isHeld func(string) bool) output.OutdatedSummary {
	summary := output.OutdatedSummary{TotalOutdated: len(entries)}

	for _, entry := range entries {
		switch entry.Severity {
		case constants.SeverityMajor:
			summary.Major++
		case constants.SeverityMinor:
			summary.Minor++
		case constants.SeverityPatch:
			summary.Patch++
		default:
			summary.Unknown++
		}
		if isHeld != nil && isHeld(entry.Name) {
			summary.Held++
		}
	}

	return summary
}

// buildOutdatedReport converts scan entries to the structured report form.
//
// Parameters:
//   - entries: The outdated entries
//   - tool: The wrapped package manager name
//   - isHeld: Reports whether a package is excluded by configuration
//
// Returns:
//   - *output.OutdatedReport: Report ready for structured output
func buildOutdatedReport(entries []scan.Entry, tool string, isHeld func(string) bool) *output.OutdatedReport {
	summary := summarizeOutdated(entries, isHeld)
	summary.Tool = tool

	packages := make([]output.OutdatedPackage, 0, len(entries))
	for _, entry := range entries {
		packages = append(packages, output.OutdatedPackage{
			Name:     entry.Name,
			Current:  entry.Current,
			Latest:   entry.Latest,
			Severity: entry.Severity,
			Status:   outdatedStatus(entry, isHeld),
		})
	}

	return &output.OutdatedReport{Summary: summary, Packages: packages}
}
