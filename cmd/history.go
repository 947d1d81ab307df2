package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/output"
	"github.com/ajxudir/envup/pkg/updater"
	"github.com/ajxudir/envup/pkg/utils"
)

var (
	historyPruneFlag  int
	historyOutputFlag string
)

// writeHistoryReportFunc allows mocking structured output in tests
var writeHistoryReportFunc = output.WriteHistoryReport

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded snapshots",
	Long: `List the snapshot manifests on disk, newest first, along with the most
recent cycle recorded in the journal. With --prune, keep only the N most
recent manifests uncompressed and compress the rest.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyPruneFlag, "prune", 0, "Keep N snapshots uncompressed, compress the rest")
	historyCmd.Flags().StringVarP(&historyOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// runHistory executes the history command.
//
// History only reads the snapshot directory and journal, so preflight
// command validation is skipped.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused
//
// Returns:
//   - error: Returns ExitError with appropriate code on failure
func runHistory(cmd *cobra.Command, args []string) error {
	manager, sink, err := setupManager(false, true)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	if cmd.Flags().Changed("prune") {
		cfg := manager.Config()
		cfg.KeepSnapshots = historyPruneFlag
		compressed, err := manager.Prune()
		if err != nil {
			return err
		}
		for _, path := range compressed {
			fmt.Printf("%s Compressed: %s\n", constants.IconInfo, path)
		}
		if len(compressed) > 0 {
			fmt.Println()
		}
	}

	entries, err := manager.History()
	if err != nil {
		return err
	}

	outputFormat := output.ParseFormat(historyOutputFlag)
	if output.IsStructuredFormat(outputFormat) {
		return writeHistoryReportFunc(os.Stdout, outputFormat, buildHistoryReport(entries))
	}

	if len(entries) == 0 {
		fmt.Printf("%s No snapshots found\n", constants.IconInfo)
		return nil
	}

	printHistoryTable(entries)
	printLastCycle(manager)
	return nil
}

// printHistoryTable renders the snapshot history as a table.
func printHistoryTable(entries []updater.HistoryEntry) {
	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("CREATED").
		AddColumn("PACKAGES").
		AddColumn("SIZE").
		AddColumn("COMPRESSED")

	for _, entry := range entries {
		table.UpdateWidths(entry.Name, entry.Time.Format(time.DateTime),
			strconv.Itoa(entry.Packages), utils.HumanSize(entry.Size),
			strconv.FormatBool(entry.Compressed))
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())

	for _, entry := range entries {
		fmt.Println(table.FormatRow(entry.Name, entry.Time.Format(time.DateTime),
			strconv.Itoa(entry.Packages), utils.HumanSize(entry.Size),
			strconv.FormatBool(entry.Compressed)))
	}

	fmt.Printf("\nTotal snapshots: %d\n", len(entries))
}

// printLastCycle prints the most recent journal entry, if any.
func printLastCycle(manager *updater.Manager) {
	cfg := manager.Config()
	journal, err := updater.ReadJournal(cfg.ResolvePath(cfg.JournalFile))
	if err != nil || journal == nil {
		return
	}

	fmt.Printf("\nLast cycle: %s (%s)", journal.CycleID, journal.Status)
	if journal.FinishedAt != nil {
		fmt.Printf(" finished %s", journal.FinishedAt.Format(time.DateTime))
	}
	fmt.Println()
}

// buildHistoryReport converts history entries to the structured report form.
func buildHistoryReport(entries []updater.HistoryEntry) *output.HistoryReport {
	report := &output.HistoryReport{
		Summary:   output.HistorySummary{Total: len(entries)},
		Snapshots: make([]output.HistorySnapshot, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.Compressed {
			report.Summary.Compressed++
		}
		report.Snapshots = append(report.Snapshots, output.HistorySnapshot{
			Name:       entry.Name,
			Created:    entry.Time.Format(time.RFC3339),
			Packages:   entry.Packages,
			SizeBytes:  entry.Size,
			Compressed: entry.Compressed,
		})
	}

	return report
}
