package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotmap/internal/aggregator"
	"github.com/pable/go-shotmap/internal/model"
	"github.com/pable/go-shotmap/internal/report"
	"github.com/pable/go-shotmap/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <key-prefix>",
	Short: "Show aggregate statistics for a stored dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	info, shots, err := resolveDataset(db, args[0])
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintf(os.Stderr, "No dataset found with key prefix %q\n", args[0])
		return nil
	}

	report.PrintDatasetHeader(os.Stdout, *info)
	report.PrintSummary(os.Stdout, aggregator.Summarize(shots))
	fmt.Fprintln(os.Stdout)
	report.PrintTeamTable(os.Stdout, aggregator.SummarizeTeams(shots))
	return nil
}

// resolveDataset looks a dataset up by key prefix and loads its shots.
// Returns (nil, nil, nil) when the prefix matches nothing.
func resolveDataset(db *storage.DB, prefix string) (*model.DatasetInfo, []model.ShotRecord, error) {
	info, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve dataset: %w", err)
	}
	if info == nil {
		return nil, nil, nil
	}
	shots, err := db.GetShots(info.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("load shots: %w", err)
	}
	return info, shots, nil
}
