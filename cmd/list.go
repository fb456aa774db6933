package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotmap/internal/report"
	"github.com/pable/go-shotmap/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	datasets, err := db.ListDatasets()
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}
	if len(datasets) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored. Use 'shotmap load' or 'shotmap fetch'.")
		return nil
	}

	report.PrintDatasetList(os.Stdout, datasets)
	return nil
}
