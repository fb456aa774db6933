package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotmap/internal/storage"
)

var dropCmd = &cobra.Command{
	Use:   "drop <key-prefix>",
	Short: "Delete a stored dataset and its shots",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	info, err := db.GetDatasetByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("resolve dataset: %w", err)
	}
	if info == nil {
		fmt.Fprintf(os.Stderr, "No dataset found with key prefix %q\n", args[0])
		return nil
	}

	if err := db.DeleteDataset(info.Key); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Dropped %s (%s, %d shots)\n", info.Key[:12], info.Label, info.ShotCount)
	return nil
}
