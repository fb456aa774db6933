package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotmap/internal/filter"
	"github.com/pable/go-shotmap/internal/ingest"
	"github.com/pable/go-shotmap/internal/model"
	"github.com/pable/go-shotmap/internal/moneypuck"
)

var (
	fetchSeason string
	fetchTeam   string
	fetchLabel  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a season shot CSV from moneypuck.com and store it",
	Long: `Downloads the public moneypuck shot export for a season, optionally
restricted to one team, and stores it as a dataset.

Examples:
  shotmap fetch --season 2023
  shotmap fetch --season 2023 --team EDM`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSeason, "season", "", "season starting year, e.g. 2023 (required)")
	fetchCmd.Flags().StringVar(&fetchTeam, "team", "", "only keep shots by this team code (e.g. EDM)")
	fetchCmd.Flags().StringVar(&fetchLabel, "label", "", "dataset label (default: moneypuck <season>)")
	_ = fetchCmd.MarkFlagRequired("season")
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := moneypuck.NewClient()

	fmt.Fprintf(os.Stdout, "Fetching season %s shots...\n", fetchSeason)
	body, err := client.FetchSeasonCSV(cmd.Context(), fetchSeason)
	if err != nil {
		return err
	}

	shots, err := ingest.ReadShots(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse season %s csv: %w", fetchSeason, err)
	}

	label := fetchLabel
	if label == "" {
		label = "moneypuck " + fetchSeason
	}
	if fetchTeam != "" {
		// Only the team dimension restricts; the xG range stays open so
		// a restricted fetch keeps exactly the unrestricted rows for
		// that team.
		shots = filter.Apply(shots, model.FilterConfig{
			Teams: []string{fetchTeam},
			XGMax: math.Inf(1),
		})
		label += " " + fetchTeam
	}

	info := datasetInfo(datasetKey(body, fetchTeam), shots, label, "moneypuck", fetchSeason)
	if err := storeDataset(info, shots); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Stored %d shots as %s (%s)\n", len(shots), info.Key[:12], label)
	return nil
}
