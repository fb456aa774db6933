package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shotmap/internal/model"
	"github.com/pable/go-shotmap/internal/pipeline"
	"github.com/pable/go-shotmap/internal/render"
	"github.com/pable/go-shotmap/internal/storage"
)

// chart command flags.
var (
	chartOut     string
	chartTeams   []string
	chartPeriods []int
	chartTypes   []string
	chartXGMin   float64
	chartXGMax   float64
	chartHQ      bool
	chartHD      bool
	chartRadius  float64
	chartHDRad   float64
	chartWidth   float64
	chartHeight  float64
)

var chartCmd = &cobra.Command{
	Use:   "chart <key-prefix>",
	Short: "Render a hexbin shot chart for a stored dataset",
	Long: `Filters a stored dataset and renders the result as an SVG hexbin
density chart.

Examples:
  shotmap chart 3fa2 --out edm.svg --teams EDM
  shotmap chart 3fa2 --periods 2,3 --xg-min 0.1
  shotmap chart 3fa2 --high-danger`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartOut, "out", "chart.svg", "output SVG file")
	chartCmd.Flags().StringSliceVar(&chartTeams, "teams", nil, "team allowlist (empty = all)")
	chartCmd.Flags().IntSliceVar(&chartPeriods, "periods", nil, "period allowlist (empty = all)")
	chartCmd.Flags().StringSliceVar(&chartTypes, "types", nil, "shot-type allowlist (empty = all)")
	chartCmd.Flags().Float64Var(&chartXGMin, "xg-min", -1, "minimum xG (default: dataset minimum)")
	chartCmd.Flags().Float64Var(&chartXGMax, "xg-max", -1, "maximum xG (default: dataset maximum)")
	chartCmd.Flags().BoolVar(&chartHQ, "high-quality", false, "only shots with xG >= 0.8")
	chartCmd.Flags().BoolVar(&chartHD, "high-danger", false, "only shots with xG >= 0.15, finer grid, no overlay")
	chartCmd.Flags().Float64Var(&chartRadius, "radius", 0, "hex radius in pixels (default 14)")
	chartCmd.Flags().Float64Var(&chartHDRad, "danger-radius", 0, "hex radius in high-danger mode (default 9)")
	chartCmd.Flags().Float64Var(&chartWidth, "width", 0, "chart width in pixels")
	chartCmd.Flags().Float64Var(&chartHeight, "height", 0, "chart height in pixels")
}

func runChart(cmd *cobra.Command, args []string) error {
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

	chart := pipeline.NewChart()
	src := pipeline.SourceFunc(func(ctx context.Context) ([]model.ShotRecord, error) {
		return db.GetShots(info.Key)
	})
	if err := chart.Load(cmd.Context(), src); err != nil {
		return err
	}

	cfg := chart.DefaultFilter()
	cfg.Teams = chartTeams
	cfg.Periods = chartPeriods
	cfg.ShotTypes = chartTypes
	if chartXGMin >= 0 {
		cfg.XGMin = chartXGMin
	}
	if chartXGMax >= 0 {
		cfg.XGMax = chartXGMax
	}
	cfg.HighQualityOnly = chartHQ
	cfg.HighDangerOnly = chartHD

	lay := pipeline.DefaultLayout()
	if chartWidth > 0 {
		lay.Width = chartWidth
	}
	if chartHeight > 0 {
		lay.Height = chartHeight
	}
	if chartRadius > 0 {
		lay.HexRadius = chartRadius
	}
	if chartHDRad > 0 {
		lay.HighDangerHexRadius = chartHDRad
	}

	snap, err := chart.Render(cfg, lay)
	if err != nil {
		return err
	}

	out, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", chartOut, err)
	}
	defer out.Close()

	render.WriteSVG(out, snap, lay, info.Label)

	fmt.Fprintf(os.Stdout, "Wrote %s: %d shots in %d bins\n", chartOut, snap.FilteredCount, len(snap.Bins))
	return nil
}
