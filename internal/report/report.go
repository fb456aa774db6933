package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-shotmap/internal/model"
)

// PrintDatasetHeader prints a one-line summary header for a dataset.
func PrintDatasetHeader(w io.Writer, d model.DatasetInfo) {
	key := d.Key
	if len(key) > 12 {
		key = key[:12]
	}
	fmt.Fprintf(w, "\n%s  |  Source: %s  |  Loaded: %s  |  Shots: %d  |  Key: %s\n\n",
		d.Label, d.Source, d.LoadedAt, d.ShotCount, key)
}

// PrintDatasetList prints the stored-dataset table, newest first.
func PrintDatasetList(w io.Writer, datasets []model.DatasetInfo) {
	table := newTable(w)
	table.Header("KEY", "LABEL", "SOURCE", "SEASON", "LOADED", "SHOTS", "TOTAL_XG")

	for _, d := range datasets {
		key := d.Key
		if len(key) > 12 {
			key = key[:12]
		}
		season := d.Season
		if season == "" {
			season = "—"
		}
		table.Append(
			key,
			d.Label,
			d.Source,
			season,
			d.LoadedAt,
			strconv.Itoa(d.ShotCount),
			fmt.Sprintf("%.1f", d.TotalXG),
		)
	}
	table.Render()
}

// PrintSummary prints the dataset aggregate view.
func PrintSummary(w io.Writer, s model.DatasetSummary) {
	table := newTable(w)
	table.Header("SHOTS", "TOTAL_XG", "AVG_XG", "TEAMS", "PERIODS", "SHOT_TYPES")

	periods := make([]string, len(s.Periods))
	for i, p := range s.Periods {
		periods[i] = model.PeriodLabel(p)
	}

	table.Append(
		strconv.Itoa(s.TotalCount),
		fmt.Sprintf("%.2f", s.TotalXG),
		fmt.Sprintf("%.3f", s.AverageXG),
		joinOrDash(s.Teams),
		joinOrDash(periods),
		joinOrDash(s.ShotTypes),
	)
	table.Render()

	if !s.Bounds.Empty {
		fmt.Fprintf(w, "\nCoordinate bounds: x [%.1f, %.1f]  y [%.1f, %.1f]  (feet)\n",
			s.Bounds.XMin, s.Bounds.XMax, s.Bounds.YMin, s.Bounds.YMax)
	}
}

// PrintTeamTable prints per-team rollups.
// Columns: TEAM | SHOTS | GOALS | TOTAL_XG | AVG_XG | GOALS-XG
func PrintTeamTable(w io.Writer, teams []model.TeamSummary) {
	table := newTable(w)
	table.Header("TEAM", "SHOTS", "GOALS", "TOTAL_XG", "AVG_XG", "GOALS-XG")

	for i := range teams {
		t := &teams[i]
		table.Append(
			t.TeamID,
			strconv.Itoa(t.Shots),
			strconv.Itoa(t.Goals),
			fmt.Sprintf("%.2f", t.TotalXG),
			fmt.Sprintf("%.3f", t.AvgXG()),
			fmt.Sprintf("%+.2f", float64(t.Goals)-t.TotalXG),
		)
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func joinOrDash(vals []string) string {
	if len(vals) == 0 {
		return "—"
	}
	return strings.Join(vals, ",")
}
