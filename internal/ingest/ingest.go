// Package ingest turns raw shot CSVs into typed ShotRecord collections.
//
// Field-level malformation is coerced to safe defaults (one bad cell should
// not void a dataset); rows without parseable coordinates are dropped; input
// that cannot be read as CSV at all fails the whole load.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pable/go-shotmap/internal/model"
)

// Column aliases, in lookup order. The moneypuck export and the abbreviated
// chart export name the same fields differently.
var columnAliases = map[string][]string{
	"x":        {"x", "xCord", "xCordAdjusted", "arenaAdjustedXCord"},
	"y":        {"y", "yCord", "yCordAdjusted", "arenaAdjustedYCord"},
	"xg":       {"xG", "xGoal", "shotGoalProbability"},
	"shotType": {"shotType"},
	"period":   {"period"},
	"gameTime": {"gameTime", "time"},
	"gameId":   {"gameId", "game_id"},
	"playerId": {"playerId", "shooterPlayerId"},
	"teamId":   {"teamId", "teamCode"},
	"goal":     {"goal"},
}

// ReadShots decodes a shot CSV into records. The header row is required;
// unknown columns are ignored, missing optional columns yield zero values.
func ReadShots(r io.Reader) ([]model.ShotRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := indexColumns(header)
	if cols["x"] < 0 || cols["y"] < 0 {
		return nil, fmt.Errorf("csv header missing coordinate columns (have: %s)", strings.Join(header, ","))
	}

	var shots []model.ShotRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		x, okX := strictFloat(field(row, cols["x"]))
		y, okY := strictFloat(field(row, cols["y"]))
		if !okX || !okY {
			// Malformed coordinates are dropped, not repaired.
			continue
		}

		xg := parseFloat(field(row, cols["xg"]), 0)
		if xg < 0 {
			xg = 0
		}

		shots = append(shots, model.ShotRecord{
			X:        x,
			Y:        y,
			XG:       xg,
			ShotType: field(row, cols["shotType"]),
			Period:   parseInt(field(row, cols["period"]), 0),
			GameTime: field(row, cols["gameTime"]),
			GameID:   field(row, cols["gameId"]),
			PlayerID: field(row, cols["playerId"]),
			TeamID:   field(row, cols["teamId"]),
			Goal:     parseBool(field(row, cols["goal"]), false),
		})
	}
	return shots, nil
}

// ReadFile reads a shot CSV from disk.
func ReadFile(path string) ([]model.ShotRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	shots, err := ReadShots(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return shots, nil
}

// indexColumns maps each canonical field to its header position, -1 if absent.
func indexColumns(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	cols := make(map[string]int, len(columnAliases))
	for name, aliases := range columnAliases {
		cols[name] = -1
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				cols[name] = i
				break
			}
		}
	}
	return cols
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// strictFloat parses without a fallback; used for coordinates, where a
// default would invent a position.
func strictFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return def
		}
		return n != 0
	}
	return v
}
