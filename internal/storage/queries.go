package storage

import (
	"fmt"

	"github.com/pable/go-shotmap/internal/model"
)

// DatasetExists returns true if a dataset with the given key is already stored.
func (db *DB) DatasetExists(key string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM datasets WHERE key = ?", key).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertDataset inserts a dataset record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertDataset(info model.DatasetInfo) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO datasets(key, label, source, season, loaded_at, shot_count, total_xg)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		info.Key, info.Label, info.Source, info.Season, info.LoadedAt,
		info.ShotCount, info.TotalXG,
	)
	return err
}

// ReplaceShots swaps in the full shot collection for a dataset in one
// transaction: delete everything, then bulk-insert. Reloads are wholesale,
// never merged.
func (db *DB) ReplaceShots(key string, shots []model.ShotRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM shots WHERE dataset_key = ?", key); err != nil {
		return fmt.Errorf("clear shots for %s: %w", key, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO shots(
			dataset_key, seq, x, y, xg,
			shot_type, period, game_time, game_id, player_id, team_id, goal
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range shots {
		_, err = stmt.Exec(
			key, i, s.X, s.Y, s.XG,
			s.ShotType, s.Period, s.GameTime, s.GameID, s.PlayerID, s.TeamID,
			boolInt(s.Goal),
		)
		if err != nil {
			return fmt.Errorf("insert shot %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetShots returns a dataset's shots in their original ingest order.
func (db *DB) GetShots(key string) ([]model.ShotRecord, error) {
	rows, err := db.conn.Query(`
		SELECT x, y, xg, shot_type, period, game_time, game_id, player_id, team_id, goal
		FROM shots WHERE dataset_key = ? ORDER BY seq`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shots []model.ShotRecord
	for rows.Next() {
		var s model.ShotRecord
		var goal int
		err := rows.Scan(&s.X, &s.Y, &s.XG, &s.ShotType, &s.Period,
			&s.GameTime, &s.GameID, &s.PlayerID, &s.TeamID, &goal)
		if err != nil {
			return nil, err
		}
		s.Goal = goal != 0
		shots = append(shots, s)
	}
	return shots, rows.Err()
}

// ListDatasets returns stored datasets, newest first.
func (db *DB) ListDatasets() ([]model.DatasetInfo, error) {
	rows, err := db.conn.Query(`
		SELECT key, label, source, season, loaded_at, shot_count, total_xg
		FROM datasets ORDER BY loaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DatasetInfo
	for rows.Next() {
		var d model.DatasetInfo
		if err := rows.Scan(&d.Key, &d.Label, &d.Source, &d.Season, &d.LoadedAt, &d.ShotCount, &d.TotalXG); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDatasetByPrefix resolves a dataset by key prefix. Returns (nil, nil)
// when nothing matches and an error when the prefix is ambiguous.
func (db *DB) GetDatasetByPrefix(prefix string) (*model.DatasetInfo, error) {
	rows, err := db.conn.Query(`
		SELECT key, label, source, season, loaded_at, shot_count, total_xg
		FROM datasets WHERE key LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.DatasetInfo
	for rows.Next() {
		var d model.DatasetInfo
		if err := rows.Scan(&d.Key, &d.Label, &d.Source, &d.Season, &d.LoadedAt, &d.ShotCount, &d.TotalXG); err != nil {
			return nil, err
		}
		matches = append(matches, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("dataset prefix %q is ambiguous", prefix)
	}
}

// DeleteDataset removes a dataset and its shots.
func (db *DB) DeleteDataset(key string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM shots WHERE dataset_key = ?", key); err != nil {
		return fmt.Errorf("delete shots: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM datasets WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
