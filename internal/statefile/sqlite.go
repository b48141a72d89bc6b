//go:build sqlite

package statefile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Snapshots live in a single table keyed by component name, so one
// database file can hold the environment and the agent side by side.

func storeSQLite(path string, source Persistable) error {
	ctx := context.Background()

	db, err := openSnapshotDB(ctx, path)
	if err != nil {
		return fmt.Errorf("store %s state: %w", source.Name(), err)
	}
	defer db.Close()

	payload, err := json.Marshal(source.SnapshotState())
	if err != nil {
		return fmt.Errorf("store %s state: %w", source.Name(), err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (component, payload)
		VALUES (?, ?)
		ON CONFLICT(component) DO UPDATE SET
			payload = excluded.payload
	`, source.Name(), payload)
	if err != nil {
		return fmt.Errorf("store %s state: %w", source.Name(), err)
	}
	return nil
}

func loadSQLite(path string, target Persistable) error {
	ctx := context.Background()

	db, err := openSnapshotDB(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s state: %w", target.Name(), err)
	}
	defer db.Close()

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE component = ?`, target.Name()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load %s state: no snapshot in %q", target.Name(), path)
		}
		return fmt.Errorf("load %s state: %w", target.Name(), err)
	}

	state := target.SnapshotState()
	if err := json.Unmarshal(payload, state); err != nil {
		return fmt.Errorf("load %s state: %w", target.Name(), err)
	}
	return target.RestoreState(state)
}

func openSnapshotDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			component TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
