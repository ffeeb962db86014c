// Package storage persists scan runs and their extracted items in SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/beleglab/bonscan"
	"github.com/beleglab/bonscan/model"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Run is one stored scan of a single source image or token file.
type Run struct {
	ID         int64
	Source     string
	ScannedAt  string
	TokenCount int
	ItemCount  int
	Text       string
}

// Open opens (creating if needed) the database at the given path and
// ensures the schema exists.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  scannedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  tokenCount INTEGER NOT NULL,
  itemCount INTEGER NOT NULL,
  text TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);

CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  rowIndex INTEGER NOT NULL,
  name TEXT NOT NULL,
  nameBox TEXT NOT NULL,
  priceRaw TEXT NOT NULL,
  priceValue REAL NOT NULL,
  currency TEXT NOT NULL,
  vatTag TEXT NOT NULL,
  priceBox TEXT NOT NULL,
  confidence REAL,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_items_runId ON items(runId);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveRun stores one scan result with its items and returns the run id.
func (d *DB) SaveRun(result *bonscan.Result) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
INSERT INTO runs (source, tokenCount, itemCount, text) VALUES (?, ?, ?, ?)`,
		result.Meta.Source, result.Meta.TokenCount, result.ItemCount, result.Text)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO items (runId, rowIndex, name, nameBox, priceRaw, priceValue, currency, vatTag, priceBox, confidence)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, item := range result.Items {
		nameBox, err := json.Marshal(item.NameBox)
		if err != nil {
			return 0, err
		}
		priceBox, err := json.Marshal(item.PriceBox)
		if err != nil {
			return 0, err
		}
		var confidence any
		if item.Confidence != nil {
			confidence = *item.Confidence
		}
		if _, err := stmt.Exec(
			runID, item.RowIndex, item.Name, string(nameBox),
			item.Price.Raw, item.Price.Value, item.Price.Currency, string(item.Price.VatTag),
			string(priceBox), confidence,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// GetRun loads a single run by id.
func (d *DB) GetRun(runID int64) (Run, error) {
	var run Run
	err := d.conn.QueryRow(`
SELECT id, source, scannedAt, tokenCount, itemCount, text FROM runs WHERE id = ?`, runID).
		Scan(&run.ID, &run.Source, &run.ScannedAt, &run.TokenCount, &run.ItemCount, &run.Text)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %d not found", runID)
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns all runs.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, source, scannedAt, tokenCount, itemCount, text FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.ScannedAt, &run.TokenCount, &run.ItemCount, &run.Text); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ItemsForRun loads the items stored for a run, in insertion order.
func (d *DB) ItemsForRun(runID int64) ([]model.Item, error) {
	rows, err := d.conn.Query(`
SELECT rowIndex, name, nameBox, priceRaw, priceValue, currency, vatTag, priceBox, confidence
FROM items WHERE runId = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var (
			item       model.Item
			nameBox    string
			priceBox   string
			vatTag     string
			confidence sql.NullFloat64
		)
		if err := rows.Scan(&item.RowIndex, &item.Name, &nameBox,
			&item.Price.Raw, &item.Price.Value, &item.Price.Currency, &vatTag,
			&priceBox, &confidence); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(nameBox), &item.NameBox); err != nil {
			return nil, fmt.Errorf("run %d item %q: %w", runID, item.Name, err)
		}
		if err := json.Unmarshal([]byte(priceBox), &item.PriceBox); err != nil {
			return nil, fmt.Errorf("run %d item %q: %w", runID, item.Name, err)
		}
		item.Price.VatTag = model.VatTag(vatTag)
		if confidence.Valid {
			v := confidence.Float64
			item.Confidence = &v
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
