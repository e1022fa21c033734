package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"publicdatareader/internal/table"
)

// SQLite stores every table in a database file. Writing a key replaces the
// rows stored for it by an earlier run; each run is logged in runs.
type SQLite struct {
	conn  *sql.DB
	runID string
	// written counts the keys stored by this run
	written int
}

// OpenSQLite opens (or creates) the database at path and starts a run
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &SQLite{conn: conn, runID: uuid.NewString()}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	_, err = conn.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`, s.runID, now())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("start run: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			tables_written INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS datasets (
			key TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			columns_json TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_rows (
			key TEXT NOT NULL REFERENCES datasets(key),
			row_index INTEGER NOT NULL,
			row_json TEXT NOT NULL,
			PRIMARY KEY (key, row_index)
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// RunID identifies the run this sink logs
func (s *SQLite) RunID() string {
	return s.runID
}

// Conn returns the underlying database connection
func (s *SQLite) Conn() *sql.DB {
	return s.conn
}

// Write implements Sink. Rows are stored as JSON arrays in column order.
func (s *SQLite) Write(ctx context.Context, key string, t *table.Table) error {
	columns, err := json.Marshal(t.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_rows WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO datasets (key, run_id, columns_json, row_count, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			run_id = excluded.run_id,
			columns_json = excluded.columns_json,
			row_count = excluded.row_count,
			fetched_at = excluded.fetched_at`,
		key, s.runID, string(columns), t.Len(), now())
	if err != nil {
		return fmt.Errorf("upsert dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dataset_rows (key, row_index, row_json) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, key, i, string(data)); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.written++
	return nil
}

// Close finishes the run log and closes the database
func (s *SQLite) Close() error {
	_, err := s.conn.Exec(`UPDATE runs SET finished_at = ?, tables_written = ? WHERE id = ?`, now(), s.written, s.runID)
	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
