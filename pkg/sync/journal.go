// pkg/sync/journal.go
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS sync_runs (
	run_id      TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	dry_run     BOOLEAN NOT NULL,
	processed   INTEGER NOT NULL,
	created     INTEGER NOT NULL,
	updated     INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL REFERENCES sync_runs(run_id),
	sku        TEXT NOT NULL,
	name       TEXT,
	product_id INTEGER,
	status     TEXT NOT NULL,
	reason     TEXT,
	error      TEXT,
	variations INTEGER
);
`

// Journal persists run summaries to a local SQLite database so past
// runs can be inspected after the fact.
type Journal struct {
	db *sqlx.DB
}

// OpenJournal opens (and if needed initializes) the journal database at
// the given path.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record writes one run summary and its per-item results in a single
// transaction.
func (j *Journal) Record(ctx context.Context, summary *Summary) error {
	tx, err := j.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_runs (run_id, started_at, finished_at, dry_run, processed, created, updated, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.StartTime, summary.EndTime, summary.DryRun,
		summary.Processed, summary.Created, summary.Updated, summary.Skipped, summary.Failed)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", summary.RunID, err)
	}

	for _, item := range summary.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sync_items (run_id, sku, name, product_id, status, reason, error, variations)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID, item.SKU, item.Name, item.ProductID,
			string(item.Status), item.Reason, item.Error, item.Variations)
		if err != nil {
			return fmt.Errorf("failed to record item %s: %w", item.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal transaction: %w", err)
	}
	return nil
}

// Runs returns all recorded run summaries, most recent first. Items are
// not loaded; use Items for a specific run.
func (j *Journal) Runs(ctx context.Context) ([]Summary, error) {
	rows, err := j.db.QueryxContext(ctx,
		`SELECT run_id, started_at, finished_at, dry_run, processed, created, updated, skipped, failed
		 FROM sync_runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.RunID, &s.StartTime, &s.EndTime, &s.DryRun,
			&s.Processed, &s.Created, &s.Updated, &s.Skipped, &s.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.Duration = s.EndTime.Sub(s.StartTime)
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// Items returns the per-item results recorded for one run.
func (j *Journal) Items(ctx context.Context, runID string) ([]ItemResult, error) {
	var items []ItemResult
	err := j.db.SelectContext(ctx, &items,
		`SELECT sku, name, product_id, status, reason, error, variations
		 FROM sync_items WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for run %s: %w", runID, err)
	}
	return items, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// WriteJSONLog writes the summary as a timestamped JSON file under dir
// and returns the file path.
func WriteJSONLog(dir string, summary *Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("sync_log_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write log file: %w", err)
	}
	return path, nil
}
