package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"skillsetl/internal/etlerr"
)

// Ledger persists run history backed by SQLite.
type Ledger struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the ledger database at path.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "open", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "open", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "open", fmt.Sprintf("apply %q", pragma), execErr)
		}
	}

	l := &Ledger{db: db, path: path, now: time.Now}
	if err := l.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, etlerr.Wrap(etlerr.ErrConfiguration, "ledger", "schema", path, err)
	}
	return l, nil
}

// Path returns the database file location.
func (l *Ledger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Begin records the start of a stage run and returns its entry ID.
func (l *Ledger) Begin(ctx context.Context, runID, stage, source, targetDir string) (int64, error) {
	if l == nil {
		return 0, nil
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, stage, source, target_dir, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		runID, stage, source, targetDir, string(StatusRunning), formatTime(l.now()),
	)
	if err != nil {
		return 0, etlerr.Wrap(etlerr.ErrIO, "ledger", "begin", stage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, etlerr.Wrap(etlerr.ErrIO, "ledger", "begin", "last insert id", err)
	}
	return id, nil
}

// Finish closes the entry with the run outcome and the per-table row counts.
// A nil runErr marks the run succeeded.
func (l *Ledger) Finish(ctx context.Context, id int64, runErr error, tables []TableCount) error {
	if l == nil || id == 0 {
		return nil
	}
	status := StatusSucceeded
	var errText, errKind sql.NullString
	if runErr != nil {
		status = StatusFailed
		errText = sql.NullString{String: runErr.Error(), Valid: true}
		errKind = sql.NullString{String: etlerr.Kind(runErr), Valid: true}
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "ledger", "finish", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	var runID string
	err = tx.QueryRowContext(ctx,
		`UPDATE runs SET status = ?, error = ?, error_kind = ?, finished_at = ?
         WHERE id = ? RETURNING run_id`,
		string(status), errText, errKind, formatTime(l.now()), id,
	).Scan(&runID)
	if err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "ledger", "finish", fmt.Sprintf("entry %d", id), err)
	}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_tables (entry_id, run_id, table_name, rows) VALUES (?, ?, ?, ?)`,
			id, runID, t.Name, t.Rows,
		); err != nil {
			return etlerr.Wrap(etlerr.ErrIO, "ledger", "finish", t.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "ledger", "finish", "commit", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first, with their table counts.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if l == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, run_id, stage, source, target_dir, status, error, error_kind, started_at, finished_at
         FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "", err)
	}
	defer rows.Close()

	var runs []Run
	index := make(map[int64]int)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "scan", err)
		}
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "", err)
	}
	if len(runs) == 0 {
		return runs, nil
	}

	oldest := runs[len(runs)-1].ID
	tableRows, err := l.db.QueryContext(ctx,
		`SELECT entry_id, table_name, rows FROM run_tables WHERE entry_id >= ? ORDER BY entry_id, table_name`, oldest)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "tables", err)
	}
	defer tableRows.Close()
	for tableRows.Next() {
		var entry int64
		var tc TableCount
		if err := tableRows.Scan(&entry, &tc.Name, &tc.Rows); err != nil {
			return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "scan tables", err)
		}
		if i, ok := index[entry]; ok {
			runs[i].Tables = append(runs[i].Tables, tc)
		}
	}
	if err := tableRows.Err(); err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "ledger", "recent", "tables", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run              Run
		status           string
		errText, errKind sql.NullString
		started          string
		finished         sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.RunID, &run.Stage, &run.Source, &run.TargetDir,
		&status, &errText, &errKind, &started, &finished); err != nil {
		return Run{}, err
	}
	run.Status = Status(status)
	run.Error = errText.String
	run.ErrorKind = errKind.String
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	return run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
