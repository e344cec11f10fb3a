// Package tracedb persists rule-application traces and per-run statistics
// to a local SQLite database (spec.md §6's "Configuration" /
// "rewriter trace" interface), so past rewrite runs can be read back
// without having kept them in memory; the essence command only writes
// run records and has no subcommand that reads them. It uses modernc.org/sqlite, a pure-Go cgo-free driver, so the
// toolchain stays a single static binary.
package tracedb

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps a *sql.DB opened against the tracedb schema.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	rule_sets   TEXT NOT NULL,
	iterations  INTEGER NOT NULL,
	rules_applied INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	seq         INTEGER NOT NULL,
	rule_name   TEXT NOT NULL,
	rule_set    TEXT NOT NULL,
	priority    INTEGER NOT NULL,
	expr_before TEXT NOT NULL,
	expr_after  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_applications_run ON applications(run_id);
`

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tracedb: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracedb: applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RunRecord summarises one completed rewrite run.
type RunRecord struct {
	RunID        string
	StartedAt    string
	RuleSets     string
	Iterations   int
	RulesApplied int
}

// Application is a single recorded rule application within a run.
type Application struct {
	Seq        int
	RuleName   string
	RuleSet    string
	Priority   int
	ExprBefore string
	ExprAfter  string
}

// InsertRun records a completed run's summary.
func (s *Store) InsertRun(ctx context.Context, r RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, rule_sets, iterations, rules_applied) VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt, r.RuleSets, r.Iterations, r.RulesApplied)
	if err != nil {
		return fmt.Errorf("tracedb: inserting run %s: %w", r.RunID, err)
	}
	return nil
}

// InsertApplication records one rule application belonging to runID.
func (s *Store) InsertApplication(ctx context.Context, runID string, a Application) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (run_id, seq, rule_name, rule_set, priority, expr_before, expr_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, a.Seq, a.RuleName, a.RuleSet, a.Priority, a.ExprBefore, a.ExprAfter)
	if err != nil {
		return fmt.Errorf("tracedb: inserting application for run %s: %w", runID, err)
	}
	return nil
}

// ApplicationsForRun returns every recorded application for runID, in
// application order.
func (s *Store) ApplicationsForRun(ctx context.Context, runID string) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, rule_name, rule_set, priority, expr_before, expr_after
		 FROM applications WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("tracedb: querying applications for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.Seq, &a.RuleName, &a.RuleSet, &a.Priority, &a.ExprBefore, &a.ExprAfter); err != nil {
			return nil, fmt.Errorf("tracedb: scanning application row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RecentRuns returns the limit most recently started runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, rule_sets, iterations, rules_applied
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("tracedb: querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.RuleSets, &r.Iterations, &r.RulesApplied); err != nil {
			return nil, fmt.Errorf("tracedb: scanning run row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
