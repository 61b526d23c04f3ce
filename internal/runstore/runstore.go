// Package runstore keeps a history of solver runs in Postgres.
package runstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
)

// Schema creates the run history table.
const Schema = `
CREATE TABLE IF NOT EXISTS solver_runs (
	id                TEXT PRIMARY KEY,
	instance_id       TEXT NOT NULL,
	hard_score        INTEGER NOT NULL,
	soft_score        DOUBLE PRECISION NOT NULL,
	feasible          BOOLEAN NOT NULL,
	quality           INTEGER NOT NULL,
	selected_contacts INTEGER NOT NULL,
	steps             INTEGER NOT NULL,
	runtime_ms        BIGINT NOT NULL,
	termination       TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS solver_runs_instance_idx ON solver_runs (instance_id, created_at DESC);
`

// Run is one row of solver_runs.
type Run struct {
	ID               string
	InstanceID       string
	Hard             int
	Soft             float64
	Feasible         bool
	Quality          int
	SelectedContacts int
	Steps            int
	Runtime          time.Duration
	Termination      string
	CreatedAt        time.Time
}

// RunFromReport extracts the persisted fields of r.
func RunFromReport(r *instance.Report) Run {
	return Run{
		ID:               r.RunID,
		InstanceID:       r.ProblemInstanceID,
		Hard:             r.Score.Hard,
		Soft:             r.Score.Soft,
		Feasible:         r.Feasible,
		Quality:          r.Quality,
		SelectedContacts: r.SelectedContacts,
		Steps:            r.Steps,
		Runtime:          time.Duration(r.RuntimeSeconds * float64(time.Second)),
		Termination:      r.Termination,
	}
}

// PGStore persists runs into Postgres.
type PGStore struct {
	db *sql.DB
}

// Open connects to the database at url with the lib/pq driver.
func Open(ctx context.Context, url string) (*PGStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPGStore(db), nil
}

// NewPGStore wraps an open database handle.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the table and index when missing.
func (p *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// RecordRun inserts run. CreatedAt defaults to now.
func (p *PGStore) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" || run.InstanceID == "" {
		return fmt.Errorf("run id and instance id are required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	q := `
		INSERT INTO solver_runs (id, instance_id, hard_score, soft_score, feasible, quality,
			selected_contacts, steps, runtime_ms, termination, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := p.db.ExecContext(ctx, q,
		run.ID, run.InstanceID, run.Hard, run.Soft, run.Feasible, run.Quality,
		run.SelectedContacts, run.Steps, run.Runtime.Milliseconds(), run.Termination, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs of an instance, newest first.
// limit <= 0 means 50.
func (p *PGStore) ListRuns(ctx context.Context, instanceID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `
		SELECT id, instance_id, hard_score, soft_score, feasible, quality,
			selected_contacts, steps, runtime_ms, termination, created_at
		FROM solver_runs
		WHERE instance_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := p.db.QueryContext(ctx, q, instanceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			runtimeMS int64
		)
		if err := rows.Scan(&r.ID, &r.InstanceID, &r.Hard, &r.Soft, &r.Feasible, &r.Quality,
			&r.SelectedContacts, &r.Steps, &runtimeMS, &r.Termination, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Runtime = time.Duration(runtimeMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Close releases the database handle.
func (p *PGStore) Close() error {
	return p.db.Close()
}
