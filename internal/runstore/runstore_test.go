package runstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/model"
)

func newMock(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGStore(db), mock
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS solver_runs").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRunFromReport(t *testing.T) {
	store, mock := newMock(t)
	r := &instance.Report{
		ProblemInstanceID: "inst-1",
		RunID:             "run-1",
		Score:             model.Score{Hard: 0, Soft: 42.5},
		Feasible:          true,
		Quality:           42,
		SelectedContacts:  3,
		Steps:             120,
		RuntimeSeconds:    1.25,
		Termination:       "unimproved_step_limit",
	}
	created := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	run := RunFromReport(r)
	run.CreatedAt = created

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO solver_runs")).
		WithArgs("run-1", "inst-1", 0, 42.5, true, 42, 3, 120, int64(1250), "unimproved_step_limit", created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.RecordRun(context.Background(), run))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRunErrors(t *testing.T) {
	store, mock := newMock(t)
	assert.Error(t, store.RecordRun(context.Background(), Run{InstanceID: "x"}))

	mock.ExpectExec("INSERT INTO solver_runs").WillReturnError(errors.New("connection reset"))
	err := store.RecordRun(context.Background(), Run{ID: "r", InstanceID: "x"})
	assert.ErrorContains(t, err, "connection reset")
}

func TestListRuns(t *testing.T) {
	store, mock := newMock(t)
	now := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "instance_id", "hard_score", "soft_score", "feasible", "quality",
		"selected_contacts", "steps", "runtime_ms", "termination", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("run-2", "inst-1", 0, 50.0, true, 50, 4, 200, int64(2000), "time_limit", now).
		AddRow("run-1", "inst-1", 1, 60.0, false, 60, 5, 100, int64(500), "step_limit", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, instance_id").WithArgs("inst-1", 50).WillReturnRows(rows)

	runs, err := store.ListRuns(context.Background(), "inst-1", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, 2*time.Second, runs[0].Runtime)
	assert.False(t, runs[1].Feasible)
	assert.Equal(t, 1, runs[1].Hard)
	require.NoError(t, mock.ExpectationsWereMet())
}
