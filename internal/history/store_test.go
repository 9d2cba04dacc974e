package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(started time.Time) Run {
	return Run{
		ID:         uuid.New().String(),
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		SourceRoot: "/proj/src",
		Checks: []CheckRecord{
			{Name: "flake8", Status: "clean", ReportFile: "flake8_report.txt"},
			{Name: "bandit", Status: "attention", ReportFile: "security_report.txt"},
			{Name: "obsolete-apis", Status: "clean", ReportFile: "deprecated_apis_report.txt"},
		},
	}
}

func TestStore_RecordAndListRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := sampleRun(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.RecordRun(ctx, run))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "/proj/src", got.SourceRoot)
	require.Len(t, got.Checks, 3)

	// Check records come back in insertion order.
	assert.Equal(t, "flake8", got.Checks[0].Name)
	assert.Equal(t, "attention", got.Checks[1].Status)
	assert.Equal(t, "deprecated_apis_report.txt", got.Checks[2].ReportFile)
}

func TestStore_ListRunsNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Hour))
		ids = append(ids, run.ID)
		require.NoError(t, store.RecordRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestStore_SchemaIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	ctx := context.Background()

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.RecordRun(ctx, sampleRun(time.Now())))
	require.NoError(t, first.Close())

	// Reopening must not disturb existing rows.
	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	runs, err := second.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStore_EmptyHistory(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
