package check

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate/codegate/internal/report"
)

func newTestStore(t *testing.T) *report.Store {
	t.Helper()
	store, err := report.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func shCheck(name, script string, p Predicate) Check {
	return Check{
		Name:       name,
		Argv:       []string{"sh", "-c", script},
		ReportFile: name + "_report.txt",
		Predicate:  p,
	}
}

func TestRunner_CapturesCombinedOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	store := newTestStore(t)
	runner := NewRunner(store)

	c := shCheck("combined", "echo out; echo err 1>&2", Predicate{Kind: PredicateContentEmpty})
	res := runner.Run(context.Background(), c)

	require.NoError(t, res.LaunchErr)
	require.NoError(t, res.WriteErr)
	assert.Equal(t, StatusAttention, res.Status)

	content, err := store.Read(c.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, content, "out")
	assert.Contains(t, content, "err")
}

func TestRunner_NonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	store := newTestStore(t)
	runner := NewRunner(store)

	c := shCheck("exitcode", "echo style violations; exit 3", Predicate{Kind: PredicateExitCode})
	res := runner.Run(context.Background(), c)

	require.NoError(t, res.LaunchErr)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, StatusAttention, res.Status)

	// The report still carries the captured output.
	content, err := store.Read(c.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, content, "style violations")
}

func TestRunner_CleanCheckWritesEmptyReport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	store := newTestStore(t)
	runner := NewRunner(store)

	c := shCheck("quiet", "exit 0", Predicate{Kind: PredicateContentEmpty})
	res := runner.Run(context.Background(), c)

	require.NoError(t, res.LaunchErr)
	assert.Equal(t, StatusClean, res.Status)

	content, err := store.Read(c.ReportFile)
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestRunner_LaunchFailure(t *testing.T) {
	store := newTestStore(t)
	runner := NewRunner(store)

	c := Check{
		Name:       "missing",
		Argv:       []string{"/nonexistent/analyzer-binary"},
		ReportFile: "missing_report.txt",
		Predicate:  Predicate{Kind: PredicateExitCode},
	}
	res := runner.Run(context.Background(), c)

	require.Error(t, res.LaunchErr)
	assert.Equal(t, StatusFailed, res.Status)

	// An empty report is still written so the artifact set stays
	// complete.
	content, err := store.Read(c.ReportFile)
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestRunner_OverwritesPriorReport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	store := newTestStore(t)
	runner := NewRunner(store)

	first := shCheck("rerun", "echo stale finding", Predicate{Kind: PredicateContentEmpty})
	runner.Run(context.Background(), first)

	second := shCheck("rerun", "exit 0", Predicate{Kind: PredicateContentEmpty})
	res := runner.Run(context.Background(), second)
	require.NoError(t, res.WriteErr)

	content, err := store.Read("rerun_report.txt")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}
