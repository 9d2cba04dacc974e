package check

import (
	"context"
	"errors"
	"os/exec"

	"github.com/codegate/codegate/internal/report"
)

// Result is the outcome of one check invocation.
type Result struct {
	Check    Check
	Status   Status
	ExitCode int

	// LaunchErr is set when the analyzer process could not be started
	// (tool missing, OS error). The check is marked StatusFailed and
	// an empty report is written so the artifact set stays complete.
	LaunchErr error

	// WriteErr is set when the report artifact could not be
	// persisted. The check's output is lost for the summary but the
	// pipeline continues.
	WriteErr error
}

// Runner executes external checks and persists their output. It is the
// only code that constructs and runs analyzer command lines.
type Runner struct {
	store *report.Store
}

// NewRunner returns a runner writing artifacts into store.
func NewRunner(store *report.Store) *Runner {
	return &Runner{store: store}
}

// Run executes c synchronously, capturing stdout and stderr as one
// blob regardless of exit code. A non-zero exit is never an error
// here; only a failure to launch is. The captured text (even if
// empty) always goes to the check's report artifact.
func (r *Runner) Run(ctx context.Context, c Check) Result {
	res := Result{Check: c}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Never reached the tool at all.
			res.LaunchErr = err
			res.Status = StatusFailed
			res.WriteErr = r.store.Write(c.ReportFile, "")
			return res
		}
	}

	res.WriteErr = r.store.Write(c.ReportFile, output)
	res.Status = c.Predicate.Evaluate(res.ExitCode, output)
	return res
}
