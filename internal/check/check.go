// Package check defines the static battery of analysis checks and the
// runner that executes the external ones.
//
// A Check is configuration, not behavior: the runner is the only code
// that builds and executes analyzer command lines. Status derivation is
// a tagged predicate rather than one hardcoded function per tool, since
// the tools disagree about how "nothing wrong" is signaled.
package check

import "strings"

// Status is the per-check verdict after its process or scan completes.
type Status string

const (
	// StatusClean means the check found nothing needing attention.
	StatusClean Status = "clean"

	// StatusAttention means the check's report needs a human look.
	StatusAttention Status = "attention"

	// StatusFailed means the analyzer could not be launched at all.
	// The check is treated as not-run; the pipeline continues.
	StatusFailed Status = "failed"
)

// PredicateKind selects how a check's result is interpreted.
type PredicateKind string

const (
	// PredicateNone: the check only produces a report, no inline
	// verdict. The summary still inspects the artifact content.
	PredicateNone PredicateKind = "none"

	// PredicateExitCode: attention iff the process exited non-zero.
	PredicateExitCode PredicateKind = "exit_code"

	// PredicateContentEmpty: attention iff the captured output is
	// non-empty after stripping whitespace.
	PredicateContentEmpty PredicateKind = "content_empty"

	// PredicatePhrase: attention iff Phrase appears in the output.
	PredicatePhrase PredicateKind = "phrase"
)

// Predicate is a check's status derivation rule.
type Predicate struct {
	Kind   PredicateKind
	Phrase string // only for PredicatePhrase
}

// Evaluate applies the predicate to a completed invocation. It must
// only be called after the process has fully exited; partial output is
// never interpreted.
func (p Predicate) Evaluate(exitCode int, output string) Status {
	switch p.Kind {
	case PredicateExitCode:
		if exitCode != 0 {
			return StatusAttention
		}
	case PredicateContentEmpty:
		if strings.TrimSpace(output) != "" {
			return StatusAttention
		}
	case PredicatePhrase:
		if p.Phrase != "" && strings.Contains(output, p.Phrase) {
			return StatusAttention
		}
	}
	return StatusClean
}

// Check describes one external analysis step. The in-process
// obsolete-marker scan is not a Check; it lives in the scanner package
// and only shares the report artifact convention.
type Check struct {
	// Name is the stable identifier, also recorded in run history.
	Name string

	// Section is the banner the pipeline prints before the check.
	// Consecutive checks sharing a section share one banner.
	Section string

	// Argv is the full command line, analyzer first.
	Argv []string

	// Dir is the working directory for the process ("" = inherit).
	Dir string

	// ReportFile is the artifact filename under the report store.
	ReportFile string

	// Predicate interprets the completed invocation.
	Predicate Predicate
}
