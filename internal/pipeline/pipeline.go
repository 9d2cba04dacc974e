// Package pipeline sequences the full analysis run: environment gate,
// each external check in declared order, the obsolete-marker scan, and
// the summary. Data flows one direction: source tree to per-check
// report text to aggregated status.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/codegate/codegate/internal/check"
	"github.com/codegate/codegate/internal/config"
	"github.com/codegate/codegate/internal/gate"
	"github.com/codegate/codegate/internal/history"
	"github.com/codegate/codegate/internal/report"
	"github.com/codegate/codegate/internal/scanner"
)

// ScannerCheckName and ScannerReportFile identify the in-process
// obsolete-marker scan in summaries and run history.
const (
	ScannerCheckName  = "obsolete-apis"
	ScannerReportFile = "deprecated_apis_report.txt"
)

// Pipeline drives one full analysis run. Checks run strictly
// sequentially; no check's attention status halts the run. Only the
// environment gate (and genuinely fatal faults) can abort it.
type Pipeline struct {
	Config    *config.Config
	Confirmer gate.Confirmer

	// Out receives all human-readable output. Defaults to os.Stdout.
	Out io.Writer

	// Gate overrides the default environment gate (used by tests to
	// stub the host probes).
	Gate *gate.Gate

	// Checks overrides the default battery. Nil means
	// check.Battery(Config).
	Checks []check.Check
}

// New returns a pipeline over cfg using confirmer for the gate's
// install prompt.
func New(cfg *config.Config, confirmer gate.Confirmer) *Pipeline {
	return &Pipeline{Config: cfg, Confirmer: confirmer}
}

// SummaryEntries is the fixed mapping from check titles to report
// artifacts the aggregator reads back.
func SummaryEntries() []report.Entry {
	return []report.Entry{
		{Title: "Code Quality (pylint)", File: "pylint_report.txt"},
		{Title: "Duplicate Code", File: "duplicate_code_report.txt"},
		{Title: "Unused Code", File: "unused_code_report.txt"},
		{Title: "Security Issues", File: "security_report.txt"},
		{Title: "Obsolete APIs", File: ScannerReportFile, Header: scanner.ReportHeader},
		{Title: "Code Format", File: "code_format_report.txt"},
	}
}

// Run executes the whole pipeline. It returns
// gate.ErrEnvironmentNotReady (wrapped) when blocked at the gate; any
// other non-nil error is a fatal fault. Per-check failures never
// surface here.
func (p *Pipeline) Run(ctx context.Context) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	startedAt := time.Now()

	p.banner(out, "checking python environment")
	g := p.Gate
	if g == nil {
		g = gate.New(p.Confirmer)
	}
	g.Out = out
	if err := g.Ensure(ctx); err != nil {
		return err
	}

	// The store is created only after the gate passes, so a blocked
	// run creates and modifies no artifacts.
	store, err := report.NewStore(p.Config.ReportPath())
	if err != nil {
		return fmt.Errorf("preparing report store: %w", err)
	}

	runner := check.NewRunner(store)
	var records []history.CheckRecord

	checks := p.Checks
	if checks == nil {
		checks = check.Battery(p.Config)
	}

	lastSection := ""
	for _, c := range checks {
		if c.Section != lastSection {
			p.banner(out, c.Section)
			lastSection = c.Section
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(out, "%s Running %s...\n", cyan("→"), c.Name)

		res := runner.Run(ctx, c)
		p.printResult(out, store, res)

		records = append(records, history.CheckRecord{
			Name:       c.Name,
			Status:     string(res.Status),
			ReportFile: c.ReportFile,
		})
	}

	records = append(records, p.runScanner(ctx, out, store))

	rows := report.Summarize(store, SummaryEntries())
	report.Render(out, rows)
	fmt.Fprintf(out, "\nFull reports available in: %s\n", store.Dir())

	p.recordHistory(ctx, out, startedAt, records)

	p.banner(out, "analysis complete")
	return nil
}

// runScanner executes the obsolete-marker scan and persists its report.
func (p *Pipeline) runScanner(ctx context.Context, out io.Writer, store *report.Store) history.CheckRecord {
	p.banner(out, "searching for obsolete APIs")

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	rec := history.CheckRecord{Name: ScannerCheckName, ReportFile: ScannerReportFile}

	sc := &scanner.Scanner{
		Root:       p.Config.SourcePath(),
		BasePath:   p.Config.ProjectRoot,
		Markers:    p.Config.Scanner.Markers,
		Extensions: p.Config.Scanner.Extensions,
		Exclude:    p.Config.Scanner.Exclude,
		Log:        out,
	}

	findings, err := sc.Scan(ctx)
	if err != nil {
		fmt.Fprintf(out, "%s Obsolete API scan failed: %v (continuing)\n", red("✗"), err)
		rec.Status = string(check.StatusFailed)
		if werr := store.Write(ScannerReportFile, ""); werr != nil {
			fmt.Fprintf(out, "%s Could not write report: %v\n", yellow("⚠"), werr)
		}
		return rec
	}

	if werr := store.Write(ScannerReportFile, scanner.Render(findings)); werr != nil {
		fmt.Fprintf(out, "%s Could not write report: %v\n", yellow("⚠"), werr)
	}

	if len(findings) > 0 {
		fmt.Fprintf(out, "%s Possible obsolete APIs found (%d). See %s\n",
			yellow("⚠"), len(findings), store.Path(ScannerReportFile))
		rec.Status = string(check.StatusAttention)
	} else {
		fmt.Fprintf(out, "%s No obsolete APIs found.\n", green("✓"))
		rec.Status = string(check.StatusClean)
	}
	return rec
}

// printResult emits the per-check diagnostic line. Every failure
// produces a printed line; none of them stop the run.
func (p *Pipeline) printResult(out io.Writer, store *report.Store, res check.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if res.LaunchErr != nil {
		fmt.Fprintf(out, "  %s %s failed to run: %v (continuing)\n", red("✗"), res.Check.Name, res.LaunchErr)
		return
	}
	if res.WriteErr != nil {
		fmt.Fprintf(out, "  %s %v\n", yellow("⚠"), res.WriteErr)
	}

	reportPath := store.Path(res.Check.ReportFile)
	if res.Check.Predicate.Kind == check.PredicateNone {
		fmt.Fprintf(out, "  %s Report saved to %s\n", gray("·"), reportPath)
		return
	}

	switch res.Status {
	case check.StatusAttention:
		fmt.Fprintf(out, "  %s Issues found by %s. See %s\n", yellow("⚠"), res.Check.Name, reportPath)
	default:
		fmt.Fprintf(out, "  %s No issues found by %s.\n", green("✓"), res.Check.Name)
	}
}

// recordHistory persists the run. History is write-behind and
// best-effort: a failure here is logged and never fails the run.
func (p *Pipeline) recordHistory(ctx context.Context, out io.Writer, startedAt time.Time, records []history.CheckRecord) {
	if !p.Config.History.Enabled {
		return
	}

	yellow := color.New(color.FgYellow).SprintFunc()

	hs, err := history.Open(ctx, p.Config.HistoryPath())
	if err != nil {
		fmt.Fprintf(out, "%s Could not open run history: %v\n", yellow("⚠"), err)
		return
	}
	defer hs.Close()

	err = hs.RecordRun(ctx, history.Run{
		ID:         uuid.New().String(),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		SourceRoot: p.Config.SourcePath(),
		Checks:     records,
	})
	if err != nil {
		fmt.Fprintf(out, "%s Could not record run history: %v\n", yellow("⚠"), err)
	}
}

// banner prints a section header in the style of the summary rules.
func (p *Pipeline) banner(out io.Writer, title string) {
	header := color.New(color.FgHiMagenta).SprintFunc()
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(out, "\n%s\n", header(rule))
	fmt.Fprintf(out, "%s\n", header(centered(strings.ToUpper(title), 80)))
	fmt.Fprintf(out, "%s\n", header(rule))
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
