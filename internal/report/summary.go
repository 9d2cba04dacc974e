package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Status labels for a summary row. The aggregator never interprets
// what is wrong, only whether the artifact carries any content.
const (
	LabelAttention = "[!] Requires attention"
	LabelClean     = "[OK] No issues"
)

// Entry maps a human-readable title to the artifact it summarizes.
type Entry struct {
	Title string
	File  string

	// Header is static text the producing check always writes, even
	// when it found nothing. It is stripped before the emptiness test
	// so a header-only report reads as clean.
	Header string
}

// Row is one rendered summary line.
type Row struct {
	Title  string
	Status string
}

// Summarize computes one row per entry whose artifact exists. A
// missing artifact means the check never ran and is omitted; an
// unreadable one is reported explicitly rather than silently dropped.
func Summarize(store *Store, entries []Entry) []Row {
	var rows []Row
	for _, e := range entries {
		content, err := store.Read(e.File)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			rows = append(rows, Row{
				Title:  e.Title,
				Status: fmt.Sprintf("[ERROR] Failed to read report: %v", err),
			})
			continue
		}

		body := content
		if e.Header != "" {
			body = strings.TrimPrefix(body, e.Header)
		}
		if strings.TrimSpace(body) != "" {
			rows = append(rows, Row{Title: e.Title, Status: LabelAttention})
		} else {
			rows = append(rows, Row{Title: e.Title, Status: LabelClean})
		}
	}
	return rows
}

// Render writes the fixed-width summary table.
func Render(w io.Writer, rows []Row) {
	header := color.New(color.FgMagenta, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", header(rule))
	fmt.Fprintf(w, "%s\n", header(centered("ANALYSIS SUMMARY REPORT", 80)))
	fmt.Fprintf(w, "%s\n", header(rule))

	for _, r := range rows {
		status := r.Status
		switch {
		case status == LabelClean:
			status = green(status)
		case status == LabelAttention:
			status = yellow(status)
		default:
			status = red(status)
		}
		fmt.Fprintf(w, "%-30s %s\n", r.Title, status)
	}
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
