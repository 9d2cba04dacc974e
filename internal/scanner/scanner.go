// Package scanner implements the obsolete-marker scan, the one check
// in the battery with in-process logic instead of an external tool.
package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReportHeader is written at the top of the report even when the scan
// found nothing.
const ReportHeader = "=== Obsolete APIs and Code Found ===\n\n"

// Finding is one flagged source line. A line is flagged once per
// marker that appears in it.
type Finding struct {
	// Path is relative to the project root.
	Path string

	// Line is 1-based.
	Line int

	// Text is the raw line content.
	Text string

	// Marker is the configured marker that matched.
	Marker string
}

// Scanner walks a source tree looking for deprecation annotations and
// obsolete-work markers. Matching is case-sensitive substring
// containment per line.
type Scanner struct {
	// Root is the directory to walk.
	Root string

	// BasePath is what finding paths are made relative to. Defaults
	// to Root when empty.
	BasePath string

	// Markers are the substrings to look for, in configured order.
	Markers []string

	// Extensions is the allow-list of file extensions (with dot).
	Extensions []string

	// Exclude patterns skip files or whole directories.
	Exclude []string

	// Log receives per-file read warnings. Defaults to os.Stderr.
	Log io.Writer
}

// Scan enumerates allow-listed files under Root and returns every
// Finding, in file-visit order and ascending line order within a
// file. A file that cannot be read is skipped with a warning and the
// scan continues.
func (s *Scanner) Scan(ctx context.Context) ([]Finding, error) {
	base := s.BasePath
	if base == "" {
		base = s.Root
	}
	logw := s.Log
	if logw == nil {
		logw = os.Stderr
	}

	var findings []Finding

	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if shouldExcludePath(relPath, s.Exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !s.allowedExtension(path) {
			return nil
		}

		fileFindings, err := s.scanFile(path, relPath)
		if err != nil {
			fmt.Fprintf(logw, "warning: skipping %s: %v\n", relPath, err)
			return nil
		}
		findings = append(findings, fileFindings...)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.Root, err)
	}

	return findings, nil
}

// allowedExtension reports whether the file's extension is in the
// allow-list.
func (s *Scanner) allowedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range s.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// scanFile reads one file line by line and records a Finding for every
// (line, marker) pair where the marker is a substring of the line.
func (s *Scanner) scanFile(path, relPath string) ([]Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var findings []Finding

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		for _, marker := range s.Markers {
			if strings.Contains(line, marker) {
				findings = append(findings, Finding{
					Path:   relPath,
					Line:   lineNum,
					Text:   line,
					Marker: marker,
				})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return findings, nil
}

// Render serializes findings into the report artifact format: the
// static header followed by one entry per finding, in scan order.
func Render(findings []Finding) string {
	var sb strings.Builder
	sb.WriteString(ReportHeader)
	for _, f := range findings {
		sb.WriteString(fmt.Sprintf("File: %s:%d\n", f.Path, f.Line))
		sb.WriteString(fmt.Sprintf("Line %d: %s\n\n", f.Line, strings.TrimSpace(f.Text)))
	}
	return sb.String()
}
