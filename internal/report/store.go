// Package report owns the report artifact directory and the summary
// rendered from it after every check has completed.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the directory holding one text artifact per check. Each
// check owns a disjoint file within it and overwrites the whole file
// each run, so no locking is needed.
type Store struct {
	dir string
}

// NewStore creates the report directory if needed and returns the
// store. Creation is idempotent across runs.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the report directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of an artifact file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Write replaces the artifact's content. Invalid UTF-8 in content is
// replaced rather than rejected, so analyzer output in any encoding
// still produces a readable report.
func (s *Store) Write(name, content string) error {
	clean := strings.ToValidUTF8(content, "�")
	if err := os.WriteFile(s.Path(name), []byte(clean), 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", name, err)
	}
	return nil
}

// Read returns an artifact's content. The error is os.ErrNotExist
// (wrapped) when the check never ran.
func (s *Store) Read(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
