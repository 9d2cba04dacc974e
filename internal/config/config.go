// Package config holds the analysis pipeline configuration.
//
// A Config is constructed once at startup (DefaultConfig, optionally
// overlaid from a YAML file) and passed down to every component, so
// tests can run isolated pipelines against isolated report directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for one analysis run.
type Config struct {
	// ProjectRoot is the repository root. Secret scanning covers the
	// whole root; every other check covers SourceDir.
	ProjectRoot string `yaml:"project_root"`

	// SourceDir is the tree the analyzers examine, relative to
	// ProjectRoot unless absolute.
	SourceDir string `yaml:"source_dir"`

	// ReportDir is where report artifacts are written, relative to
	// ProjectRoot unless absolute.
	ReportDir string `yaml:"report_dir"`

	// Scanner configures the in-process obsolete-marker scan.
	Scanner ScannerConfig `yaml:"scanner"`

	// History controls the SQLite run-history store.
	History HistoryConfig `yaml:"history"`
}

// ScannerConfig configures the obsolete-marker scanner.
type ScannerConfig struct {
	// Markers are matched as case-sensitive substrings, per line.
	Markers []string `yaml:"markers"`

	// Extensions is the file-extension allow-list (with leading dot).
	Extensions []string `yaml:"extensions"`

	// Exclude patterns skip files or whole directories. Same matching
	// rules as the analyzer exclude globs: directory prefixes
	// ("build/") and file suffixes (".min.js").
	Exclude []string `yaml:"exclude,omitempty"`
}

// HistoryConfig configures run-history persistence.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded at all.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database location, relative to ReportDir
	// unless absolute.
	Path string `yaml:"path,omitempty"`
}

// DefaultConfig returns the built-in configuration rooted at root.
func DefaultConfig(root string) *Config {
	return &Config{
		ProjectRoot: root,
		SourceDir:   ".",
		ReportDir:   "code_analysis_reports",
		Scanner: ScannerConfig{
			Markers: []string{
				"@Deprecated",
				"deprecated(",
				"DeprecationWarning",
				"PendingDeprecationWarning",
				"# TODO: Remove",
				"# FIXME:",
				"# XXX:",
			},
			Extensions: []string{".kt", ".java", ".py", ".xml", ".gradle"},
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "history.db",
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults for root.
// Fields absent from the file keep their default values.
func Load(path, root string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig(root)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return cfg, nil
}

// SaveDefault writes the default configuration to a file so users have
// a template to edit.
func SaveDefault(path, root string) error {
	data, err := yaml.Marshal(DefaultConfig(root))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SourcePath returns the absolute source tree path.
func (c *Config) SourcePath() string {
	return c.resolve(c.SourceDir)
}

// ReportPath returns the absolute report directory path.
func (c *Config) ReportPath() string {
	return c.resolve(c.ReportDir)
}

// HistoryPath returns the absolute run-history database path.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(c.ReportPath(), c.History.Path)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}
