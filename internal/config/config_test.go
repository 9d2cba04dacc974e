package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/proj")

	assert.Equal(t, "/proj", cfg.ProjectRoot)
	assert.Equal(t, "/proj", cfg.SourcePath())
	assert.Equal(t, "/proj/code_analysis_reports", cfg.ReportPath())
	assert.Equal(t, "/proj/code_analysis_reports/history.db", cfg.HistoryPath())

	assert.Contains(t, cfg.Scanner.Markers, "@Deprecated")
	assert.Contains(t, cfg.Scanner.Markers, "# TODO: Remove")
	assert.Contains(t, cfg.Scanner.Extensions, ".kt")
	assert.Contains(t, cfg.Scanner.Extensions, ".gradle")
	assert.True(t, cfg.History.Enabled)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codegate.yaml")
	yaml := `
source_dir: app/src/main
report_dir: out/reports
scanner:
  exclude:
    - build/
history:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path, "/proj")
	require.NoError(t, err)

	assert.Equal(t, "/proj/app/src/main", cfg.SourcePath())
	assert.Equal(t, "/proj/out/reports", cfg.ReportPath())
	assert.Equal(t, []string{"build/"}, cfg.Scanner.Exclude)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/proj")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_dir: [unclosed"), 0644))

	_, err := Load(path, "/proj")
	assert.Error(t, err)
}

func TestSaveDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".codegate.yaml")
	require.NoError(t, SaveDefault(path, "/proj"))

	cfg, err := Load(path, "/proj")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig("/proj"), cfg)
}

func TestAbsolutePathsAreNotRerooted(t *testing.T) {
	cfg := DefaultConfig("/proj")
	cfg.SourceDir = "/elsewhere/src"
	cfg.ReportDir = "/var/reports"
	cfg.History.Path = "/var/history.db"

	assert.Equal(t, "/elsewhere/src", cfg.SourcePath())
	assert.Equal(t, "/var/reports", cfg.ReportPath())
	assert.Equal(t, "/var/history.db", cfg.HistoryPath())
}
