package check

import (
	"path/filepath"

	"github.com/codegate/codegate/internal/config"
)

// PythonBin is the interpreter used to invoke the analyzer modules.
// Every analyzer in the battery is a pip-installed module, so they all
// run as `python3 -m <module> ...`.
const PythonBin = "python3"

// SecretsMarker is the phrase detect-secrets prints when it finds
// candidate secrets. Its exit code is not meaningful for this.
const SecretsMarker = "Potential secrets about to be committed"

// Battery returns the fixed, ordered list of external checks for cfg.
// Flags and exclusion globs are deliberately hardcoded per check; the
// config only contributes the paths.
func Battery(cfg *config.Config) []Check {
	src := cfg.SourcePath()
	root := cfg.ProjectRoot

	return []Check{
		{
			Name:    "flake8",
			Section: "analyzing code quality",
			Argv: []string{
				PythonBin, "-m", "flake8",
				"--max-line-length=120",
				"--exclude=*/build/*,*/tmp/*,*/migrations/*,*/venv/*",
				src,
			},
			Dir:        root,
			ReportFile: "flake8_report.txt",
			Predicate:  Predicate{Kind: PredicateExitCode},
		},
		{
			Name:    "pylint",
			Section: "analyzing code quality",
			Argv: []string{
				PythonBin, "-m", "pylint",
				"--rcfile=.pylintrc",
				"--output-format=text",
				src,
			},
			Dir:        root,
			ReportFile: "pylint_report.txt",
			// pylint's exit code encodes message categories, not
			// pass/fail. The report content carries the verdict.
			Predicate: Predicate{Kind: PredicateNone},
		},
		{
			Name:    "radon-cc",
			Section: "searching for duplicate code",
			Argv: []string{
				PythonBin, "-m", "radon", "cc",
				"-a", "-nb", "-s",
				src,
			},
			Dir:        root,
			ReportFile: "radon_cc_report.txt",
			Predicate:  Predicate{Kind: PredicateNone},
		},
		{
			Name:    "radon-dupes",
			Section: "searching for duplicate code",
			Argv: []string{
				PythonBin, "-m", "radon", "dupes",
				"-s",
				src,
			},
			Dir:        root,
			ReportFile: "duplicate_code_report.txt",
			Predicate:  Predicate{Kind: PredicateContentEmpty},
		},
		{
			Name:    "vulture",
			Section: "searching for unused code",
			Argv: []string{
				PythonBin, "-m", "vulture",
				"--min-confidence=70",
				"--exclude=venv",
				src,
			},
			Dir:        root,
			ReportFile: "unused_code_report.txt",
			Predicate:  Predicate{Kind: PredicateContentEmpty},
		},
		{
			Name:    "bandit",
			Section: "checking security issues",
			Argv: []string{
				PythonBin, "-m", "bandit",
				"-r",
				"-f", "txt",
				src,
			},
			Dir:        root,
			ReportFile: "security_report.txt",
			Predicate:  Predicate{Kind: PredicateExitCode},
		},
		{
			Name:    "detect-secrets",
			Section: "checking security issues",
			Argv: []string{
				PythonBin, "-m", "detect_secrets", "scan",
				"--exclude-files", "package-lock.json|yarn.lock|*.min.js",
				"--exclude-lines", "password|secret|key|token",
				"--baseline", filepath.Join(cfg.ReportPath(), ".secrets.baseline"),
				root,
			},
			Dir:        root,
			ReportFile: "secrets_report.txt",
			Predicate:  Predicate{Kind: PredicatePhrase, Phrase: SecretsMarker},
		},
		{
			Name:    "black",
			Section: "checking code format",
			Argv: []string{
				PythonBin, "-m", "black",
				"--check",
				"--diff",
				"--exclude", "venv",
				src,
			},
			Dir:        root,
			ReportFile: "code_format_report.txt",
			Predicate:  Predicate{Kind: PredicateExitCode},
		},
	}
}
