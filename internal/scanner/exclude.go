package scanner

import "strings"

// shouldExcludePath checks if a relative path matches any exclude
// patterns. Patterns can be:
//   - Directory prefixes: "build/" matches "build/gen.kt"
//   - File suffixes: ".min.js" matches "lib/app.min.js"
//   - Anywhere in path: "venv/" matches "tools/venv/x.py"
//
// Matching happens at path component boundaries, so "build/" does not
// match "builders/foo.kt".
func shouldExcludePath(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasPrefix(relPath, pattern) {
			return true
		}
		if strings.Contains(relPath, "/"+pattern) {
			return true
		}
		if strings.HasSuffix(relPath, pattern) {
			return true
		}
	}
	return false
}
