package filesystem

import (
	"path/filepath"
	"strings"
)

// DefaultTestPatterns are the file name suffixes treated as test files
// when the project config does not override them.
var DefaultTestPatterns = []string{
	".test.ts", ".test.js", ".test.tsx", ".test.jsx",
	".spec.ts", ".spec.js", ".spec.tsx", ".spec.jsx",
}

var ignoredDirs = []string{"node_modules", ".git", "dist", "build", "coverage"}

// IgnoredDirs returns directory names excluded from every scan.
func IgnoredDirs() []string {
	return ignoredDirs
}

// IsTestFile reports whether path names a test file: either its base name
// matches one of the configured suffix patterns, or it is a source file
// inside a __tests__ directory (the Jest default).
func IsTestFile(path string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultTestPatterns
	}
	base := filepath.Base(path)
	for _, p := range patterns {
		if strings.HasSuffix(base, p) {
			return true
		}
	}
	if IsSourceFile(base) {
		dir := filepath.Dir(path)
		for dir != "." && dir != string(filepath.Separator) {
			if filepath.Base(dir) == "__tests__" {
				return true
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return false
}

// IsSourceFile reports whether the name has a JS/TS source extension.
func IsSourceFile(name string) bool {
	for _, ext := range []string{".ts", ".js", ".tsx", ".jsx", ".mjs", ".cjs"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
