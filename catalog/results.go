package catalog

import (
	"log"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Markers are the per-case status prefixes recognized in runner output.
type Markers struct {
	Pass []string
	Fail []string
}

// caseResult is one recognized status line from the output.
type caseResult struct {
	name   string
	passed bool
}

var durationSuffix = regexp.MustCompile(`\s*\(\d+(\.\d+)?\s*m?s\)$`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// ApplyResults scans final run output for per-case pass/fail markers and
// updates the statuses of file's cases. Cases not mentioned in the output
// (a run scoped to one case reports only that case) keep their prior
// status. Applying the same output twice yields the same statuses.
//
// Names are matched against the composed name, then the leaf name, then
// whitespace-collapsed forms. A name appearing more than once resolves to
// the first still-unresolved case in declaration order; true duplicates
// are indistinguishable in plain text output, a known limitation.
func ApplyResults(file *TestFile, lines []string, markers Markers) {
	results := scanResults(lines, markers)
	if len(results) == 0 {
		return
	}

	resolved := make(map[*TestCase]bool)
	for _, res := range results {
		c := matchCase(file.Cases, res.name, resolved)
		if c == nil {
			continue
		}
		if resolved[c] {
			log.Printf("results: ambiguous case name %q resolved to declaration %d", res.name, c.Index)
		}
		resolved[c] = true
		if res.passed {
			c.Status = StatusPassed
		} else {
			c.Status = StatusFailed
		}
	}

	file.RecomputeStatus()
}

func scanResults(lines []string, markers Markers) []caseResult {
	var results []caseResult
	for _, line := range lines {
		trimmed := strings.TrimSpace(ansi.Strip(line))
		if name, ok := matchMarker(trimmed, markers.Fail); ok {
			results = append(results, caseResult{name: name, passed: false})
			continue
		}
		if name, ok := matchMarker(trimmed, markers.Pass); ok {
			results = append(results, caseResult{name: name, passed: true})
		}
	}
	return results
}

func matchMarker(line string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(line, p); ok {
			name := strings.TrimSpace(durationSuffix.ReplaceAllString(rest, ""))
			if name == "" {
				return "", false
			}
			return name, true
		}
	}
	return "", false
}

// matchCase finds the case a reported name refers to. Each matching pass
// prefers the first unresolved case in declaration order and falls back to
// the first match overall so that re-applying output is idempotent.
func matchCase(cases []*TestCase, name string, resolved map[*TestCase]bool) *TestCase {
	passes := []func(*TestCase) bool{
		func(c *TestCase) bool { return c.ComposedName() == name },
		func(c *TestCase) bool { return c.Name == name },
		func(c *TestCase) bool { return collapse(c.ComposedName()) == collapse(name) },
		func(c *TestCase) bool { return collapse(c.Name) == collapse(name) },
	}

	for _, match := range passes {
		var first *TestCase
		for _, c := range cases {
			if !match(c) {
				continue
			}
			if first == nil {
				first = c
			}
			if !resolved[c] {
				return c
			}
		}
		if first != nil {
			return first
		}
	}
	return nil
}

func collapse(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
