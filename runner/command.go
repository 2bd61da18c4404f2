package runner

import (
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
)

// RunTarget describes one runner invocation: a test file, optionally
// narrowed to a single case by its full composed name.
type RunTarget struct {
	// File is the test file path passed to the runner.
	File string
	// Case is the full case name (container chain plus leaf, space
	// joined). Empty means run the whole file.
	Case string
}

// BuildCommand expands the configured command template for the target and
// returns the argument vector plus a shell-quoted display string. The
// display string is what gets copied to the clipboard, so quoting must
// keep it directly re-runnable.
func BuildCommand(cfg Config, target RunTarget) (argv []string, display string) {
	template := cfg.Command
	if template == "" {
		template = DefaultConfig().Command
	}

	parts, err := shellquote.Split(template)
	if err != nil {
		parts = strings.Fields(template)
	}

	replaced := false
	for _, part := range parts {
		if strings.Contains(part, "<path>") {
			part = strings.ReplaceAll(part, "<path>", target.File)
			replaced = true
		}
		argv = append(argv, part)
	}
	if !replaced {
		argv = append(argv, target.File)
	}

	if target.Case != "" {
		// Anchored exact match, the runner treats the filter as a regex.
		argv = append(argv, "--testNamePattern", "^"+regexp.QuoteMeta(target.Case)+"$")
	}

	return argv, shellquote.Join(argv...)
}
