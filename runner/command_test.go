package runner

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/kballard/go-shellquote"
)

func TestBuildCommandFile(t *testing.T) {
	argv, display := BuildCommand(DefaultConfig(), RunTarget{File: "math.test.js"})

	want := []string{"npx", "jest", "math.test.js", "--colors"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
	if display != "npx jest math.test.js --colors" {
		t.Errorf("display = %q", display)
	}
}

func TestBuildCommandCase(t *testing.T) {
	argv, _ := BuildCommand(DefaultConfig(), RunTarget{
		File: "math.test.js",
		Case: "math adds",
	})

	want := []string{"npx", "jest", "math.test.js", "--colors", "--testNamePattern", "^math adds$"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}

func TestBuildCommandEscapesRegexMeta(t *testing.T) {
	argv, _ := BuildCommand(DefaultConfig(), RunTarget{
		File: "a.test.js",
		Case: "handles (parens) and $dollars",
	})

	pattern := argv[len(argv)-1]
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}
	if !re.MatchString("handles (parens) and $dollars") {
		t.Errorf("pattern %q does not match the literal name", pattern)
	}
	if re.MatchString("handles (parens) and $dollars extra") {
		t.Errorf("pattern %q is not anchored", pattern)
	}
}

func TestBuildCommandNoPlaceholder(t *testing.T) {
	cfg := Config{Command: "yarn test"}
	argv, _ := BuildCommand(cfg, RunTarget{File: "a.test.js"})

	want := []string{"yarn", "test", "a.test.js"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}

func TestBuildCommandQuotedTemplate(t *testing.T) {
	cfg := Config{Command: `npx jest <path> --reporters "jest-silent-reporter"`}
	argv, _ := BuildCommand(cfg, RunTarget{File: "a.test.js"})

	want := []string{"npx", "jest", "a.test.js", "--reporters", "jest-silent-reporter"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}

// The display string is copied to the clipboard for re-running by hand, so
// splitting it back must recover the exact argument vector.
func TestDisplayRoundTrip(t *testing.T) {
	targets := []RunTarget{
		{File: "math.test.js"},
		{File: "dir with spaces/math.test.js"},
		{File: "a.test.js", Case: "it's got 'quotes' and spaces"},
		{File: "a.test.js", Case: `backslash \ and "double quotes"`},
	}

	for _, target := range targets {
		argv, display := BuildCommand(DefaultConfig(), target)
		back, err := shellquote.Split(display)
		if err != nil {
			t.Errorf("target %+v: split failed: %v", target, err)
			continue
		}
		if !reflect.DeepEqual(back, argv) {
			t.Errorf("target %+v: round trip %v != argv %v", target, back, argv)
		}
	}
}
