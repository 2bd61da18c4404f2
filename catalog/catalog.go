package catalog

import (
	"os"
	"strings"
)

// Status represents the run state of a test case or file.
type Status int

const (
	// StatusNotRun indicates the test has not been executed yet.
	StatusNotRun Status = iota
	// StatusRunning indicates the test is currently executing.
	StatusRunning
	// StatusPassed indicates the last run passed.
	StatusPassed
	// StatusFailed indicates the last run failed.
	StatusFailed
)

// String returns a short human-readable label for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "not run"
	}
}

// TestCase is a single it/test declaration found in a test file.
// Names are not guaranteed unique within a file, so Index disambiguates.
type TestCase struct {
	// Name is the leaf name as written in the source.
	Name string
	// Containers holds the enclosing describe names, outermost first.
	Containers []string
	// Line is the 1-based source line of the declaration.
	Line int
	// Index is the declaration order within the file.
	Index int
	// Status is updated by ApplyResults after a run.
	Status Status
}

// ComposedName joins the container chain and the leaf name with " > "
// for display.
func (c *TestCase) ComposedName() string {
	if len(c.Containers) == 0 {
		return c.Name
	}
	return strings.Join(c.Containers, " > ") + " > " + c.Name
}

// FullName joins the chain with single spaces. This is the name Jest
// itself composes, so it is what --testNamePattern must match.
func (c *TestCase) FullName() string {
	if len(c.Containers) == 0 {
		return c.Name
	}
	return strings.Join(c.Containers, " ") + " " + c.Name
}

// TestFile is one discovered test file and its cases in source order.
type TestFile struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the path relative to the catalog root, used for
	// display and for the runner command line.
	RelPath string
	// Cases are the extracted test cases in declaration order.
	Cases []*TestCase
	// Status summarizes the last run of this file.
	Status Status

	source string
	loaded bool
}

// Source returns the file contents, reading them on first use.
func (f *TestFile) Source() (string, error) {
	if f.loaded {
		return f.source, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	f.source = string(data)
	f.loaded = true
	return f.source, nil
}

// RecomputeStatus derives the file's aggregate status from its cases:
// failed if any case failed, running if any is still running, passed if
// every case has passed, otherwise not run.
func (f *TestFile) RecomputeStatus() {
	if len(f.Cases) == 0 {
		return
	}
	allPassed := true
	anyReported := false
	for _, c := range f.Cases {
		switch c.Status {
		case StatusFailed:
			f.Status = StatusFailed
			return
		case StatusRunning:
			f.Status = StatusRunning
			return
		case StatusPassed:
			anyReported = true
		default:
			allPassed = false
		}
	}
	if allPassed {
		f.Status = StatusPassed
	} else if anyReported {
		// Partial information, e.g. a single-case run. Keep whatever
		// aggregate we had rather than inventing one.
		if f.Status == StatusRunning {
			f.Status = StatusNotRun
		}
	} else {
		f.Status = StatusNotRun
	}
}

// Catalog is the full ordered set of discovered test files. It is built
// once and replaced wholesale on refresh, never mutated in place except
// for case statuses after a run.
type Catalog struct {
	Root  string
	Files []*TestFile
}

// FileByPath returns the file with the given absolute path, or nil.
func (c *Catalog) FileByPath(path string) *TestFile {
	if c == nil {
		return nil
	}
	for _, f := range c.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// AdoptStatuses carries run results over from the previous catalog so a
// refresh does not wipe them. Files match by path, cases by composed name
// in declaration order; running statuses are not carried, the in-flight
// run re-marks its own target.
func (c *Catalog) AdoptStatuses(old *Catalog) {
	if c == nil || old == nil {
		return
	}
	for _, f := range c.Files {
		prev := old.FileByPath(f.Path)
		if prev == nil {
			continue
		}
		used := make(map[*TestCase]bool)
		for _, tc := range f.Cases {
			for _, pc := range prev.Cases {
				if used[pc] || pc.ComposedName() != tc.ComposedName() {
					continue
				}
				used[pc] = true
				if pc.Status == StatusPassed || pc.Status == StatusFailed {
					tc.Status = pc.Status
				}
				break
			}
		}
		f.RecomputeStatus()
	}
}

// Len returns the number of files in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Files)
}
