package ui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jesspatton/lazyjest/catalog"
)

// A screen is one entry in the navigation stack. Forward navigation
// pushes, back navigation pops; the bottom of the stack is always the
// file list.
type screen interface {
	title() string
}

// fileListScreen lists every test file in the catalog.
type fileListScreen struct {
	cursor int
}

func (*fileListScreen) title() string { return "Test Files" }

// fileContentsScreen shows a test file's source in a viewport.
type fileContentsScreen struct {
	file *catalog.TestFile
	vp   viewport.Model
}

func (s *fileContentsScreen) title() string { return s.file.RelPath }

// caseListScreen lists the cases extracted from one file.
type caseListScreen struct {
	file   *catalog.TestFile
	cursor int
}

func (s *caseListScreen) title() string { return s.file.RelPath }

// runningScreen streams the output of the current (or last) run.
type runningScreen struct {
	file *catalog.TestFile
	vp   viewport.Model
	// follow keeps the viewport pinned to the bottom until the user
	// scrolls manually.
	follow bool
}

func (*runningScreen) title() string { return "Run Output" }

// caseResultsScreen lists per-case results after a run.
type caseResultsScreen struct {
	file   *catalog.TestFile
	cursor int
}

func (s *caseResultsScreen) title() string { return "Case Results" }

// top returns the active screen. The stack is never empty.
func (m *Model) top() screen {
	return m.stack[len(m.stack)-1]
}

func (m *Model) push(s screen) {
	m.stack = append(m.stack, s)
}

// pop removes the active screen, keeping the file list at the bottom.
func (m *Model) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// clampCursor keeps a list cursor inside [0, n). An empty list has no
// valid selection; the cursor parks at 0.
func clampCursor(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
