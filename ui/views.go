package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jesspatton/lazyjest/catalog"
)

// View renders the active screen inside the application frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	w, h := m.bodySize()

	var body string
	switch s := m.top().(type) {
	case *fileListScreen:
		body = m.renderFileList(s, w, h)
	case *fileContentsScreen:
		body = s.vp.View()
	case *caseListScreen:
		body = m.renderCaseList(s, w, h)
	case *runningScreen:
		body = s.vp.View()
	case *caseResultsScreen:
		body = m.renderCaseResults(s, w, h)
	}

	frame := paneStyle.
		Width(m.width - 2).
		Height(h).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		frame,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	var title, subtitle string

	switch s := m.top().(type) {
	case *fileListScreen:
		title = "lazyjest"
		subtitle = fmt.Sprintf("%s (%d test files)", m.engine.State.RootPath, len(m.files()))
	case *fileContentsScreen:
		title = "File"
		subtitle = s.file.RelPath
	case *caseListScreen:
		title = "Test Cases"
		subtitle = fmt.Sprintf("%s (%d cases)", s.file.RelPath, len(s.file.Cases))
	case *runningScreen:
		title = m.runStateLabel()
		subtitle = m.engine.State.Display
	case *caseResultsScreen:
		title = "Case Results"
		subtitle = s.file.RelPath
	}

	return titleStyle.Render(title) + "\n" + subtitleStyle.Render(subtitle)
}

func (m Model) runStateLabel() string {
	if m.engine.Running() {
		return "Running..."
	}
	st := m.engine.State.LastStatus
	switch {
	case st == nil:
		return "Run Output"
	case st.Killed:
		return "Cancelled"
	case st.Err == nil:
		return passStyle.Render("PASS")
	default:
		return failStyle.Render("FAIL")
	}
}

func (m Model) renderFooter() string {
	if m.notice != "" {
		if m.noticeErr {
			return errNoticeStyle.Render(m.notice)
		}
		return noticeStyle.Render(m.notice)
	}
	return m.help.View(m.keys)
}

func (m Model) renderFileList(s *fileListScreen, width, height int) string {
	files := m.files()
	if m.engine.State.Catalog == nil {
		return "Scanning..."
	}
	if len(files) == 0 {
		return "No test files found."
	}

	var b strings.Builder
	start, end := visibleRange(s.cursor, len(files), height)
	for i := start; i < end; i++ {
		f := files[i]
		marker := " "
		if i == s.cursor {
			marker = ">"
		}
		line := fmt.Sprintf("%s %s %s (%d)", marker, statusIcon(f.Status), f.RelPath, len(f.Cases))
		if i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCaseList(s *caseListScreen, width, height int) string {
	if len(s.file.Cases) == 0 {
		return "No cases found in this file."
	}

	var b strings.Builder
	start, end := visibleRange(s.cursor, len(s.file.Cases), height)
	for i := start; i < end; i++ {
		c := s.file.Cases[i]
		marker := " "
		if i == s.cursor {
			marker = ">"
		}
		line := fmt.Sprintf("%s %s %s:%d", marker, statusIcon(c.Status), c.ComposedName(), c.Line)
		if i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderCaseResults(s *caseResultsScreen, width, height int) string {
	if len(s.file.Cases) == 0 {
		return "No cases to show."
	}

	var b strings.Builder
	start, end := visibleRange(s.cursor, len(s.file.Cases), height)
	for i := start; i < end; i++ {
		c := s.file.Cases[i]
		marker := " "
		if i == s.cursor {
			marker = ">"
		}
		line := fmt.Sprintf("%s %s %s [%s]", marker, statusIcon(c.Status), c.ComposedName(), c.Status)
		if i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusIcon(s catalog.Status) string {
	switch s {
	case catalog.StatusRunning:
		return "…"
	case catalog.StatusPassed:
		return passStyle.Render("✓")
	case catalog.StatusFailed:
		return failStyle.Render("✗")
	default:
		return dimStyle.Render("·")
	}
}

// visibleRange centers the cursor in a window of the given height.
func visibleRange(cursor, length, height int) (int, int) {
	if length <= height {
		return 0, length
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > length {
		end = length
		start = end - height
	}
	return start, end
}
