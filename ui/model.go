package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jesspatton/lazyjest/catalog"
	"github.com/jesspatton/lazyjest/engine"
	"github.com/jesspatton/lazyjest/runner"
)

// Model is the Bubble Tea model: a stack of screens over the engine's
// state. The bottom of the stack is always the file list.
type Model struct {
	engine *engine.Engine

	stack []screen
	keys  KeyMap
	help  help.Model

	width    int
	height   int
	ready    bool
	showHelp bool

	// notice is a transient one-line message (clipboard feedback).
	notice    string
	noticeErr bool
}

// NewModel creates the model for the given root path.
func NewModel(root string) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	return Model{
		engine: engine.New(root),
		stack:  []screen{&fileListScreen{}},
		keys:   NewKeyMap(),
		help:   h,
	}
}

// Init starts the engine's side effects.
func (m Model) Init() tea.Cmd {
	return m.engine.Init()
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.showHelp {
			return m, nil
		}

		switch s := m.top().(type) {
		case *fileListScreen:
			return m.updateFileList(s, msg)
		case *fileContentsScreen:
			return m.updateFileContents(s, msg)
		case *caseListScreen:
			return m.updateCaseList(s, msg)
		case *runningScreen:
			return m.updateRunning(s, msg)
		case *caseResultsScreen:
			return m.updateCaseResults(s, msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		w, h := m.bodySize()
		for _, s := range m.stack {
			switch s := s.(type) {
			case *fileContentsScreen:
				s.vp.Width = w
				s.vp.Height = h
			case *runningScreen:
				s.vp.Width = w
				s.vp.Height = h
			}
		}
		return m, nil

	default:
		cmd := m.engine.Update(msg)
		m.afterEngine(msg)
		return m, cmd
	}
}

// afterEngine reconciles screens with state the engine just changed.
func (m *Model) afterEngine(msg tea.Msg) {
	switch msg.(type) {
	case engine.CatalogLoadedMsg:
		// The catalog was swapped; re-clamp every file list cursor.
		n := m.engine.State.Catalog.Len()
		for _, s := range m.stack {
			if fl, ok := s.(*fileListScreen); ok {
				fl.cursor = clampCursor(fl.cursor, n)
			}
		}

	case runner.OutputUpdate, runner.StatusUpdate, engine.SpawnFailedMsg:
		if rs, ok := m.top().(*runningScreen); ok {
			rs.vp.SetContent(m.engine.State.Output.String())
			if rs.follow {
				rs.vp.GotoBottom()
			}
		}
	}
}

// Per-screen key handling

func (m Model) updateFileList(s *fileListScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	files := m.files()

	switch {
	case key.Matches(msg, m.keys.Up):
		s.cursor = clampCursor(s.cursor-1, len(files))
	case key.Matches(msg, m.keys.Down):
		s.cursor = clampCursor(s.cursor+1, len(files))
	case key.Matches(msg, m.keys.PageUp):
		s.cursor = clampCursor(s.cursor-10, len(files))
	case key.Matches(msg, m.keys.PageDown):
		s.cursor = clampCursor(s.cursor+10, len(files))
	case key.Matches(msg, m.keys.Home):
		s.cursor = 0
	case key.Matches(msg, m.keys.End):
		s.cursor = clampCursor(len(files)-1, len(files))

	case key.Matches(msg, m.keys.Right):
		if file := m.selectedFile(s); file != nil {
			m.push(&caseListScreen{file: file})
		}
	case key.Matches(msg, m.keys.ViewFile):
		if file := m.selectedFile(s); file != nil {
			m.push(m.newContentsScreen(file))
		}
	case key.Matches(msg, m.keys.Enter):
		if file := m.selectedFile(s); file != nil {
			return m.startRun(file, nil)
		}
	case key.Matches(msg, m.keys.ReRunLast):
		if cmd := m.engine.ReRunLast(); cmd != nil {
			m.push(m.newRunningScreen(m.engine.State.LastFile))
			return m, cmd
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.engine.RefreshCatalog
	}
	return m, nil
}

func (m Model) updateFileContents(s *fileContentsScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.pop()
	case key.Matches(msg, m.keys.Enter):
		return m.startRun(s.file, nil)
	case key.Matches(msg, m.keys.Home):
		s.vp.GotoTop()
	case key.Matches(msg, m.keys.End):
		s.vp.GotoBottom()
	default:
		var cmd tea.Cmd
		s.vp, cmd = s.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCaseList(s *caseListScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(s.file.Cases)

	switch {
	case key.Matches(msg, m.keys.Up):
		s.cursor = clampCursor(s.cursor-1, n)
	case key.Matches(msg, m.keys.Down):
		s.cursor = clampCursor(s.cursor+1, n)
	case key.Matches(msg, m.keys.Home):
		s.cursor = 0
	case key.Matches(msg, m.keys.End):
		s.cursor = clampCursor(n-1, n)
	case key.Matches(msg, m.keys.Left):
		m.pop()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		if n > 0 {
			return m.startRun(s.file, s.file.Cases[s.cursor])
		}
	}
	return m, nil
}

func (m Model) updateRunning(s *runningScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.engine.Running() {
			m.engine.Cancel()
		}
		m.pop()
	case key.Matches(msg, m.keys.Right):
		if !m.engine.Running() && m.engine.HasResults() {
			m.push(&caseResultsScreen{file: s.file})
		}
	case key.Matches(msg, m.keys.Enter):
		if m.engine.Running() {
			return m, nil
		}
		if m.engine.HasResults() {
			m.push(&caseResultsScreen{file: s.file})
		} else {
			m.copyCommand()
		}
	case key.Matches(msg, m.keys.Home):
		s.vp.GotoTop()
		s.follow = false
	case key.Matches(msg, m.keys.End):
		s.vp.GotoBottom()
		s.follow = true
	default:
		var cmd tea.Cmd
		s.vp, cmd = s.vp.Update(msg)
		s.follow = s.vp.AtBottom()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCaseResults(s *caseResultsScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(s.file.Cases)

	switch {
	case key.Matches(msg, m.keys.Up):
		s.cursor = clampCursor(s.cursor-1, n)
	case key.Matches(msg, m.keys.Down):
		s.cursor = clampCursor(s.cursor+1, n)
	case key.Matches(msg, m.keys.Left):
		m.pop()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		if n > 0 {
			return m.startRun(s.file, s.file.Cases[s.cursor])
		}
	}
	return m, nil
}

// Helpers

// startRun asks the engine for a run and pushes the running screen when
// one actually starts. While a process is in flight the engine refuses,
// and the keypress is a no-op.
func (m Model) startRun(file *catalog.TestFile, c *catalog.TestCase) (tea.Model, tea.Cmd) {
	cmd := m.engine.StartRun(file, c)
	if cmd == nil {
		return m, nil
	}
	m.push(m.newRunningScreen(file))
	return m, cmd
}

func (m *Model) newRunningScreen(file *catalog.TestFile) *runningScreen {
	w, h := m.bodySize()
	s := &runningScreen{file: file, vp: viewport.New(w, h), follow: true}
	s.vp.SetContent(m.engine.State.Output.String())
	return s
}

func (m *Model) newContentsScreen(file *catalog.TestFile) *fileContentsScreen {
	w, h := m.bodySize()
	s := &fileContentsScreen{file: file, vp: viewport.New(w, h)}
	src, err := file.Source()
	if err != nil {
		src = fmt.Sprintf("error reading file: %v", err)
	}
	s.vp.SetContent(src)
	return s
}

func (m *Model) copyCommand() {
	if err := clipboard.WriteAll(m.engine.State.Display); err != nil {
		m.notice = fmt.Sprintf("clipboard unavailable: %v", err)
		m.noticeErr = true
		return
	}
	m.notice = "command copied to clipboard"
	m.noticeErr = false
}

func (m *Model) files() []*catalog.TestFile {
	if m.engine.State.Catalog == nil {
		return nil
	}
	return m.engine.State.Catalog.Files
}

func (m *Model) selectedFile(s *fileListScreen) *catalog.TestFile {
	files := m.files()
	if len(files) == 0 || s.cursor >= len(files) {
		return nil
	}
	return files[s.cursor]
}

// bodySize returns the inner size available to a screen body: the frame
// border and padding, the two header lines and the footer line are gone.
func (m *Model) bodySize() (w, h int) {
	w = m.width - 4
	h = m.height - 5
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
