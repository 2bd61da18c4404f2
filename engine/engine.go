package engine

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jesspatton/lazyjest/catalog"
	"github.com/jesspatton/lazyjest/filesystem"
	"github.com/jesspatton/lazyjest/runner"
)

// Messages

// CatalogLoadedMsg carries a freshly built catalog.
type CatalogLoadedMsg *catalog.Catalog

// WatcherMsg indicates a file system event occurred.
type WatcherMsg string

// WatcherReadyMsg carries the initialized watcher.
type WatcherReadyMsg struct {
	watcher *filesystem.Watcher
}

// SpawnFailedMsg reports that the test process could not be started.
type SpawnFailedMsg struct {
	Err error
}

// Engine owns the catalog, the test runner and the watcher, and exposes
// the side-effecting operations as tea.Cmd values. The UI layer calls
// into it and renders its State.
type Engine struct {
	State   State
	runner  *runner.Runner
	watcher *filesystem.Watcher
}

// New creates an Engine for root, loading .lazyjest.yml if present.
func New(root string) *Engine {
	return &Engine{
		State:  NewState(root, runner.LoadConfig(root)),
		runner: runner.NewRunner(),
	}
}

// Init starts the engine's side effects: the initial catalog build, the
// filesystem watcher and the runner update pump.
func (e *Engine) Init() tea.Cmd {
	return tea.Batch(
		e.RefreshCatalog,
		e.startWatcher,
		e.waitForUpdates,
	)
}

// Update handles engine-level messages and returns follow-up commands.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WatcherReadyMsg:
		e.watcher = msg.watcher
		return e.waitForWatcherEvents

	case WatcherMsg:
		return tea.Batch(e.RefreshCatalog, e.waitForWatcherEvents)

	case CatalogLoadedMsg:
		e.swapCatalog((*catalog.Catalog)(msg))
		return nil

	case runner.OutputUpdate:
		e.State.Output.Append(string(msg))
		return e.waitForUpdates

	case runner.StatusUpdate:
		e.finishRun(msg)
		return e.waitForUpdates

	case SpawnFailedMsg:
		e.failSpawn(msg.Err)
		return nil
	}

	return nil
}

// Actions

// StartRun launches the external runner for target's file. At most one
// test process may be alive at a time; while one is, this is a no-op.
func (e *Engine) StartRun(file *catalog.TestFile, caseFilter *catalog.TestCase) tea.Cmd {
	if e.Running() || file == nil {
		return nil
	}

	target := runner.RunTarget{File: file.RelPath}
	if caseFilter != nil {
		target.Case = caseFilter.FullName()
	}

	argv, display := runner.BuildCommand(e.State.Config, target)

	e.State.RunningFile = file
	e.State.RunningTarget = &target
	e.State.LastFile = file
	e.State.LastCase = caseFilter
	e.State.LastTarget = &target
	e.State.Display = display
	e.State.Finished = false
	e.State.LastStatus = nil
	e.State.Output = runner.NewOutputBuffer(0)
	e.State.Output.Append("$ " + display)
	e.State.Output.Append("")

	file.Status = catalog.StatusRunning
	e.State.runningCase = caseFilter
	if caseFilter != nil {
		e.State.prevCaseStatus = caseFilter.Status
		caseFilter.Status = catalog.StatusRunning
	}

	r, dir := e.runner, e.State.RootPath
	return func() tea.Msg {
		if err := r.Start(argv, dir); err != nil {
			return SpawnFailedMsg{Err: err}
		}
		return nil
	}
}

// ReRunLast repeats the previous run, if any.
func (e *Engine) ReRunLast() tea.Cmd {
	if e.State.LastFile == nil {
		return nil
	}
	return e.StartRun(e.State.LastFile, e.State.LastCase)
}

// Cancel requests termination of the in-flight process, if any.
func (e *Engine) Cancel() {
	e.runner.Kill()
}

// Running reports whether a test process is in flight.
func (e *Engine) Running() bool {
	return e.State.RunningTarget != nil && !e.State.Finished
}

// HasResults reports whether the last run produced per-case statuses for
// the file it targeted.
func (e *Engine) HasResults() bool {
	if e.State.LastFile == nil {
		return false
	}
	for _, c := range e.State.LastFile.Cases {
		if c.Status == catalog.StatusPassed || c.Status == catalog.StatusFailed {
			return true
		}
	}
	return false
}

// swapCatalog installs a freshly built catalog, carrying prior results
// over and re-pointing run state at the new file objects so a refresh
// mid-run still maps results somewhere visible.
func (e *Engine) swapCatalog(cat *catalog.Catalog) {
	cat.AdoptStatuses(e.State.Catalog)
	e.State.Catalog = cat

	if e.State.RunningFile != nil {
		if f := cat.FileByPath(e.State.RunningFile.Path); f != nil {
			f.Status = catalog.StatusRunning
			e.State.RunningFile = f
			if c := e.State.runningCase; c != nil {
				e.State.runningCase = findCase(f, c.ComposedName())
				if e.State.runningCase != nil {
					e.State.runningCase.Status = catalog.StatusRunning
				}
			}
		}
	}
	if e.State.LastFile != nil {
		if f := cat.FileByPath(e.State.LastFile.Path); f != nil {
			e.State.LastFile = f
			if e.State.LastCase != nil {
				e.State.LastCase = findCase(f, e.State.LastCase.ComposedName())
			}
		}
	}
}

func findCase(f *catalog.TestFile, composed string) *catalog.TestCase {
	for _, c := range f.Cases {
		if c.ComposedName() == composed {
			return c
		}
	}
	return nil
}

// finishRun records the terminal state and maps output back onto cases.
func (e *Engine) finishRun(status runner.StatusUpdate) {
	file := e.State.RunningFile
	if file == nil {
		return
	}

	switch {
	case status.Killed:
		e.State.Output.Append("")
		e.State.Output.Append("[run cancelled]")
	case status.Err == nil:
		e.State.Output.Append("")
		e.State.Output.Append("PASS")
	default:
		e.State.Output.Append("")
		e.State.Output.Append(fmt.Sprintf("FAIL: %v", status.Err))
	}

	catalog.ApplyResults(file, e.State.Output.Lines(), e.markers())

	// A single-case run whose filter matched nothing leaves the case
	// unreported; restore whatever status it had before.
	if c := e.State.runningCase; c != nil && c.Status == catalog.StatusRunning {
		c.Status = e.State.prevCaseStatus
		file.RecomputeStatus()
	}

	// A whole-file run with no recognizable per-case markers still has a
	// definitive exit code.
	if file.Status == catalog.StatusRunning {
		if status.Killed {
			file.Status = catalog.StatusNotRun
		} else if status.Err == nil {
			file.Status = catalog.StatusPassed
		} else {
			file.Status = catalog.StatusFailed
		}
	}

	e.State.Finished = true
	e.State.LastStatus = &status
	e.State.RunningFile = nil
	e.State.RunningTarget = nil
}

// failSpawn surfaces a spawn error as the run's output and terminal state.
func (e *Engine) failSpawn(err error) {
	file := e.State.RunningFile
	if file == nil {
		return
	}

	e.State.Output.Append(fmt.Sprintf("error: %v", err))
	e.State.Output.Append("")
	e.State.Output.Append("could not start the test runner; is it installed?")

	if c := e.State.runningCase; c != nil && c.Status == catalog.StatusRunning {
		c.Status = e.State.prevCaseStatus
	}
	file.Status = catalog.StatusFailed

	e.State.Finished = true
	e.State.LastStatus = &runner.StatusUpdate{Err: err}
	e.State.RunningFile = nil
	e.State.RunningTarget = nil
}

func (e *Engine) markers() catalog.Markers {
	return catalog.Markers{
		Pass: e.State.Config.PassMarkers,
		Fail: e.State.Config.FailMarkers,
	}
}

// Commands

// RefreshCatalog rebuilds the catalog from disk. The old catalog stays in
// place when the rebuild fails.
func (e *Engine) RefreshCatalog() tea.Msg {
	cat, err := catalog.Build(e.State.RootPath, e.State.Config.TestPatterns)
	if err != nil {
		log.Println("catalog refresh:", err)
		return nil
	}
	return CatalogLoadedMsg(cat)
}

func (e *Engine) startWatcher() tea.Msg {
	w, err := filesystem.NewWatcher(e.State.RootPath)
	if err != nil {
		return nil
	}
	return WatcherReadyMsg{watcher: w}
}

func (e *Engine) waitForWatcherEvents() tea.Msg {
	if e.watcher == nil {
		return nil
	}
	path, ok := <-e.watcher.Events
	if !ok {
		return nil
	}
	return WatcherMsg(path)
}

func (e *Engine) waitForUpdates() tea.Msg {
	update, ok := <-e.runner.Updates
	if !ok {
		return nil
	}
	return tea.Msg(update)
}

// Close shuts down the watcher and kills any in-flight process.
func (e *Engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
	}
	e.runner.Kill()
}
