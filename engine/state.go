package engine

import (
	"github.com/jesspatton/lazyjest/catalog"
	"github.com/jesspatton/lazyjest/runner"
)

// State is the application's core data, owned by the Engine and read by
// the UI. The catalog is replaced wholesale on refresh; a render never
// observes a half-built one.
type State struct {
	RootPath string
	Config   runner.Config
	Catalog  *catalog.Catalog

	// Live run state. RunningFile/RunningTarget are nil while idle.
	RunningFile   *catalog.TestFile
	RunningTarget *runner.RunTarget
	LastFile      *catalog.TestFile
	LastCase      *catalog.TestCase
	LastTarget    *runner.RunTarget

	// Output of the current (or most recently finished) run.
	Output  *runner.OutputBuffer
	Display string // shell-quoted command, for the clipboard

	// Terminal state of the last finished run.
	Finished   bool
	LastStatus *runner.StatusUpdate

	// prevCaseStatus restores a single-case target that the output never
	// mentioned (e.g. the filter matched nothing).
	prevCaseStatus catalog.Status
	runningCase    *catalog.TestCase
}

// NewState creates the initial state for root.
func NewState(root string, cfg runner.Config) State {
	return State{
		RootPath: root,
		Config:   cfg,
		Output:   runner.NewOutputBuffer(0),
	}
}
