package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jesspatton/lazyjest/catalog"
	"github.com/jesspatton/lazyjest/runner"
)

func newTestFile(names ...string) *catalog.TestFile {
	f := &catalog.TestFile{Path: "/tmp/math.test.js", RelPath: "math.test.js"}
	for i, name := range names {
		f.Cases = append(f.Cases, &catalog.TestCase{Name: name, Index: i})
	}
	return f
}

// pump feeds runner updates back into the engine the way the message loop
// does, until the run reaches a terminal status or the timeout fires.
func pump(t *testing.T, e *Engine) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case update := <-e.runner.Updates:
			e.Update(update)
			if _, ok := update.(runner.StatusUpdate); ok {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for run to finish")
		}
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	e := New(dir)

	if e.State.RootPath != dir {
		t.Errorf("root = %q, want %q", e.State.RootPath, dir)
	}
	if e.State.Config.Command == "" {
		t.Error("expected a default command")
	}
	if e.runner == nil {
		t.Error("expected runner to be initialized")
	}
}

func TestRefreshCatalog(t *testing.T) {
	dir := t.TempDir()
	src := "test('adds', () => {});\ntest('subtracts', () => {});\n"
	if err := os.WriteFile(filepath.Join(dir, "math.test.js"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(dir)
	msg := e.RefreshCatalog()

	loaded, ok := msg.(CatalogLoadedMsg)
	if !ok {
		t.Fatalf("expected CatalogLoadedMsg, got %T", msg)
	}
	e.Update(loaded)

	if e.State.Catalog.Len() != 1 {
		t.Fatalf("expected 1 file, got %d", e.State.Catalog.Len())
	}
	if got := len(e.State.Catalog.Files[0].Cases); got != 2 {
		t.Errorf("expected 2 cases, got %d", got)
	}
}

func TestStartRunSetsState(t *testing.T) {
	e := New(t.TempDir())
	file := newTestFile("adds")

	cmd := e.StartRun(file, nil)
	if cmd == nil {
		t.Fatal("expected a command")
	}

	if !e.Running() {
		t.Error("expected engine to report running")
	}
	if file.Status != catalog.StatusRunning {
		t.Errorf("file status = %v, want running", file.Status)
	}
	if !strings.Contains(e.State.Display, "math.test.js") {
		t.Errorf("display = %q", e.State.Display)
	}
	lines := e.State.Output.Lines()
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "$ ") {
		t.Errorf("output should start with the command line, got %v", lines)
	}

	// At most one live run: a second request is a no-op.
	if again := e.StartRun(file, nil); again != nil {
		t.Error("expected nil command while a run is in flight")
	}
}

func TestRunLifecycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix shell commands")
	}

	dir := t.TempDir()
	cfg := "command: echo hello from <path>\n"
	if err := os.WriteFile(filepath.Join(dir, ".lazyjest.yml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(dir)
	file := newTestFile("adds")

	cmd := e.StartRun(file, nil)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	go func() {
		if msg := cmd(); msg != nil {
			t.Errorf("unexpected spawn failure: %v", msg)
		}
	}()

	pump(t, e)

	if !e.State.Finished {
		t.Error("expected run to be finished")
	}
	if e.Running() {
		t.Error("engine still reports running")
	}
	if e.State.LastStatus == nil || e.State.LastStatus.Err != nil {
		t.Errorf("unexpected status: %+v", e.State.LastStatus)
	}
	if !strings.Contains(e.State.Output.String(), "hello from math.test.js") {
		t.Errorf("output missing echo line:\n%s", e.State.Output.String())
	}
	// No per-case markers, so the exit code decides the file status.
	if file.Status != catalog.StatusPassed {
		t.Errorf("file status = %v, want passed", file.Status)
	}
}

func TestResultMapping(t *testing.T) {
	e := New(t.TempDir())
	file := newTestFile("adds", "subtracts")

	if cmd := e.StartRun(file, nil); cmd == nil {
		t.Fatal("expected a command")
	}

	// Inject output as the message loop would deliver it.
	e.Update(runner.OutputUpdate("✓ adds (2 ms)"))
	e.Update(runner.OutputUpdate("✕ subtracts (1 ms)"))
	e.Update(runner.StatusUpdate{Err: nil})

	if file.Cases[0].Status != catalog.StatusPassed {
		t.Errorf("adds = %v, want passed", file.Cases[0].Status)
	}
	if file.Cases[1].Status != catalog.StatusFailed {
		t.Errorf("subtracts = %v, want failed", file.Cases[1].Status)
	}
	if file.Status != catalog.StatusFailed {
		t.Errorf("file = %v, want failed", file.Status)
	}
	if !e.HasResults() {
		t.Error("expected HasResults after a mapped run")
	}
}

func TestRefreshKeepsResults(t *testing.T) {
	dir := t.TempDir()
	src := "test('adds', () => {});\ntest('subtracts', () => {});\n"
	if err := os.WriteFile(filepath.Join(dir, "math.test.js"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(dir)
	e.Update(e.RefreshCatalog())
	file := e.State.Catalog.Files[0]

	if cmd := e.StartRun(file, nil); cmd == nil {
		t.Fatal("expected a command")
	}
	e.Update(runner.OutputUpdate("✓ adds"))
	e.Update(runner.OutputUpdate("✕ subtracts"))
	e.Update(runner.StatusUpdate{Err: nil})

	// A watcher-triggered rebuild swaps in fresh file objects; the old
	// results must come along.
	e.Update(e.RefreshCatalog())

	fresh := e.State.Catalog.Files[0]
	if fresh == file {
		t.Fatal("expected the catalog to be rebuilt")
	}
	if fresh.Cases[0].Status != catalog.StatusPassed {
		t.Errorf("adds = %v, want passed after refresh", fresh.Cases[0].Status)
	}
	if fresh.Cases[1].Status != catalog.StatusFailed {
		t.Errorf("subtracts = %v, want failed after refresh", fresh.Cases[1].Status)
	}
	if fresh.Status != catalog.StatusFailed {
		t.Errorf("file = %v, want failed after refresh", fresh.Status)
	}
	if e.State.LastFile != fresh {
		t.Error("expected LastFile to point at the rebuilt file")
	}
}

func TestSingleCaseRunRestoresUnreported(t *testing.T) {
	e := New(t.TempDir())
	file := newTestFile("adds", "subtracts")
	file.Cases[0].Status = catalog.StatusPassed

	if cmd := e.StartRun(file, file.Cases[0]); cmd == nil {
		t.Fatal("expected a command")
	}
	if file.Cases[0].Status != catalog.StatusRunning {
		t.Fatalf("targeted case should be running, got %v", file.Cases[0].Status)
	}

	// The filter matched nothing: output mentions no case at all.
	e.Update(runner.OutputUpdate("No tests found"))
	e.Update(runner.StatusUpdate{Err: nil})

	if file.Cases[0].Status != catalog.StatusPassed {
		t.Errorf("unreported case = %v, want its prior status", file.Cases[0].Status)
	}
}

func TestSpawnFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := "command: definitely-not-a-real-binary-xyz <path>\n"
	if err := os.WriteFile(filepath.Join(dir, ".lazyjest.yml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(dir)
	file := newTestFile("adds")

	cmd := e.StartRun(file, nil)
	if cmd == nil {
		t.Fatal("expected a command")
	}

	msg := cmd()
	failed, ok := msg.(SpawnFailedMsg)
	if !ok {
		t.Fatalf("expected SpawnFailedMsg, got %T", msg)
	}
	e.Update(failed)

	if !e.State.Finished {
		t.Error("spawn failure should finish the run")
	}
	if file.Status != catalog.StatusFailed {
		t.Errorf("file = %v, want failed", file.Status)
	}
	if !strings.Contains(e.State.Output.String(), "could not start") {
		t.Errorf("output missing hint:\n%s", e.State.Output.String())
	}

	// The engine must accept a new run after a failed spawn.
	if again := e.StartRun(file, nil); again == nil {
		t.Error("expected to be able to start a run after a spawn failure")
	}
}

func TestReRunLast(t *testing.T) {
	e := New(t.TempDir())

	if cmd := e.ReRunLast(); cmd != nil {
		t.Error("expected nil before any run")
	}

	file := newTestFile("adds", "subtracts")
	if cmd := e.StartRun(file, file.Cases[1]); cmd == nil {
		t.Fatal("expected a command")
	}
	e.Update(runner.StatusUpdate{Err: nil})

	cmd := e.ReRunLast()
	if cmd == nil {
		t.Fatal("expected re-run command")
	}
	if e.State.RunningTarget == nil || e.State.RunningTarget.Case != file.Cases[1].FullName() {
		t.Errorf("re-run target = %+v, want the previous case", e.State.RunningTarget)
	}
}
