package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// ErrBusy is returned by Start while a previous run is still alive. The
// application allows at most one live test process at a time.
var ErrBusy = errors.New("a test run is already in progress")

// OutputUpdate carries one decoded line of subprocess output.
type OutputUpdate string

// StatusUpdate reports the terminal state of a run. Err is nil on a zero
// exit; Killed is set when the process died from a signal (including our
// own cancellation).
type StatusUpdate struct {
	Err    error
	Code   int
	Killed bool
}

// Update is either an OutputUpdate or a StatusUpdate.
type Update any

// Runner executes the external test command asynchronously. Output lines
// and the final status flow through Updates; the UI pumps that channel
// once per message loop tick and never blocks on process I/O.
type Runner struct {
	mu      sync.Mutex
	currCmd *exec.Cmd
	cancel  context.CancelFunc
	Updates chan Update
}

// NewRunner creates a Runner with a buffered update channel.
func NewRunner() *Runner {
	return &Runner{
		Updates: make(chan Update, 100),
	}
}

// Running reports whether a test process is currently alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currCmd != nil
}

// Start spawns argv in dir. Spawn failures (missing binary, permission)
// are returned synchronously; once Start returns nil the run ends with a
// StatusUpdate on Updates.
func (r *Runner) Start(argv []string, dir string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	r.mu.Lock()
	if r.currCmd != nil {
		r.mu.Unlock()
		return ErrBusy
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	prepareCommand(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		r.mu.Unlock()
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		r.mu.Unlock()
		return err
	}

	if err := cmd.Start(); err != nil {
		cancel()
		r.mu.Unlock()
		return err
	}

	r.currCmd = cmd
	r.cancel = cancel
	r.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.streamLines(stdout)
	}()
	go func() {
		defer wg.Done()
		r.streamLines(stderr)
	}()

	go func() {
		// Wait closes the pipes, so drain them first.
		wg.Wait()
		err := cmd.Wait()

		r.mu.Lock()
		r.currCmd = nil
		r.cancel = nil
		r.mu.Unlock()

		status := StatusUpdate{Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status.Code = exitErr.ExitCode()
			status.Killed = status.Code == -1
		}
		r.Updates <- status
	}()

	return nil
}

// streamLines forwards decoded lines, replacing invalid UTF-8 sequences
// rather than erroring on them.
func (r *Runner) streamLines(pipe io.Reader) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.Updates <- OutputUpdate(strings.ToValidUTF8(scanner.Text(), "�"))
	}
}

// Kill requests termination of the current process. Best effort,
// asynchronous and idempotent; the StatusUpdate arrives once the process
// actually exits.
func (r *Runner) Kill() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}
