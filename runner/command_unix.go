//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

func prepareCommand(cmd *exec.Cmd) {
	// Run the test process in its own group so cancellation reaches any
	// children the runner spawned (npx forks node, node forks workers).
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
