//go:build !windows

package runner

import (
	"os/exec"
	"testing"
)

func TestPrepareCommandUnix(t *testing.T) {
	cmd := exec.Command("echo", "hello")
	prepareCommand(cmd)

	if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
		t.Error("expected the process to get its own group")
	}
	if cmd.Cancel == nil {
		t.Error("expected a cancel function that kills the group")
	}
}
