//go:build windows

package runner

import (
	"os/exec"
)

func prepareCommand(cmd *exec.Cmd) {
	// No process groups here; exec.CommandContext kills the direct child
	// on cancellation, which is the best we get on Windows.
}
