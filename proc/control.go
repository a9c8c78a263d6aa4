package proc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Terminate sends a single SIGTERM to the given pid. It does not
// verify the process exits, does not escalate to SIGKILL, and does not
// retry. Failure (no permission, pid already gone) is returned to the
// caller to surface as it sees fit.
func Terminate(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM to PID %d: %w", pid, err)
	}

	return nil
}
