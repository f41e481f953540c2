package vibe

import (
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"syscall"
)

// ErrAlreadyRunning is returned by Launch when a live runner holds the
// control file.
var ErrAlreadyRunning = errors.New("vibe mode already running")

// Launch starts a detached runner process by re-execing the current
// binary with the given arguments. The child gets its own session so it
// survives the interactive client exiting. Returns the child PID.
func Launch(c *Control, args ...string) (int, error) {
	if pid, alive := c.Alive(); alive {
		return pid, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("launch vibe mode: %w", err)
	}

	cmd := osexec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("launch vibe mode: %w", err)
	}
	pid := cmd.Process.Pid

	// Record the PID immediately so status works before the runner's
	// first control write.
	s := c.Read()
	s.LastCommand = CommandStart
	s.PID = pid
	s.Timestamp = nowISO()
	if err := c.Write(s); err != nil {
		return pid, err
	}

	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}

// Stop writes a stop command to the control file. The runner polls the
// file and exits within a second. It reports whether a live runner was
// present to see the command.
func Stop(c *Control) (bool, error) {
	_, alive := c.Alive()
	if err := c.Command(CommandStop); err != nil {
		return false, err
	}
	return alive, nil
}

// Status returns the control file state and whether the recorded runner
// process is alive.
func Status(c *Control) (State, bool) {
	s := c.Read()
	_, alive := c.Alive()
	return s, alive
}
