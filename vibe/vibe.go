// Package vibe implements the autonomous background mode: a detached
// process periodically sends a configured prompt to the selected agent,
// coordinated with the interactive client through a JSON control file.
package vibe

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Commands written to the control file.
const (
	CommandStart = "start"
	CommandStop  = "stop"
)

// Statuses reported in the control file.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

// State is the contents of the control file. Both the runner process and
// the interactive client read and write it; last write wins.
type State struct {
	Status      string `json:"status,omitempty"`
	LastCommand string `json:"last_command,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	LastRun     string `json:"last_run,omitempty"`
	PID         int    `json:"pid,omitempty"`
}

// Control reads and writes the JSON control file.
type Control struct {
	path string
}

// NewControl creates a Control for the given file path.
func NewControl(path string) *Control {
	return &Control{path: path}
}

// Path returns the control file location.
func (c *Control) Path() string { return c.path }

// Read returns the current state. A missing or corrupt file reads as the
// zero state so a stale file never wedges the mode.
func (c *Control) Read() State {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return State{}
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}
	}
	return s
}

// Write replaces the control file contents, creating parent directories
// as needed.
func (c *Control) Write(s State) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Command merges a command into the existing state.
func (c *Control) Command(cmd string) error {
	s := c.Read()
	s.LastCommand = cmd
	s.Timestamp = nowISO()
	return c.Write(s)
}

// Alive reports the recorded runner PID and whether that process exists.
func (c *Control) Alive() (int, bool) {
	s := c.Read()
	if s.PID <= 0 {
		return 0, false
	}
	return s.PID, processAlive(s.PID)
}

// processAlive probes a PID with signal 0. EPERM means the process exists
// but belongs to another user.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
