package vibe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/animus/anima/vibe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControl_ReadWrite(t *testing.T) {
	t.Parallel()

	t.Run("missing file reads as zero state", func(t *testing.T) {
		t.Parallel()
		c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
		assert.Equal(t, vibe.State{}, c.Read())
	})

	t.Run("corrupt file reads as zero state", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "control.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		c := vibe.NewControl(path)
		assert.Equal(t, vibe.State{}, c.Read())
	})

	t.Run("write creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "control.json")
		c := vibe.NewControl(path)
		require.NoError(t, c.Write(vibe.State{Status: vibe.StatusRunning, PID: 42}))

		got := c.Read()
		assert.Equal(t, vibe.StatusRunning, got.Status)
		assert.Equal(t, 42, got.PID)
	})

	t.Run("command merges into existing state", func(t *testing.T) {
		t.Parallel()
		c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
		require.NoError(t, c.Write(vibe.State{Status: vibe.StatusRunning, PID: 42}))
		require.NoError(t, c.Command(vibe.CommandStop))

		got := c.Read()
		assert.Equal(t, vibe.CommandStop, got.LastCommand)
		assert.Equal(t, 42, got.PID)
		assert.NotEmpty(t, got.Timestamp)
	})
}

func TestControl_Alive(t *testing.T) {
	t.Parallel()

	t.Run("no recorded pid", func(t *testing.T) {
		t.Parallel()
		c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
		_, alive := c.Alive()
		assert.False(t, alive)
	})

	t.Run("current process is alive", func(t *testing.T) {
		t.Parallel()
		c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
		require.NoError(t, c.Write(vibe.State{PID: os.Getpid()}))
		pid, alive := c.Alive()
		assert.True(t, alive)
		assert.Equal(t, os.Getpid(), pid)
	})

	t.Run("dead pid is not alive", func(t *testing.T) {
		t.Parallel()
		c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
		require.NoError(t, c.Write(vibe.State{PID: 1 << 22}))
		_, alive := c.Alive()
		assert.False(t, alive)
	})
}

func TestLaunch_AlreadyRunning(t *testing.T) {
	t.Parallel()

	c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
	require.NoError(t, c.Write(vibe.State{PID: os.Getpid()}))

	_, err := vibe.Launch(c, "vibe", "run")
	assert.ErrorIs(t, err, vibe.ErrAlreadyRunning)
}

func TestStopAndStatus(t *testing.T) {
	t.Parallel()

	c := vibe.NewControl(filepath.Join(t.TempDir(), "control.json"))
	require.NoError(t, c.Write(vibe.State{Status: vibe.StatusRunning, PID: os.Getpid()}))

	alive, err := vibe.Stop(c)
	require.NoError(t, err)
	assert.True(t, alive)

	state, _ := vibe.Status(c)
	assert.Equal(t, vibe.CommandStop, state.LastCommand)
}
