package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperDirEnv = "XCHUNKER_DAEMON_TEST_DIR"

func TestCheckPidFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		assert.NoError(t, CheckPidFile(filepath.Join(dir, "none.pid")))
	})

	t.Run("Live Process", func(t *testing.T) {
		pidFile := filepath.Join(dir, "live.pid")
		require.NoError(t, os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644))

		err := CheckPidFile(pidFile)
		assert.ErrorIs(t, err, ErrAlreadyRunning)
		assert.FileExists(t, pidFile)
	})

	t.Run("Stale", func(t *testing.T) {
		pidFile := filepath.Join(dir, "stale.pid")
		// above the Linux pid_max limit
		require.NoError(t, os.WriteFile(pidFile, []byte("99999999"), 0644))

		assert.NoError(t, CheckPidFile(pidFile))
		assert.NoFileExists(t, pidFile)
	})

	t.Run("Garbage", func(t *testing.T) {
		pidFile := filepath.Join(dir, "garbage.pid")
		require.NoError(t, os.WriteFile(pidFile, []byte("not a pid"), 0644))

		assert.NoError(t, CheckPidFile(pidFile))
	})
}

func TestIsChild(t *testing.T) {
	assert.False(t, IsChild())
}

func newTestDaemon(dir string) *Daemon {
	return New(filepath.Join(dir, "test.pid"), filepath.Join(dir, "test.out"), dir,
		[]string{os.Args[0], "-test.run=^TestDaemonChildProcess$"})
}

// TestDaemonChildProcess is the body of the background child started by
// TestStartWritesChildPid; it does nothing in a normal test run.
func TestDaemonChildProcess(t *testing.T) {
	dir := os.Getenv(helperDirEnv)
	if dir == "" || !IsChild() {
		t.Skip("only runs as the child of TestStartWritesChildPid")
	}

	d := newTestDaemon(dir)
	proc, err := d.Start()
	if err != nil || proc != nil {
		os.Exit(2)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "test.pid"))
	report := fmt.Sprintf("%d %s %t", os.Getpid(), strings.TrimSpace(string(data)), IsChild())
	os.WriteFile(filepath.Join(dir, "child.txt"), []byte(report), 0644)

	if err := d.Release(); err != nil {
		os.Exit(3)
	}
	os.Exit(0)
}

func TestStartWritesChildPid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(helperDirEnv, dir)

	proc, err := newTestDaemon(dir).Start()
	require.NoError(t, err)
	require.NotNil(t, proc, "the test process is the parent")

	state, err := proc.Wait()
	require.NoError(t, err)
	require.Equal(t, 0, state.ExitCode())

	data, err := os.ReadFile(filepath.Join(dir, "child.txt"))
	require.NoError(t, err)
	fields := strings.Fields(string(data))
	require.Len(t, fields, 3)

	childPid := strconv.Itoa(proc.Pid)
	assert.Equal(t, childPid, fields[0])
	assert.Equal(t, childPid, fields[1], "pid file holds the child's pid")
	assert.Equal(t, "false", fields[2], "the child mark is cleared after Start")
	// Release in the child removes the pid file
	assert.NoFileExists(t, filepath.Join(dir, "test.pid"))
}
