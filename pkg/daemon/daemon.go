// Package daemon runs a long split or merge detached from the terminal.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/sevlyar/go-daemon"
)

// ErrAlreadyRunning is returned when the pid file names a live process.
var ErrAlreadyRunning = errors.New("daemon already running")

// IsChild reports whether this process was started by Daemon.Start.
func IsChild() bool {
	return daemon.WasReborn()
}

// CheckPidFile removes pidFile when the process it names is gone. A live
// process yields ErrAlreadyRunning. A missing or unreadable pid file is not
// an error.
func CheckPidFile(pidFile string) error {
	if _, err := os.Stat(pidFile); err != nil {
		return nil
	}
	pid, err := daemon.ReadPidFile(pidFile)
	if err != nil {
		return nil
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	// signal 0 only checks that the process exists
	if err := proc.Signal(syscall.Signal(0)); err == nil {
		return fmt.Errorf("%w with pid %d (%s)", ErrAlreadyRunning, pid, pidFile)
	}
	if err := os.Remove(pidFile); err != nil {
		return fmt.Errorf("failed to remove stale pid file %s: %w", pidFile, err)
	}
	return nil
}

// Daemon is one background run. Parent and child build it with the same
// arguments and both call Start.
type Daemon struct {
	cntxt *daemon.Context
}

func New(pidFile, logFile, workDir string, args []string) *Daemon {
	if logFile == "" {
		logFile = os.DevNull
	}
	if workDir == "" {
		workDir = "/"
	}
	return &Daemon{cntxt: &daemon.Context{
		PidFileName: pidFile,
		PidFilePerm: 0644,
		LogFileName: logFile,
		LogFilePerm: 0640,
		WorkDir:     workDir,
		Umask:       027,
		Args:        args,
	}}
}

// Start re-executes the command in the background. In the parent it returns
// the child process. In the child it writes the pid file, applies the umask
// and returns nil.
func (d *Daemon) Start() (*os.Process, error) {
	proc, err := d.cntxt.Reborn()
	if err != nil {
		return nil, err
	}
	if proc == nil {
		// a nested Start in the child forks again
		os.Unsetenv(daemon.MARK_NAME)
	}
	return proc, nil
}

// Release removes the pid file. Only the child has anything to release.
func (d *Daemon) Release() error {
	return d.cntxt.Release()
}
