// Package launch starts shortcut programs detached from the bar.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrNoExecutable is returned for a shortcut without an executable path.
var ErrNoExecutable = errors.New("no executable configured")

// Launcher starts an external program with an argument list.
type Launcher interface {
	Launch(exe string, args []string) error
}

// Error reports a program that could not be started. The bar keeps running.
type Error struct {
	Exe string
	Err error
}

func (e *Error) Error() string {
	if e.Exe == "" {
		return fmt.Sprintf("failed to launch: %v", e.Err)
	}
	return fmt.Sprintf("failed to launch %s: %v", e.Exe, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Exec launches programs as detached child processes. The child is reaped in
// a goroutine so no zombie is left behind; its exit status is only logged.
type Exec struct {
	Logger *slog.Logger

	// Dir is the working directory for launched programs. Empty means the
	// directory of the executable.
	Dir string
}

var _ Launcher = (*Exec)(nil)

func (e *Exec) Launch(exe string, args []string) error {
	if strings.TrimSpace(exe) == "" {
		return &Error{Exe: exe, Err: ErrNoExecutable}
	}

	path, err := exec.LookPath(exe)
	if err != nil {
		return &Error{Exe: exe, Err: err}
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = e.Dir
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return &Error{Exe: exe, Err: err}
	}

	logger := e.logger()
	logger.Info("launched", "exe", exe, "args", args, "pid", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("launched program exited", "exe", exe, "error", err)
		}
	}()
	return nil
}

func (e *Exec) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Func adapts a function to the Launcher interface.
type Func func(exe string, args []string) error

func (f Func) Launch(exe string, args []string) error { return f(exe, args) }
