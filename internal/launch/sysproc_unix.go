//go:build !windows

package launch

import "syscall"

// detachedAttr starts the child in its own session so it survives the bar and
// does not receive the bar's terminal signals.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
