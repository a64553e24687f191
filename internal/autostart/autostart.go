// Package autostart registers the bar to start with the user's session.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrUnsupported is returned on platforms without a known autostart location.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

// Registrar turns session autostart on or off.
type Registrar interface {
	Enabled() (bool, error)
	Set(enable bool) error
}

// Entry is a file-based autostart registration: the file exists while
// autostart is enabled.
type Entry struct {
	Path    string
	Content []byte
}

var _ Registrar = (*Entry)(nil)

func (e *Entry) Enabled() (bool, error) {
	_, err := os.Stat(e.Path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (e *Entry) Set(enable bool) error {
	if !enable {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove autostart entry: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}
	if err := os.WriteFile(e.Path, e.Content, 0644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

type unsupported struct{}

func (unsupported) Enabled() (bool, error) { return false, ErrUnsupported }
func (unsupported) Set(bool) error         { return ErrUnsupported }

// New returns the registrar for the current platform. name becomes the entry
// file name; exe and args are the command started at login.
func New(name, exe string, args []string) Registrar {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		dir, err := xdgAutostartDir()
		if err != nil {
			return unsupported{}
		}
		return XDG(dir, name, exe, args)
	case "windows":
		dir := windowsStartupDir()
		if dir == "" {
			return unsupported{}
		}
		return WindowsStartup(dir, name, exe, args)
	default:
		return unsupported{}
	}
}

// XDG returns a desktop-entry registrar writing <dir>/<name>.desktop.
func XDG(dir, name, exe string, args []string) *Entry {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", name)
	fmt.Fprintf(&b, "Exec=%s\n", desktopExec(exe, args))
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	b.WriteString("NoDisplay=true\n")
	return &Entry{
		Path:    filepath.Join(dir, name+".desktop"),
		Content: []byte(b.String()),
	}
}

// WindowsStartup returns a registrar writing <dir>/<name>.cmd into the user's
// Startup folder.
func WindowsStartup(dir, name, exe string, args []string) *Entry {
	parts := []string{`start "" ` + cmdQuote(exe)}
	for _, a := range args {
		parts = append(parts, cmdQuote(a))
	}
	content := "@echo off\r\n" + strings.Join(parts, " ") + "\r\n"
	return &Entry{
		Path:    filepath.Join(dir, name+".cmd"),
		Content: []byte(content),
	}
}

func xdgAutostartDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

func windowsStartupDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
}

// desktopExec quotes arguments per the desktop entry spec.
func desktopExec(exe string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{exe}, args...) {
		if a != "" && !strings.ContainsAny(a, " \t\n\"'\\$`") {
			parts = append(parts, a)
			continue
		}
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
		parts = append(parts, `"`+r.Replace(a)+`"`)
	}
	return strings.Join(parts, " ")
}

func cmdQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t&|<>^\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
