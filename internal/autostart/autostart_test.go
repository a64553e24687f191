package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestXDG_SetAndClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "autostart")
	r := XDG(dir, "launchbar", "/opt/launch bar/launchbar", []string{"daemon"})

	enabled, err := r.Enabled()
	if err != nil || enabled {
		t.Fatalf("expected disabled, got %v (%v)", enabled, err)
	}

	if err := r.Set(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "launchbar.desktop"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `Exec="/opt/launch bar/launchbar" daemon`) {
		t.Fatalf("unexpected desktop entry:\n%s", data)
	}
	if enabled, _ := r.Enabled(); !enabled {
		t.Fatalf("expected enabled")
	}

	if err := r.Set(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if enabled, _ := r.Enabled(); enabled {
		t.Fatalf("expected disabled after clear")
	}
	// Disabling twice is fine.
	if err := r.Set(false); err != nil {
		t.Fatalf("disable again: %v", err)
	}
}

func TestWindowsStartup_Content(t *testing.T) {
	r := WindowsStartup(t.TempDir(), "launchbar", `C:\Program Files\launchbar.exe`, []string{"daemon"})
	want := "@echo off\r\nstart \"\" \"C:\\Program Files\\launchbar.exe\" daemon\r\n"
	if string(r.Content) != want {
		t.Fatalf("expected %q, got %q", want, r.Content)
	}
	if filepath.Ext(r.Path) != ".cmd" {
		t.Fatalf("expected .cmd entry, got %s", r.Path)
	}
}

func TestNew_UsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	r := New("launchbar", "/usr/bin/launchbar", nil)
	entry, ok := r.(*Entry)
	if !ok {
		t.Skip("platform has no file-based autostart")
	}
	if filepath.Dir(entry.Path) != filepath.Join(dir, "autostart") && !strings.HasSuffix(entry.Path, ".cmd") {
		t.Fatalf("unexpected entry path %s", entry.Path)
	}
}
