package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Debug("hello", "k", 1)

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" || rec["level"] != "DEBUG" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	var buf bytes.Buffer
	logger, _, err := New(Options{Format: FormatText, Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("dropped")
	logger.Error("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "msg=kept") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launchbar.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{Format: FormatText, File: path, Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("saved", "path", "x")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=saved") {
		t.Fatalf("expected record in file, got %q", data)
	}
}

func TestNew_BadFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml", Stderr: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.log")
	rf, err := OpenRotatingFile(path, 1, 2)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Shrink the limit so the test does not write megabytes.
	rf.maxBytes = 10

	for _, line := range []string{"first-----\n", "second----\n", "third-----\n", "fourth----\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		return string(data)
	}
	if got := read(path); got != "fourth----\n" {
		t.Fatalf("current = %q", got)
	}
	if got := read(path + ".1"); got != "third-----\n" {
		t.Fatalf(".1 = %q", got)
	}
	if got := read(path + ".2"); got != "second----\n" {
		t.Fatalf(".2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected only two rotated generations, stat err=%v", err)
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	rf, err := OpenRotatingFile(filepath.Join(t.TempDir(), "c.log"), 0, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rf.Close()
	if _, err := rf.Write([]byte("x")); err == nil {
		t.Fatalf("expected error after close")
	}
}
