package launch

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestExec_EmptyExe(t *testing.T) {
	err := (&Exec{}).Launch("  ", nil)
	var launchErr *Error
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if !errors.Is(err, ErrNoExecutable) {
		t.Fatalf("expected ErrNoExecutable, got %v", err)
	}
}

func TestExec_MissingExe(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	err := (&Exec{}).Launch(missing, []string{"--flag"})
	var launchErr *Error
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if launchErr.Exe != missing {
		t.Fatalf("expected exe %q in error, got %q", missing, launchErr.Exe)
	}
}

func TestExec_StartsProgram(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	marker := filepath.Join(t.TempDir(), "ran")
	if err := (&Exec{}).Launch(sh, []string{"-c", "touch " + marker}); err != nil {
		t.Fatalf("launch: %v", err)
	}

	for i := 0; i < 200; i++ {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected launched program to create %s", marker)
}

func TestFunc(t *testing.T) {
	var gotExe string
	var gotArgs []string
	l := Func(func(exe string, args []string) error {
		gotExe, gotArgs = exe, args
		return nil
	})
	if err := l.Launch("/bin/true", []string{"a"}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	if gotExe != "/bin/true" || len(gotArgs) != 1 {
		t.Fatalf("unexpected call %q %v", gotExe, gotArgs)
	}
}
