package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/launch"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

type launchRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *launchRecorder) Launch(exe string, args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, exe)
	return nil
}

func startTestServer(t *testing.T, opts toolbar.Options) (*Client, string) {
	t.Helper()

	// Unix socket paths are length limited; keep the directory short.
	dir, err := os.MkdirTemp("", "lb")
	if err != nil {
		t.Fatalf("mkdtemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfgPath := filepath.Join(dir, config.FileName)
	opts.Path = cfgPath
	ctrl := toolbar.New(config.DefaultConfig(), opts)

	socket := filepath.Join(dir, "s.sock")
	srv, err := NewServer(socket, ctrl, platform.NewStatic(1920, 1080), nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	return NewClientWithPath(socket), cfgPath
}

func TestServer_DragDoesNotWriteUntilSave(t *testing.T) {
	client, cfgPath := startTestServer(t, toolbar.Options{})

	pos, err := client.SetGeometry(layout.Size{Width: 1920, Height: 1080}, layout.Size{Width: 300, Height: 50})
	if err != nil {
		t.Fatalf("SetGeometry: %v", err)
	}
	if pos.WindowPosition != (layout.Point{X: 810, Y: 930}) {
		t.Fatalf("unexpected anchored position %+v", pos.WindowPosition)
	}

	if _, err := client.BeginDrag(layout.Point{X: 810, Y: 930}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	pos, err = client.PointerMove(layout.Point{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if !pos.Handled || pos.Zone != layout.TopLeft || pos.Phase != "dragging" {
		t.Fatalf("unexpected move result %+v", pos)
	}
	pos, err = client.Release()
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if pos.Phase != "idle" {
		t.Fatalf("expected idle after release, got %s", pos.Phase)
	}

	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Fatalf("expected no file before SAVE, stat err=%v", err)
	}

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if !state.Dirty || state.Config.Settings.Position != "top-left" {
		t.Fatalf("unexpected state dirty=%v position=%s", state.Dirty, state.Config.Settings.Position)
	}

	if err := client.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	res := config.Load(cfgPath)
	if res.Err != nil || res.Config.Settings.Position != "top-left" {
		t.Fatalf("expected saved top-left, got %+v err=%v", res.Config.Settings, res.Err)
	}
}

func TestServer_MutateValidationError(t *testing.T) {
	client, _ := startTestServer(t, toolbar.Options{})

	_, err := client.Mutate(toolbar.Mutation{Op: toolbar.OpAddCategory, Name: "  "}, false)
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RemoteError, got %T (%v)", err, err)
	}
	if rerr.Kind != KindValidation {
		t.Fatalf("expected kind %q, got %q", KindValidation, rerr.Kind)
	}
}

func TestServer_MutateAndLaunch(t *testing.T) {
	rec := &launchRecorder{}
	client, cfgPath := startTestServer(t, toolbar.Options{Launcher: rec})

	if _, err := client.Mutate(toolbar.Mutation{Op: toolbar.OpAddCategory, Name: "Tools"}, false); err != nil {
		t.Fatalf("add category: %v", err)
	}
	idx, err := client.Mutate(toolbar.Mutation{
		Op:       toolbar.OpAddCategoryShortcut,
		Category: "Tools",
		Shortcut: &config.Shortcut{Name: "Editor", Exe: "/usr/bin/vim", Args: []string{}},
	}, true)
	if err != nil {
		t.Fatalf("add shortcut: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}

	res := config.Load(cfgPath)
	cat, ok := res.Config.Categories.Get("Tools")
	if !ok || len(cat.Shortcuts) != 1 {
		t.Fatalf("expected saved category with one shortcut, got %+v", res.Config.Categories)
	}

	if err := client.Launch("Tools", 0); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if len(rec.calls) != 1 || rec.calls[0] != "/usr/bin/vim" {
		t.Fatalf("unexpected launches %v", rec.calls)
	}

	err = client.Launch("Tools", 5)
	var rerr *RemoteError
	if !errors.As(err, &rerr) || rerr.Kind != KindValidation {
		t.Fatalf("expected validation error for bad index, got %v", err)
	}
}

func TestServer_LaunchFailureKind(t *testing.T) {
	failing := launch.Func(func(exe string, args []string) error {
		return &launch.Error{Exe: exe, Err: launch.ErrNoExecutable}
	})
	client, _ := startTestServer(t, toolbar.Options{Launcher: failing})

	if _, err := client.Mutate(toolbar.Mutation{
		Op:       toolbar.OpAddShortcut,
		Shortcut: &config.Shortcut{Name: "Gone", Exe: "/nope"},
	}, false); err != nil {
		t.Fatalf("add shortcut: %v", err)
	}
	err := client.Launch("", 0)
	var rerr *RemoteError
	if !errors.As(err, &rerr) || rerr.Kind != KindLaunch {
		t.Fatalf("expected launch error, got %v", err)
	}
}

func TestServer_SetSettings(t *testing.T) {
	client, cfgPath := startTestServer(t, toolbar.Options{})

	opacity := 50
	pos := "top-right"
	s, err := client.SetSettings(SettingsPayload{Opacity: &opacity, Position: &pos, Save: true})
	if err != nil {
		t.Fatalf("SetSettings: %v", err)
	}
	if s.Opacity != 50 || s.Position != "top-right" {
		t.Fatalf("unexpected settings %+v", s)
	}
	res := config.Load(cfgPath)
	if res.Config.Settings.Opacity != 50 {
		t.Fatalf("expected saved opacity 50, got %d", res.Config.Settings.Opacity)
	}

	bad := 5
	_, err = client.SetSettings(SettingsPayload{Opacity: &bad})
	var rerr *RemoteError
	if !errors.As(err, &rerr) || rerr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.Config.Settings.Opacity != 50 {
		t.Fatalf("rejected settings must not apply, got opacity %d", state.Config.Settings.Opacity)
	}
}

func TestServer_DisplaysAndReload(t *testing.T) {
	client, _ := startTestServer(t, toolbar.Options{})

	displays, err := client.GetDisplays()
	if err != nil {
		t.Fatalf("GetDisplays: %v", err)
	}
	if len(displays) != 1 || displays[0].Bounds.Width != 1920 {
		t.Fatalf("unexpected displays %+v", displays)
	}

	data, err := client.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if data.Origin != config.OriginCreated {
		t.Fatalf("expected reload to create the missing file, got %s", data.Origin)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	client, _ := startTestServer(t, toolbar.Options{})

	_, err := client.sendRequest("NOPE", nil)
	var rerr *RemoteError
	if !errors.As(err, &rerr) || rerr.Kind != KindProtocol {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientWithPath(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := client.GetState(); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestServer_SetDisplayOffsetsAnchor(t *testing.T) {
	client, _ := startTestServer(t, toolbar.Options{})

	display := layout.Rect{X: 1920, Y: 24, Width: 1920, Height: 1056}
	pos, err := client.SetDisplay(display, layout.Size{Width: 300, Height: 50})
	if err != nil {
		t.Fatalf("SetDisplay: %v", err)
	}
	if pos.WindowPosition != (layout.Point{X: 1920 + 810, Y: 24 + 1056 - 50 - 100}) {
		t.Fatalf("unexpected anchored position %+v", pos.WindowPosition)
	}

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.Display != display || state.Screen != display.Size() {
		t.Fatalf("unexpected display in state %+v / %+v", state.Display, state.Screen)
	}

	_, err = client.SetDisplay(layout.Rect{X: 10}, layout.Size{Width: 300, Height: 50})
	var rerr *RemoteError
	if !errors.As(err, &rerr) || rerr.Kind != KindValidation {
		t.Fatalf("expected validation error for an empty display, got %v", err)
	}
}
