package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/1broseidon/launchbar/internal/autostart"
	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

func TestFindShortcut(t *testing.T) {
	list := []config.Shortcut{{Name: "Terminal"}, {Name: "Editor"}}

	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"2", -1, true},
		{"-1", -1, true},
		{"editor", 1, false},
		{"Browser", -1, true},
	}
	for _, tt := range tests {
		got, err := findShortcut(list, tt.ref)
		if (err != nil) != tt.wantErr {
			t.Fatalf("findShortcut(%q) err=%v, wantErr %v", tt.ref, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("findShortcut(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestReadDocument_MissingFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	cfg, _, exists, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}
	if exists || cfg.Settings.Opacity != config.DefaultOpacity {
		t.Fatalf("expected defaults for missing file, exists=%v", exists)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("readDocument must not create the file")
	}
}

func TestReadDocument_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := readDocument(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}

func TestFlagWasSet(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("name", "", "")
	fs.String("icon", "", "")
	if err := fs.Parse([]string{"--icon", ""}); err != nil {
		t.Fatal(err)
	}
	if !flagWasSet(fs, "icon") || flagWasSet(fs, "name") {
		t.Fatalf("expected only icon to be set")
	}
}

func TestZoneList(t *testing.T) {
	got := zoneList()
	for _, z := range []string{"bottom-center", "top-left", "top-right"} {
		if !strings.Contains(got, z) {
			t.Fatalf("zone list %q misses %s", got, z)
		}
	}
}

func TestSessionOffline_EditsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	common := &commonFlags{configPath: path, offline: true}
	logger := common.logger()

	tb, err := common.session(logger)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := tb.Mutate(toolbar.Mutation{Op: toolbar.OpAddCategory, Name: "Tools"}, true); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	res := config.Load(path)
	if _, ok := res.Config.Categories.Get("Tools"); !ok {
		t.Fatalf("expected saved category, got %v", res.Config.Categories.Names())
	}
}

func TestSettingsOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	common := &commonFlags{configPath: path, offline: true}

	zone := "top-right"
	s, err := applySettings(common, common.logger(), settingsPosition(zone))
	if err != nil {
		t.Fatalf("applySettings: %v", err)
	}
	if s.Position != zone {
		t.Fatalf("expected %s, got %s", zone, s.Position)
	}
	if res := config.Load(path); res.Config.Settings.Position != zone {
		t.Fatalf("expected saved position %s, got %s", zone, res.Config.Settings.Position)
	}

	bad := "middle"
	if _, err := applySettings(common, common.logger(), settingsPosition(bad)); err == nil {
		t.Fatalf("expected validation error for unknown zone")
	}
}

func TestAnchorOnActiveDisplay_UsesDisplayOrigin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bar := layout.Size{Width: 400, Height: 56}

	tests := []struct {
		name     string
		position string
		bounds   layout.Rect
		usable   layout.Rect
		want     layout.Point
	}{
		{
			name:     "second monitor",
			position: "bottom-center",
			bounds:   layout.Rect{X: 1920, Width: 1920, Height: 1080},
			usable:   layout.Rect{X: 1920, Width: 1920, Height: 1080},
			want:     layout.Point{X: 1920 + 760, Y: 1080 - 56 - 100},
		},
		{
			name:     "top panel",
			position: "top-left",
			bounds:   layout.Rect{Width: 1920, Height: 1080},
			usable:   layout.Rect{Y: 32, Width: 1920, Height: 1048},
			want:     layout.Point{X: 100, Y: 32 + 100},
		},
		{
			name:     "no work area",
			position: "top-right",
			bounds:   layout.Rect{X: 1920, Width: 1280, Height: 1024},
			want:     layout.Point{X: 1920 + 1280 - 400 - 100, Y: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Settings.Position = tt.position
			ctrl := toolbar.New(cfg, toolbar.Options{})

			backend := platform.NewStatic(1, 1)
			backend.Display.Bounds = tt.bounds
			backend.Display.Usable = tt.usable

			anchorOnActiveDisplay(ctrl, backend, bar, logger)

			got := ctrl.WindowPosition()
			if got != tt.want {
				t.Fatalf("bar at %+v, want %+v", got, tt.want)
			}
			if !tt.bounds.Contains(got) {
				t.Fatalf("bar at %+v is outside display %+v", got, tt.bounds)
			}
		})
	}
}

func TestControllerOptions_AutostartNamesConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("desktop entries are written on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bar.json")

	opts := controllerOptions(nil, path)
	entry, ok := opts.Autostart.(*autostart.Entry)
	if !ok {
		t.Fatalf("expected a desktop entry registrar, got %T", opts.Autostart)
	}
	if !strings.Contains(string(entry.Content), "daemon --config "+path) {
		t.Fatalf("autostart command must name the config, got:\n%s", entry.Content)
	}
}
