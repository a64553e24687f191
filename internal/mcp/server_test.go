package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/launch"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

func newTestServer(t *testing.T, launcher launch.Launcher) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)

	cfg := config.DefaultConfig()
	cfg.QuickShortcuts = []config.Shortcut{{Name: "Terminal", Exe: "/usr/bin/xterm", Args: []string{}}}
	cfg.Categories = config.Categories{
		{Name: "Games", Icon: "g.png", Shortcuts: []config.Shortcut{{Name: "Chess", Exe: "/usr/games/chess", Args: []string{"--fast"}}}},
		{Name: "Empty", Legacy: true, Shortcuts: []config.Shortcut{}},
	}

	ctrl := toolbar.New(cfg, toolbar.Options{Path: path, Launcher: launcher})
	return NewServer(NewLocal(ctrl), nil), path
}

func TestListShortcuts(t *testing.T) {
	s, _ := newTestServer(t, nil)

	_, out, err := s.handleListShortcuts(context.Background(), nil, ListShortcutsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Quick) != 1 || out.Quick[0].Name != "Terminal" {
		t.Fatalf("unexpected quick shortcuts %+v", out.Quick)
	}
	if len(out.Categories) != 2 || out.Categories[0].Name != "Games" || out.Categories[1].Name != "Empty" {
		t.Fatalf("categories must keep document order, got %+v", out.Categories)
	}
	chess := out.Categories[0].Shortcuts[0]
	if chess.Category != "Games" || chess.Index != 0 || chess.Args[0] != "--fast" {
		t.Fatalf("unexpected shortcut info %+v", chess)
	}

	_, out, err = s.handleListShortcuts(context.Background(), nil, ListShortcutsInput{Category: "Games"})
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if len(out.Quick) != 0 || len(out.Categories) != 1 {
		t.Fatalf("expected only Games, got %+v", out)
	}

	if _, _, err := s.handleListShortcuts(context.Background(), nil, ListShortcutsInput{Category: "Nope"}); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestLaunchShortcut(t *testing.T) {
	var got []string
	s, _ := newTestServer(t, launch.Func(func(exe string, args []string) error {
		got = append(got, exe)
		return nil
	}))

	res, out, err := s.handleLaunchShortcut(context.Background(), nil, LaunchShortcutInput{Category: "Games", Index: 0})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if !out.Launched || out.Name != "Chess" || res == nil {
		t.Fatalf("unexpected output %+v", out)
	}
	if _, _, err := s.handleLaunchShortcut(context.Background(), nil, LaunchShortcutInput{Index: 0}); err != nil {
		t.Fatalf("launch quick: %v", err)
	}
	if len(got) != 2 || got[0] != "/usr/games/chess" || got[1] != "/usr/bin/xterm" {
		t.Fatalf("unexpected launches %v", got)
	}

	if _, _, err := s.handleLaunchShortcut(context.Background(), nil, LaunchShortcutInput{Index: 3}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestLaunchShortcut_Failure(t *testing.T) {
	s, _ := newTestServer(t, launch.Func(func(exe string, args []string) error {
		return errors.New("boom")
	}))

	_, _, err := s.handleLaunchShortcut(context.Background(), nil, LaunchShortcutInput{Index: 0})
	var lerr *launch.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *launch.Error, got %T (%v)", err, err)
	}
}

func TestAddShortcut_Saves(t *testing.T) {
	s, path := newTestServer(t, nil)

	_, out, err := s.handleAddShortcut(context.Background(), nil, AddShortcutInput{
		Category: "Empty",
		Name:     "Editor",
		Exe:      "/usr/bin/vim",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Index != 0 || !out.Saved {
		t.Fatalf("unexpected output %+v", out)
	}

	res := config.Load(path)
	if res.Err != nil {
		t.Fatalf("load: %v", res.Err)
	}
	c, ok := res.Config.Categories.Get("Empty")
	if !ok || len(c.Shortcuts) != 1 || c.Shortcuts[0].Name != "Editor" {
		t.Fatalf("expected saved shortcut, got %+v", res.Config.Categories)
	}
	if !c.Legacy {
		t.Fatalf("adding a shortcut must not upgrade a legacy category")
	}
}

func TestAddShortcut_Invalid(t *testing.T) {
	s, path := newTestServer(t, nil)

	_, _, err := s.handleAddShortcut(context.Background(), nil, AddShortcutInput{Name: " ", Exe: "/bin/true"})
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *config.ValidationError, got %T (%v)", err, err)
	}
	if res := config.Load(path); res.Origin != config.OriginCreated {
		t.Fatalf("rejected add must not write the document, origin=%s", res.Origin)
	}
}

func TestRemoveShortcut(t *testing.T) {
	s, path := newTestServer(t, nil)

	_, out, err := s.handleRemoveShortcut(context.Background(), nil, RemoveShortcutInput{Category: "Games", Index: 0})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out.Removed.Name != "Chess" {
		t.Fatalf("unexpected removed shortcut %+v", out.Removed)
	}
	res := config.Load(path)
	c, _ := res.Config.Categories.Get("Games")
	if len(c.Shortcuts) != 0 {
		t.Fatalf("expected Games to be empty after save, got %+v", c.Shortcuts)
	}
}

// shiftingToolbar edits the document right before every mutation, the way a
// second client of the daemon could.
type shiftingToolbar struct {
	*Local
	before func()
}

func (s *shiftingToolbar) Mutate(m toolbar.Mutation, save bool) (int, error) {
	s.before()
	return s.Local.Mutate(m, save)
}

func TestRemoveShortcut_ListChangedInBetween(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg := config.DefaultConfig()
	cfg.QuickShortcuts = []config.Shortcut{
		{Name: "Terminal", Exe: "/usr/bin/xterm", Args: []string{}},
		{Name: "Browser", Exe: "/usr/bin/firefox", Args: []string{}},
	}
	ctrl := toolbar.New(cfg, toolbar.Options{Path: path})
	local := NewLocal(ctrl)
	tb := &shiftingToolbar{Local: local, before: func() {
		ctrl.MoveShortcutDown(0)
	}}
	s := NewServer(tb, nil)

	_, _, err := s.handleRemoveShortcut(context.Background(), nil, RemoveShortcutInput{Index: 0})
	if !errors.Is(err, config.ErrShortcutChanged) {
		t.Fatalf("expected ErrShortcutChanged, got %v", err)
	}
	got, _ := local.Config()
	if len(got.QuickShortcuts) != 2 {
		t.Fatalf("nothing may be removed when the list moved, got %+v", got.QuickShortcuts)
	}
}
