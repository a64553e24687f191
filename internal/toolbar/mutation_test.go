package toolbar

import (
	"testing"

	"github.com/1broseidon/launchbar/internal/config"
)

func TestApply_Dispatch(t *testing.T) {
	c, _ := newTestController(t)

	idx, err := c.Apply(Mutation{Op: OpAddCategoryShortcut, Category: "VS Code", Shortcut: &config.Shortcut{Name: "Proj3", Exe: "code"}})
	if err != nil || idx != 2 {
		t.Fatalf("add: %d %v", idx, err)
	}
	if _, err := c.Apply(Mutation{Op: OpEditCategory, Category: "VS Code", NewName: "Editors", Icon: "code.png"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	cat, ok := c.Config().Categories.Get("Editors")
	if !ok || cat.Icon != "code.png" || len(cat.Shortcuts) != 3 {
		t.Fatalf("unexpected category %+v", cat)
	}

	_, err = c.Apply(Mutation{Op: OpAddShortcut})
	assertValidation(t, err, config.ErrEmptyName)

	if _, err := c.Apply(Mutation{Op: "explode"}); err == nil {
		t.Fatalf("expected error for unknown op")
	}
}

func TestApply_ExpectGuardsStaleEdits(t *testing.T) {
	c, _ := newTestController(t)
	first := c.Config().QuickShortcuts[0]
	second := c.Config().QuickShortcuts[1]

	// The list changed after the caller read it: index 0 now holds another
	// shortcut.
	if _, err := c.MoveShortcutDown(0); err != nil {
		t.Fatalf("move: %v", err)
	}

	_, err := c.Apply(Mutation{Op: OpRemoveShortcut, Index: 0, Expect: &first})
	assertValidation(t, err, config.ErrShortcutChanged)
	if got := c.Config().QuickShortcuts; len(got) != 2 || !got[0].Equal(second) {
		t.Fatalf("rejected remove must leave the list alone, got %+v", got)
	}

	if _, err := c.Apply(Mutation{Op: OpRemoveShortcut, Index: 1, Expect: &first}); err != nil {
		t.Fatalf("remove with matching expect: %v", err)
	}
	if got := c.Config().QuickShortcuts; len(got) != 1 || !got[0].Equal(second) {
		t.Fatalf("expected only %q left, got %+v", second.Name, got)
	}

	godot, _ := c.Config().Categories.Get("Godot")
	stale := godot.Shortcuts[0].Clone()
	stale.Name = "Other"
	_, err = c.Apply(Mutation{Op: OpRemoveCategoryShortcut, Category: "Godot", Index: 0, Expect: &stale})
	assertValidation(t, err, config.ErrShortcutChanged)

	_, err = c.Apply(Mutation{Op: OpRemoveShortcut, Index: 5, Expect: &first})
	assertValidation(t, err, config.ErrIndexOutOfRange)
}
