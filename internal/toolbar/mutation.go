package toolbar

import (
	"fmt"

	"github.com/1broseidon/launchbar/internal/config"
)

// Op names a mutation for callers that cannot call methods directly, such as
// the IPC protocol and the CLI.
type Op string

const (
	OpAddShortcut              Op = "add_shortcut"
	OpUpdateShortcut           Op = "update_shortcut"
	OpRemoveShortcut           Op = "remove_shortcut"
	OpMoveShortcutUp           Op = "move_shortcut_up"
	OpMoveShortcutDown         Op = "move_shortcut_down"
	OpAddCategory              Op = "add_category"
	OpRenameCategory           Op = "rename_category"
	OpSetCategoryIcon          Op = "set_category_icon"
	OpEditCategory             Op = "edit_category"
	OpRemoveCategory           Op = "remove_category"
	OpAddCategoryShortcut      Op = "add_category_shortcut"
	OpUpdateCategoryShortcut   Op = "update_category_shortcut"
	OpRemoveCategoryShortcut   Op = "remove_category_shortcut"
	OpMoveCategoryShortcutUp   Op = "move_category_shortcut_up"
	OpMoveCategoryShortcutDown Op = "move_category_shortcut_down"
)

// Mutation is a serializable edit. Which fields are read depends on Op.
type Mutation struct {
	Op       Op               `json:"op"`
	Category string           `json:"category,omitempty"`
	Index    int              `json:"index,omitempty"`
	Name     string           `json:"name,omitempty"`
	NewName  string           `json:"new_name,omitempty"`
	Icon     string           `json:"icon,omitempty"`
	Shortcut *config.Shortcut `json:"shortcut,omitempty"`

	// Expect, when set on an edit that addresses an existing shortcut, must
	// equal the shortcut at Index or the edit is rejected with
	// config.ErrShortcutChanged. Clients that read, then edit in a separate
	// request use it to avoid acting on a list that changed in between.
	Expect *config.Shortcut `json:"expect,omitempty"`
}

// Apply performs m. The returned index is the affected shortcut's position
// after the edit, or -1 when the edit has no single shortcut.
func (c *Controller) Apply(m Mutation) (int, error) {
	shortcut := func() (config.Shortcut, error) {
		if m.Shortcut == nil {
			return config.Shortcut{}, invalid("shortcut", config.ErrEmptyName)
		}
		return *m.Shortcut, nil
	}

	if err := c.checkExpect(m); err != nil {
		return -1, err
	}

	switch m.Op {
	case OpAddShortcut:
		s, err := shortcut()
		if err != nil {
			return -1, err
		}
		return c.AddShortcut(s)
	case OpUpdateShortcut:
		s, err := shortcut()
		if err != nil {
			return -1, err
		}
		return m.Index, c.UpdateShortcut(m.Index, s)
	case OpRemoveShortcut:
		return -1, c.RemoveShortcut(m.Index)
	case OpMoveShortcutUp:
		return c.MoveShortcutUp(m.Index)
	case OpMoveShortcutDown:
		return c.MoveShortcutDown(m.Index)
	case OpAddCategory:
		return -1, c.AddCategory(m.Name, m.Icon)
	case OpRenameCategory:
		return -1, c.RenameCategory(m.Category, m.NewName)
	case OpSetCategoryIcon:
		return -1, c.SetCategoryIcon(m.Category, m.Icon)
	case OpEditCategory:
		return -1, c.EditCategory(m.Category, m.NewName, m.Icon)
	case OpRemoveCategory:
		return -1, c.RemoveCategory(m.Category)
	case OpAddCategoryShortcut:
		s, err := shortcut()
		if err != nil {
			return -1, err
		}
		return c.AddCategoryShortcut(m.Category, s)
	case OpUpdateCategoryShortcut:
		s, err := shortcut()
		if err != nil {
			return -1, err
		}
		return m.Index, c.UpdateCategoryShortcut(m.Category, m.Index, s)
	case OpRemoveCategoryShortcut:
		return -1, c.RemoveCategoryShortcut(m.Category, m.Index)
	case OpMoveCategoryShortcutUp:
		return c.MoveCategoryShortcutUp(m.Category, m.Index)
	case OpMoveCategoryShortcutDown:
		return c.MoveCategoryShortcutDown(m.Category, m.Index)
	default:
		return -1, fmt.Errorf("unknown mutation %q", m.Op)
	}
}

// checkExpect compares m.Expect with the shortcut m addresses.
func (c *Controller) checkExpect(m Mutation) error {
	if m.Expect == nil {
		return nil
	}

	var list []config.Shortcut
	path := quickPath
	switch m.Op {
	case OpUpdateShortcut, OpRemoveShortcut, OpMoveShortcutUp, OpMoveShortcutDown:
		list = c.cfg.QuickShortcuts
	case OpUpdateCategoryShortcut, OpRemoveCategoryShortcut, OpMoveCategoryShortcutUp, OpMoveCategoryShortcutDown:
		ci, err := c.category(m.Category)
		if err != nil {
			return err
		}
		list = c.cfg.Categories[ci].Shortcuts
		path = "categories." + m.Category
	default:
		return nil
	}

	if err := checkIndex(path, list, m.Index); err != nil {
		return err
	}
	if !list[m.Index].Equal(*m.Expect) {
		return invalid(fmt.Sprintf("%s.%d", path, m.Index), config.ErrShortcutChanged)
	}
	return nil
}
