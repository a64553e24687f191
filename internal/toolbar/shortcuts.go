package toolbar

import (
	"fmt"
	"strings"

	"github.com/1broseidon/launchbar/internal/config"
)

func invalid(path string, err error) error {
	return &config.ValidationError{Path: path, Err: err}
}

// checkShortcut trims the name and rejects an empty one.
func checkShortcut(path string, s config.Shortcut) (config.Shortcut, error) {
	s = s.Clone()
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return s, invalid(path+".name", config.ErrEmptyName)
	}
	return s, nil
}

func checkIndex(path string, list []config.Shortcut, i int) error {
	if i < 0 || i >= len(list) {
		return invalid(fmt.Sprintf("%s.%d", path, i), fmt.Errorf("%w: %d of %d", config.ErrIndexOutOfRange, i, len(list)))
	}
	return nil
}

func moveShortcut(list []config.Shortcut, i, delta int) int {
	j := i + delta
	if j < 0 || j >= len(list) {
		return i
	}
	list[i], list[j] = list[j], list[i]
	return j
}

const quickPath = "quick_shortcuts"

// AddShortcut appends a quick shortcut and returns its index.
func (c *Controller) AddShortcut(s config.Shortcut) (int, error) {
	s, err := checkShortcut(fmt.Sprintf("%s.%d", quickPath, len(c.cfg.QuickShortcuts)), s)
	if err != nil {
		return -1, err
	}
	c.cfg.QuickShortcuts = append(c.cfg.QuickShortcuts, s)
	c.changed()
	return len(c.cfg.QuickShortcuts) - 1, nil
}

// UpdateShortcut replaces the quick shortcut at i.
func (c *Controller) UpdateShortcut(i int, s config.Shortcut) error {
	if err := checkIndex(quickPath, c.cfg.QuickShortcuts, i); err != nil {
		return err
	}
	s, err := checkShortcut(fmt.Sprintf("%s.%d", quickPath, i), s)
	if err != nil {
		return err
	}
	c.cfg.QuickShortcuts[i] = s
	c.changed()
	return nil
}

// RemoveShortcut deletes the quick shortcut at i.
func (c *Controller) RemoveShortcut(i int) error {
	if err := checkIndex(quickPath, c.cfg.QuickShortcuts, i); err != nil {
		return err
	}
	c.cfg.QuickShortcuts = append(c.cfg.QuickShortcuts[:i], c.cfg.QuickShortcuts[i+1:]...)
	c.changed()
	return nil
}

// MoveShortcutUp swaps the quick shortcut at i with its predecessor and
// returns its new index. The first entry stays put.
func (c *Controller) MoveShortcutUp(i int) (int, error) {
	if err := checkIndex(quickPath, c.cfg.QuickShortcuts, i); err != nil {
		return i, err
	}
	j := moveShortcut(c.cfg.QuickShortcuts, i, -1)
	if j != i {
		c.changed()
	}
	return j, nil
}

// MoveShortcutDown swaps the quick shortcut at i with its successor and
// returns its new index. The last entry stays put.
func (c *Controller) MoveShortcutDown(i int) (int, error) {
	if err := checkIndex(quickPath, c.cfg.QuickShortcuts, i); err != nil {
		return i, err
	}
	j := moveShortcut(c.cfg.QuickShortcuts, i, 1)
	if j != i {
		c.changed()
	}
	return j, nil
}

// category returns the index of the named category or a validation error.
func (c *Controller) category(name string) (int, error) {
	i := c.cfg.Categories.Index(name)
	if i < 0 {
		return -1, invalid("categories."+name, config.ErrUnknownCategory)
	}
	return i, nil
}

// AddCategoryShortcut appends a shortcut to a category and returns its index.
// The category keeps its stored shape.
func (c *Controller) AddCategoryShortcut(category string, s config.Shortcut) (int, error) {
	ci, err := c.category(category)
	if err != nil {
		return -1, err
	}
	cat := &c.cfg.Categories[ci]
	s, err = checkShortcut(fmt.Sprintf("categories.%s.%d", category, len(cat.Shortcuts)), s)
	if err != nil {
		return -1, err
	}
	cat.Shortcuts = append(cat.Shortcuts, s)
	c.changed()
	return len(cat.Shortcuts) - 1, nil
}

// UpdateCategoryShortcut replaces shortcut i of a category.
func (c *Controller) UpdateCategoryShortcut(category string, i int, s config.Shortcut) error {
	ci, err := c.category(category)
	if err != nil {
		return err
	}
	cat := &c.cfg.Categories[ci]
	if err := checkIndex("categories."+category, cat.Shortcuts, i); err != nil {
		return err
	}
	s, err = checkShortcut(fmt.Sprintf("categories.%s.%d", category, i), s)
	if err != nil {
		return err
	}
	cat.Shortcuts[i] = s
	c.changed()
	return nil
}

// RemoveCategoryShortcut deletes shortcut i of a category.
func (c *Controller) RemoveCategoryShortcut(category string, i int) error {
	ci, err := c.category(category)
	if err != nil {
		return err
	}
	cat := &c.cfg.Categories[ci]
	if err := checkIndex("categories."+category, cat.Shortcuts, i); err != nil {
		return err
	}
	cat.Shortcuts = append(cat.Shortcuts[:i], cat.Shortcuts[i+1:]...)
	c.changed()
	return nil
}

// MoveCategoryShortcutUp moves shortcut i of a category one place up.
func (c *Controller) MoveCategoryShortcutUp(category string, i int) (int, error) {
	return c.moveCategoryShortcut(category, i, -1)
}

// MoveCategoryShortcutDown moves shortcut i of a category one place down.
func (c *Controller) MoveCategoryShortcutDown(category string, i int) (int, error) {
	return c.moveCategoryShortcut(category, i, 1)
}

func (c *Controller) moveCategoryShortcut(category string, i, delta int) (int, error) {
	ci, err := c.category(category)
	if err != nil {
		return i, err
	}
	cat := &c.cfg.Categories[ci]
	if err := checkIndex("categories."+category, cat.Shortcuts, i); err != nil {
		return i, err
	}
	j := moveShortcut(cat.Shortcuts, i, delta)
	if j != i {
		c.changed()
	}
	return j, nil
}
