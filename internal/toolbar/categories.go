package toolbar

import (
	"strings"

	"github.com/1broseidon/launchbar/internal/config"
)

// AddCategory appends an empty category. New categories are always stored in
// the extended shape.
func (c *Controller) AddCategory(name, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("categories", config.ErrEmptyName)
	}
	if c.cfg.Categories.Index(name) >= 0 {
		return invalid("categories."+name, config.ErrDuplicateCategory)
	}
	c.cfg.Categories = append(c.cfg.Categories, config.Category{
		Name:      name,
		Icon:      strings.TrimSpace(icon),
		Shortcuts: []config.Shortcut{},
	})
	c.changed()
	return nil
}

// EditCategory renames a category and sets its icon in one step. The category
// keeps its place and its shortcut order, and is upgraded to the extended
// shape if it was stored as a bare list.
func (c *Controller) EditCategory(oldName, newName, icon string) error {
	ci, err := c.category(oldName)
	if err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return invalid("categories."+oldName+".name", config.ErrEmptyName)
	}
	if newName != oldName && c.cfg.Categories.Index(newName) >= 0 {
		return invalid("categories."+newName, config.ErrDuplicateCategory)
	}

	cat := &c.cfg.Categories[ci]
	cat.Name = newName
	cat.Icon = strings.TrimSpace(icon)
	cat.Legacy = false
	if cat.Shortcuts == nil {
		cat.Shortcuts = []config.Shortcut{}
	}
	c.changed()
	return nil
}

// RenameCategory renames a category, keeping its icon.
func (c *Controller) RenameCategory(oldName, newName string) error {
	ci, err := c.category(oldName)
	if err != nil {
		return err
	}
	return c.EditCategory(oldName, newName, c.cfg.Categories[ci].Icon)
}

// SetCategoryIcon sets a category's icon. An empty icon clears it.
func (c *Controller) SetCategoryIcon(name, icon string) error {
	if _, err := c.category(name); err != nil {
		return err
	}
	return c.EditCategory(name, name, icon)
}

// RemoveCategory deletes a category and all its shortcuts.
func (c *Controller) RemoveCategory(name string) error {
	ci, err := c.category(name)
	if err != nil {
		return err
	}
	c.cfg.Categories = append(c.cfg.Categories[:ci], c.cfg.Categories[ci+1:]...)
	c.changed()
	return nil
}
