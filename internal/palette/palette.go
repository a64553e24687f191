// Package palette picks a shortcut through an external dmenu-style launcher
// (rofi, fuzzel, wofi or dmenu).
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single row in a palette.
type Item struct {
	Label     string  // Display text
	Icon      string  // Icon name or image path, for backends that show icons
	Meta      string  // Hidden search keywords (rofi meta field)
	IsHeader  bool    // Non-selectable section header (bold)
	IsDivider bool    // Non-selectable divider line (dim)
	Target    *Target // Shortcut the row launches; nil for headers and dividers
}

// Selectable reports whether choosing the row means anything.
func (i Item) Selectable() bool {
	return !i.IsHeader && !i.IsDivider && i.Target != nil
}

// Capabilities describes what features a backend supports.
type Capabilities struct {
	Icons         bool // Supports icon display
	Markup        bool // Supports pango markup in labels
	NonSelectable bool // Supports non-selectable rows (headers)
	IndexOutput   bool // Can output selection index (not just text)
	MessageBar    bool // Supports message/prompt bar
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt. message is shown where the backend
	// has a message bar. A closed palette returns ErrCancelled.
	Show(prompt string, items []Item, message string) (Item, error)

	Capabilities() Capabilities
}

// Names lists the supported backends in detection order.
var Names = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// AutoDetect selects the first available backend in priority order.
func AutoDetect() (Backend, error) {
	name, err := DetectBackend()
	if err != nil {
		return nil, err
	}
	return NewBackend(name)
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var b Backend
	switch name {
	case "", "auto":
		return AutoDetect()
	case "rofi":
		b = NewRofiBackend()
	case "fuzzel":
		b = NewFuzzelBackend()
	case "wofi":
		b = NewWofiBackend()
	case "dmenu":
		b = NewDmenuBackend()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(Names, ", "))
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return b, nil
}
