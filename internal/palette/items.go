package palette

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/1broseidon/launchbar/internal/config"
)

// Target addresses a shortcut. An empty Category means a quick shortcut.
type Target struct {
	Category string
	Index    int
}

func (t Target) String() string {
	if t.Category == "" {
		return fmt.Sprintf("quick/%d", t.Index)
	}
	return fmt.Sprintf("%s/%d", t.Category, t.Index)
}

// Items flattens cfg into palette rows: quick shortcuts first, then each
// category under a header, in document order. Empty categories are skipped.
func Items(cfg *config.Config) []Item {
	items := make([]Item, 0, len(cfg.QuickShortcuts)+len(cfg.Categories)*4)
	for i, s := range cfg.QuickShortcuts {
		items = append(items, shortcutItem(s, "", "", Target{Index: i}))
	}
	for _, c := range cfg.Categories {
		if len(c.Shortcuts) == 0 {
			continue
		}
		if len(items) > 0 {
			items = append(items, Item{Label: strings.Repeat("─", 8), IsDivider: true})
		}
		items = append(items, Item{Label: c.Name, Icon: c.Icon, IsHeader: true})
		for i, s := range c.Shortcuts {
			items = append(items, shortcutItem(s, c.Name, c.Icon, Target{Category: c.Name, Index: i}))
		}
	}
	return items
}

func shortcutItem(s config.Shortcut, category, categoryIcon string, t Target) Item {
	label := s.Name
	if category != "" {
		label = category + " › " + s.Name
	}
	icon := categoryIcon
	if icon == "" {
		icon = strings.TrimSuffix(filepath.Base(s.Exe), filepath.Ext(s.Exe))
	}
	target := t
	return Item{
		Label:  label,
		Icon:   icon,
		Meta:   strings.TrimSpace(s.Exe + " " + strings.Join(s.Args, " ")),
		Target: &target,
	}
}

// Resolve maps a selected row back to its shortcut in cfg.
func Resolve(cfg *config.Config, item Item) (Target, config.Shortcut, error) {
	if !item.Selectable() {
		return Target{}, config.Shortcut{}, fmt.Errorf("palette: %q is not a shortcut", item.Label)
	}
	t := *item.Target
	list := cfg.QuickShortcuts
	if t.Category != "" {
		c, ok := cfg.Categories.Get(t.Category)
		if !ok {
			return Target{}, config.Shortcut{}, fmt.Errorf("palette: category %q no longer exists", t.Category)
		}
		list = c.Shortcuts
	}
	if t.Index < 0 || t.Index >= len(list) {
		return Target{}, config.Shortcut{}, fmt.Errorf("palette: %s no longer exists", t)
	}
	return t, list[t.Index], nil
}

// Choose shows cfg's shortcuts and returns the one the user picked. Backends
// that cannot skip headers get a plain list; a header picked anyway re-shows
// the palette.
func Choose(b Backend, cfg *config.Config, prompt string) (Target, config.Shortcut, error) {
	items := Items(cfg)
	if !b.Capabilities().NonSelectable {
		selectable := items[:0:0]
		for _, it := range items {
			if it.Selectable() {
				selectable = append(selectable, it)
			}
		}
		items = selectable
	}
	if len(items) == 0 {
		return Target{}, config.Shortcut{}, fmt.Errorf("palette: no shortcuts configured")
	}
	if prompt == "" {
		prompt = "launchbar"
	}

	for {
		item, err := b.Show(prompt, items, "")
		if err != nil {
			return Target{}, config.Shortcut{}, err
		}
		if !item.Selectable() {
			continue
		}
		return Resolve(cfg, item)
	}
}
