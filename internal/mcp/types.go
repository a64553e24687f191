package mcp

import "github.com/1broseidon/launchbar/internal/config"

// ListShortcutsInput is the input for the list_shortcuts tool.
type ListShortcutsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only list this category. Empty lists quick shortcuts and every category."`
}

// ShortcutInfo describes one shortcut and how to address it.
type ShortcutInfo struct {
	Category string   `json:"category,omitempty"`
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Exe      string   `json:"exe"`
	Args     []string `json:"args"`
}

// CategoryInfo describes one category.
type CategoryInfo struct {
	Name      string         `json:"name"`
	Icon      string         `json:"icon,omitempty"`
	Shortcuts []ShortcutInfo `json:"shortcuts"`
}

// ListShortcutsOutput is the output for the list_shortcuts tool.
type ListShortcutsOutput struct {
	Quick      []ShortcutInfo  `json:"quick"`
	Categories []CategoryInfo  `json:"categories"`
	Settings   config.Settings `json:"settings"`
}

// LaunchShortcutInput is the input for the launch_shortcut tool.
type LaunchShortcutInput struct {
	Category string `json:"category,omitempty" jsonschema:"Category name. Empty selects a quick shortcut."`
	Index    int    `json:"index" jsonschema:"Zero-based position of the shortcut"`
}

// LaunchShortcutOutput is the output for the launch_shortcut tool.
type LaunchShortcutOutput struct {
	Name     string `json:"name"`
	Exe      string `json:"exe"`
	Launched bool   `json:"launched"`
}

// AddShortcutInput is the input for the add_shortcut tool.
type AddShortcutInput struct {
	Category string   `json:"category,omitempty" jsonschema:"Category to add to. Empty adds a quick shortcut."`
	Name     string   `json:"name" jsonschema:"Display name; the bar shows its first letter"`
	Exe      string   `json:"exe" jsonschema:"Path to the executable"`
	Args     []string `json:"args,omitempty" jsonschema:"Arguments passed to the executable"`
}

// AddShortcutOutput is the output for the add_shortcut tool.
type AddShortcutOutput struct {
	Category string `json:"category,omitempty"`
	Index    int    `json:"index"`
	Saved    bool   `json:"saved"`
}

// RemoveShortcutInput is the input for the remove_shortcut tool.
type RemoveShortcutInput struct {
	Category string `json:"category,omitempty" jsonschema:"Category to remove from. Empty removes a quick shortcut."`
	Index    int    `json:"index" jsonschema:"Zero-based position of the shortcut"`
}

// RemoveShortcutOutput is the output for the remove_shortcut tool.
type RemoveShortcutOutput struct {
	Removed ShortcutInfo `json:"removed"`
	Saved   bool         `json:"saved"`
}
