package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FileName is the document name used when no explicit path is given.
	FileName = "toolbar_config.json"

	// EnvConfigPath overrides the document location.
	EnvConfigPath = "LAUNCHBAR_CONFIG"
)

// Settings values that apply when a document omits them.
const (
	DefaultPosition  = "bottom-center"
	DefaultOpacity   = 80
	DefaultAutostart = false
	DefaultMargin    = 100

	MinOpacity = 20
	MaxOpacity = 100
)

// Shortcut is a single launchable program. Identity is its index in the
// owning list.
type Shortcut struct {
	Name    string   `json:"name" yaml:"name"`
	Icon    string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Exe     string   `json:"exe" yaml:"exe"`
	Args    []string `json:"args" yaml:"args"`
	Tooltip string   `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// Label returns the text shown on hover: the tooltip when set, else the name.
func (s Shortcut) Label() string {
	if strings.TrimSpace(s.Tooltip) != "" {
		return s.Tooltip
	}
	return s.Name
}

// Clone returns a deep copy of the shortcut.
func (s Shortcut) Clone() Shortcut {
	out := s
	out.Args = append([]string{}, s.Args...)
	return out
}

// Equal reports whether s and o hold the same fields. Nil and empty argument
// lists are equal.
func (s Shortcut) Equal(o Shortcut) bool {
	if s.Name != o.Name || s.Exe != o.Exe || s.Icon != o.Icon || s.Tooltip != o.Tooltip {
		return false
	}
	if len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if s.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Settings holds the bar's presentation settings.
type Settings struct {
	// Position is one of the six zone names. Unknown values are kept as-is and
	// resolved to bottom-center by the layout engine.
	Position  string `json:"position" yaml:"position"`
	Opacity   int    `json:"opacity" yaml:"opacity"`     // percent, 20-100
	Autostart bool   `json:"autostart" yaml:"autostart"` // start with the session
	Margin    int    `json:"margin" yaml:"margin"`       // px from the screen edge
}

// DefaultSettings returns the settings of a fresh document.
func DefaultSettings() Settings {
	return Settings{
		Position:  DefaultPosition,
		Opacity:   DefaultOpacity,
		Autostart: DefaultAutostart,
		Margin:    DefaultMargin,
	}
}

// Config is the whole persisted document.
type Config struct {
	QuickShortcuts []Shortcut `json:"quick_shortcuts" yaml:"quick_shortcuts"`
	Categories     Categories `json:"categories" yaml:"categories"`
	Settings       Settings   `json:"settings" yaml:"settings"`
}

// Clone returns a deep copy of the document.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{Settings: c.Settings}
	out.QuickShortcuts = cloneShortcuts(c.QuickShortcuts)
	out.Categories = c.Categories.Clone()
	return out
}

func cloneShortcuts(in []Shortcut) []Shortcut {
	out := make([]Shortcut, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// DefaultConfig returns the document written when none exists yet.
func DefaultConfig() *Config {
	code := `C:\Path\To\VSCode\Code.exe`
	godot := `C:\Path\To\Godot\Godot.exe`

	return &Config{
		QuickShortcuts: []Shortcut{
			{
				Name:    "VS Code Projeto1",
				Exe:     code,
				Args:    []string{`C:\Path\To\Project1`},
				Tooltip: "Projeto 1 no VS Code",
			},
			{
				Name:    "Godot Projeto1",
				Exe:     godot,
				Args:    []string{"--path", `C:\Path\To\GodotProject1`},
				Tooltip: "Projeto 1 no Godot",
			},
		},
		Categories: Categories{
			{
				Name:   "VS Code",
				Legacy: true,
				Shortcuts: []Shortcut{
					{Name: "Projeto 1", Exe: code, Args: []string{`C:\Path\To\Project1`}},
					{Name: "Projeto 2", Exe: code, Args: []string{`C:\Path\To\Project2`}},
				},
			},
			{
				Name:   "Godot",
				Legacy: true,
				Shortcuts: []Shortcut{
					{Name: "Projeto 1", Exe: godot, Args: []string{"--path", `C:\Path\To\GodotProject1`}},
				},
			},
		},
		Settings: DefaultSettings(),
	}
}

// DefaultConfigPath returns the document path: $LAUNCHBAR_CONFIG when set,
// otherwise toolbar_config.json beside the running executable.
func DefaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Validate checks the invariants the controller relies on. It returns the
// first violation as a *ValidationError plus any non-fatal warnings.
func (c *Config) Validate() ([]string, error) {
	var warnings []string

	for i, s := range c.QuickShortcuts {
		if strings.TrimSpace(s.Name) == "" {
			return warnings, &ValidationError{Path: fmt.Sprintf("quick_shortcuts.%d.name", i), Err: ErrEmptyName}
		}
	}

	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return warnings, &ValidationError{Path: "categories", Err: ErrEmptyName}
		}
		if _, dup := seen[cat.Name]; dup {
			return warnings, &ValidationError{Path: "categories." + cat.Name, Err: ErrDuplicateCategory}
		}
		seen[cat.Name] = struct{}{}
		for i, s := range cat.Shortcuts {
			if strings.TrimSpace(s.Name) == "" {
				return warnings, &ValidationError{Path: fmt.Sprintf("categories.%s.shortcuts.%d.name", cat.Name, i), Err: ErrEmptyName}
			}
		}
	}

	if !knownPosition(c.Settings.Position) {
		warnings = append(warnings, fmt.Sprintf("settings.position %q is not a known zone; bottom-center will be used", c.Settings.Position))
	}
	if c.Settings.Opacity < MinOpacity || c.Settings.Opacity > MaxOpacity {
		return warnings, &ValidationError{
			Path: "settings.opacity",
			Err:  fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidOpacity, c.Settings.Opacity, MinOpacity, MaxOpacity),
		}
	}
	if c.Settings.Margin < 0 {
		return warnings, &ValidationError{Path: "settings.margin", Err: fmt.Errorf("margin must be >= 0")}
	}

	return warnings, nil
}

// knownPosition reports whether p is one of the six zone names. The layout
// package owns the zone type; this list mirrors it for storage warnings.
func knownPosition(p string) bool {
	switch p {
	case "bottom-center", "top-center", "bottom-left", "bottom-right", "top-left", "top-right":
		return true
	default:
		return false
	}
}
