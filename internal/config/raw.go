package config

import (
	"fmt"
	"strings"
)

// RawSettings mirrors Settings with pointer fields so a missing key can be told
// apart from a zero value.
type RawSettings struct {
	Position  *string `json:"position" yaml:"position"`
	Opacity   *int    `json:"opacity" yaml:"opacity"`
	Autostart *bool   `json:"autostart" yaml:"autostart"`
	Margin    *int    `json:"margin" yaml:"margin"`
}

// RawConfig is the document as parsed, before defaulting.
type RawConfig struct {
	QuickShortcuts []Shortcut   `json:"quick_shortcuts" yaml:"quick_shortcuts"`
	Categories     Categories   `json:"categories" yaml:"categories"`
	Settings       *RawSettings `json:"settings" yaml:"settings"`
}

// mergeSettings fills every field the document omits from base. A missing
// settings object takes base wholesale.
func mergeSettings(base Settings, overlay *RawSettings) Settings {
	out := base
	if overlay == nil {
		return out
	}
	if overlay.Position != nil {
		out.Position = *overlay.Position
	}
	if overlay.Opacity != nil {
		out.Opacity = *overlay.Opacity
	}
	if overlay.Autostart != nil {
		out.Autostart = *overlay.Autostart
	}
	if overlay.Margin != nil {
		out.Margin = *overlay.Margin
	}
	return out
}

// BuildEffectiveConfig applies defaults and normalization to a parsed
// document. Adjustments that change a stored value are returned as warnings.
func BuildEffectiveConfig(raw RawConfig) (*Config, []string) {
	var warnings []string

	cfg := &Config{
		Categories: Categories{},
		Settings:   mergeSettings(DefaultSettings(), raw.Settings),
	}
	if raw.Settings == nil {
		warnings = append(warnings, "settings missing; using defaults")
	}

	var w []string
	cfg.QuickShortcuts, w = normalizeShortcuts("quick_shortcuts", raw.QuickShortcuts)
	warnings = append(warnings, w...)
	for _, c := range raw.Categories {
		c.Shortcuts, w = normalizeShortcuts("categories."+c.Name, c.Shortcuts)
		warnings = append(warnings, w...)
		cfg.Categories = append(cfg.Categories, c)
	}

	if op := cfg.Settings.Opacity; op < MinOpacity || op > MaxOpacity {
		cfg.Settings.Opacity = ClampOpacity(op)
		warnings = append(warnings, fmt.Sprintf("settings.opacity %d clamped to %d", op, cfg.Settings.Opacity))
	}
	if cfg.Settings.Margin < 0 {
		warnings = append(warnings, fmt.Sprintf("settings.margin %d clamped to 0", cfg.Settings.Margin))
		cfg.Settings.Margin = 0
	}
	if !knownPosition(cfg.Settings.Position) {
		warnings = append(warnings, fmt.Sprintf("settings.position %q is not a known zone; bottom-center will be used", cfg.Settings.Position))
	}

	return cfg, warnings
}

// ClampOpacity limits an opacity percentage to [MinOpacity, MaxOpacity].
func ClampOpacity(pct int) int {
	if pct < MinOpacity {
		return MinOpacity
	}
	if pct > MaxOpacity {
		return MaxOpacity
	}
	return pct
}

// normalizeShortcuts trims names, replaces null args and gives unnamed
// shortcuts a name derived from the executable. The bar draws the first letter
// of the name, so an empty name is never kept.
func normalizeShortcuts(path string, in []Shortcut) ([]Shortcut, []string) {
	var warnings []string
	out := make([]Shortcut, 0, len(in))
	for i, s := range in {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			s.Name = nameFromExe(s.Exe)
			warnings = append(warnings, fmt.Sprintf("%s.%d: empty name replaced with %q", path, i, s.Name))
		}
		if s.Args == nil {
			s.Args = []string{}
		}
		out = append(out, s)
	}
	return out, warnings
}

func nameFromExe(exe string) string {
	// Documents are often written on Windows; split on both separators.
	base := exe
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if strings.TrimSpace(base) == "" {
		return "Shortcut"
	}
	return base
}
