package toolbar

import (
	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/layout"
)

// State is a read-only snapshot for presentation layers.
type State struct {
	Phase          string         `json:"phase"`
	Zone           layout.Zone    `json:"zone"`
	Position       string         `json:"position"`
	Screen         layout.Size    `json:"screen"`
	Display        layout.Rect    `json:"display"`
	Window         layout.Size    `json:"window"`
	WindowPosition layout.Point   `json:"window_position"`
	Anchor         layout.Point   `json:"anchor"`
	Alpha          int            `json:"alpha"`
	Stylesheet     string         `json:"stylesheet"`
	Dirty          bool           `json:"dirty"`
	Unreadable     bool           `json:"unreadable,omitempty"`
	Path           string         `json:"path"`
	Config         *config.Config `json:"config"`
}

// Snapshot captures the controller's current derived state.
func (c *Controller) Snapshot() State {
	return State{
		Phase:          c.drag.phase.String(),
		Zone:           c.Zone(),
		Position:       c.cfg.Settings.Position,
		Screen:         c.display.Size(),
		Display:        c.display,
		Window:         c.window,
		WindowPosition: c.topLeft,
		Anchor:         c.Anchor(),
		Alpha:          c.Alpha(),
		Stylesheet:     c.Stylesheet().String(),
		Dirty:          c.dirty,
		Unreadable:     c.unreadable,
		Path:           c.opts.Path,
		Config:         c.cfg.Clone(),
	}
}
