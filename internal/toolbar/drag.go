package toolbar

import "github.com/1broseidon/launchbar/internal/layout"

// Phase is the bar's interaction state.
type Phase int

const (
	// PhaseIdle means the bar sits at its position.
	PhaseIdle Phase = iota
	// PhaseDragging means the pointer is holding the bar.
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type dragState struct {
	phase  Phase
	offset layout.Point // pointer minus window top-left at press time
}

// SetGeometry is SetDisplay for a single screen at the origin.
func (c *Controller) SetGeometry(screen, window layout.Size) layout.Point {
	return c.SetDisplay(layout.Rect{Width: screen.Width, Height: screen.Height}, window)
}

// SetDisplay records the display the bar lives on and the bar's size and,
// unless a drag is in progress, moves the bar to the anchor for the current
// position. display is in virtual-screen coordinates, like pointer events. It
// returns the bar's top-left corner.
func (c *Controller) SetDisplay(display layout.Rect, window layout.Size) layout.Point {
	c.display = display
	c.window = window
	c.reanchor()
	return c.topLeft
}

// Geometry returns the screen and bar sizes last set.
func (c *Controller) Geometry() (screen, window layout.Size) {
	return c.display.Size(), c.window
}

// Display returns the display area last set.
func (c *Controller) Display() layout.Rect { return c.display }

func (c *Controller) reanchor() {
	if c.drag.phase == PhaseDragging {
		return
	}
	c.topLeft = c.Anchor()
}

// Anchor returns where the current position setting places the bar.
func (c *Controller) Anchor() layout.Point {
	return layout.AnchorInRect(c.Zone(), c.display, c.window, c.cfg.Settings.Margin)
}

// WindowPosition returns the bar's current top-left corner, which differs from
// Anchor while dragging and after a drag until the bar is re-anchored.
func (c *Controller) WindowPosition() layout.Point { return c.topLeft }

// Zone returns the zone the stored position resolves to.
func (c *Controller) Zone() layout.Zone { return layout.Resolve(c.cfg.Settings.Position) }

// Phase returns the interaction state.
func (c *Controller) Phase() Phase { return c.drag.phase }

// BeginDrag starts dragging with the pointer at pointer. Pressing again while
// dragging re-records the grab offset.
func (c *Controller) BeginDrag(pointer layout.Point) {
	c.drag = dragState{
		phase:  PhaseDragging,
		offset: pointer.Sub(c.topLeft),
	}
}

// PointerMove moves the bar under the pointer and reclassifies its zone. The
// position setting is updated in memory only. ok is false when no drag is in
// progress; nothing changes then.
func (c *Controller) PointerMove(pointer layout.Point) (topLeft layout.Point, zone layout.Zone, ok bool) {
	if c.drag.phase != PhaseDragging {
		return c.topLeft, c.Zone(), false
	}
	c.topLeft = pointer.Sub(c.drag.offset)
	zone = layout.ClassifyInRect(c.topLeft, c.display)
	if c.cfg.Settings.Position != string(zone) {
		c.cfg.Settings.Position = string(zone)
		c.changed()
	}
	return c.topLeft, zone, true
}

// Release ends a drag. The bar stays where it was dropped and nothing is
// written. It reports whether a drag was in progress.
func (c *Controller) Release() bool {
	if c.drag.phase != PhaseDragging {
		return false
	}
	c.drag = dragState{}
	return true
}
