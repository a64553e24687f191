package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is one output's area in root-window coordinates. Work is the part
// not covered by panels; it equals the full area when the window manager does
// not publish a work area.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int

	WorkX      int
	WorkY      int
	WorkWidth  int
	WorkHeight int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors lists active outputs through RandR. Without RandR the root window
// is reported as a single monitor.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	monitors, err := c.randrMonitors()
	if err != nil || len(monitors) == 0 {
		root, rootErr := c.rootMonitor()
		if rootErr != nil {
			if err != nil {
				return nil, err
			}
			return nil, rootErr
		}
		monitors = []Monitor{root}
	}

	c.applyWorkArea(monitors)
	return monitors, nil
}

func (c *Connection) randrMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

func (c *Connection) rootMonitor() (Monitor, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return Monitor{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return Monitor{
		Name:   "root",
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// applyWorkArea intersects each monitor with the current desktop's
// _NET_WORKAREA.
func (c *Connection) applyWorkArea(monitors []Monitor) {
	for i := range monitors {
		m := &monitors[i]
		m.WorkX, m.WorkY, m.WorkWidth, m.WorkHeight = m.X, m.Y, m.Width, m.Height
	}

	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return
	}
	idx := 0
	if d, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(d) < len(areas) {
		idx = int(d)
	}
	wa := areas[idx]

	for i := range monitors {
		m := &monitors[i]
		x1 := max(m.X, int(wa.X))
		y1 := max(m.Y, int(wa.Y))
		x2 := min(m.X+m.Width, int(wa.X)+int(wa.Width))
		y2 := min(m.Y+m.Height, int(wa.Y)+int(wa.Height))
		if x2 > x1 && y2 > y1 {
			m.WorkX, m.WorkY, m.WorkWidth, m.WorkHeight = x1, y1, x2-x1, y2-y1
		}
	}
}

// Pointer returns the pointer position in root coordinates.
func (c *Connection) Pointer() (x, y int, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// GetActiveMonitor returns the monitor under the pointer, falling back to the
// first monitor.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	if x, y, err := c.Pointer(); err == nil {
		for i := range monitors {
			if monitors[i].contains(x, y) {
				return &monitors[i], nil
			}
		}
	}
	return &monitors[0], nil
}
