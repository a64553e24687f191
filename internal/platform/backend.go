package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/launchbar/internal/layout"
)

// ErrUnsupported is returned where no screen backend exists for the platform.
var ErrUnsupported = errors.New("no screen backend for this platform")

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Bounds layout.Rect `json:"bounds"`
	Usable layout.Rect `json:"usable"`
}

// Backend reports screen geometry for anchoring the bar.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	Pointer() (layout.Point, error)
	Disconnect()
}

// Static is a backend with one fixed display, used for --screen and tests.
type Static struct {
	Display Display
	At      layout.Point
}

var _ Backend = (*Static)(nil)

// NewStatic returns a single display of the given size at the origin.
func NewStatic(width, height int) *Static {
	r := layout.Rect{Width: width, Height: height}
	return &Static{Display: Display{Name: "static", Bounds: r, Usable: r}}
}

func (s *Static) Displays() ([]Display, error)    { return []Display{s.Display}, nil }
func (s *Static) ActiveDisplay() (Display, error) { return s.Display, nil }
func (s *Static) Pointer() (layout.Point, error)  { return s.At, nil }
func (s *Static) Disconnect()                     {}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(s string) (layout.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return layout.Size{}, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return layout.Size{}, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return layout.Size{}, fmt.Errorf("invalid height in %q", s)
	}
	return layout.Size{Width: width, Height: height}, nil
}
