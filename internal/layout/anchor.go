package layout

// DefaultMargin is the distance in pixels between the bar and the screen edge.
const DefaultMargin = 100

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a display region in virtual-screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// AnchorPosition returns the top-left corner of a window of size win snapped to
// zone on a screen of size screen. Centering uses floor division. A window
// larger than the screen yields negative coordinates; no clamping is applied.
func AnchorPosition(zone Zone, screen, win Size, margin int) Point {
	zone = Resolve(string(zone))

	var p Point
	switch zone.horizontal() {
	case -1:
		p.X = margin
	case 1:
		p.X = screen.Width - win.Width - margin
	default:
		p.X = floorDiv(screen.Width-win.Width, 2)
	}
	if zone.top() {
		p.Y = margin
	} else {
		p.Y = screen.Height - win.Height - margin
	}
	return p
}

// ClassifyZone returns the zone a window whose top-left corner is at pos
// belongs to. The screen is split into horizontal thirds and vertical halves;
// the comparisons are made on real values so odd sizes do not shift the
// boundaries. Points on a boundary fall into the center or bottom zone.
func ClassifyZone(pos Point, screen Size) Zone {
	x := float64(pos.X)
	y := float64(pos.Y)
	w := float64(screen.Width)
	h := float64(screen.Height)

	horiz := 0
	if x < w/3 {
		horiz = -1
	} else if x > 2*w/3 {
		horiz = 1
	}
	return zoneFor(horiz, y < h/2)
}

// AnchorInRect is AnchorPosition for a display that does not start at the
// virtual-screen origin.
func AnchorInRect(zone Zone, display Rect, win Size, margin int) Point {
	return AnchorPosition(zone, display.Size(), win, margin).Add(display.Origin())
}

// ClassifyInRect is ClassifyZone for a display that does not start at the
// virtual-screen origin.
func ClassifyInRect(pos Point, display Rect) Zone {
	return ClassifyZone(pos.Sub(display.Origin()), display.Size())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
