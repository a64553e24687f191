package layout

// Zone is one of the six screen anchors the bar can snap to.
type Zone string

const (
	BottomCenter Zone = "bottom-center"
	TopCenter    Zone = "top-center"
	BottomLeft   Zone = "bottom-left"
	BottomRight  Zone = "bottom-right"
	TopLeft      Zone = "top-left"
	TopRight     Zone = "top-right"
)

// DefaultZone is used for any unrecognized position.
const DefaultZone = BottomCenter

// Zones returns all zones in the order the settings dialog lists them.
func Zones() []Zone {
	return []Zone{BottomCenter, TopCenter, BottomLeft, BottomRight, TopLeft, TopRight}
}

// ParseZone reports whether s names a zone.
func ParseZone(s string) (Zone, bool) {
	z := Zone(s)
	switch z {
	case BottomCenter, TopCenter, BottomLeft, BottomRight, TopLeft, TopRight:
		return z, true
	default:
		return "", false
	}
}

// Resolve maps a stored position to a zone, falling back to bottom-center.
func Resolve(s string) Zone {
	if z, ok := ParseZone(s); ok {
		return z
	}
	return DefaultZone
}

func (z Zone) String() string { return string(z) }

func (z Zone) top() bool { return z == TopCenter || z == TopLeft || z == TopRight }

// horizontal returns -1 for left, 0 for center and 1 for right.
func (z Zone) horizontal() int {
	switch z {
	case BottomLeft, TopLeft:
		return -1
	case BottomRight, TopRight:
		return 1
	default:
		return 0
	}
}

func zoneFor(h int, top bool) Zone {
	switch {
	case top && h < 0:
		return TopLeft
	case top && h > 0:
		return TopRight
	case top:
		return TopCenter
	case h < 0:
		return BottomLeft
	case h > 0:
		return BottomRight
	default:
		return BottomCenter
	}
}
