package style

import "fmt"

// AlphaFromPercent converts an opacity percentage to an 8-bit alpha value,
// rounding half up. Input outside [0,100] is clamped.
func AlphaFromPercent(pct int) int {
	if pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 255
	}
	return (pct*255 + 50) / 100
}

// RGBA is a colour with an 8-bit alpha channel, written as rgba(r, g, b, a).
type RGBA struct {
	R, G, B, A uint8
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Hex returns the colour without alpha as #rrggbb.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
