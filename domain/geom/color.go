package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 32-bit ARGB value. Equality is exact channel match,
// which is what the detector relies on: the game renders flat colors.
type Color uint32

// NewColor packs the given channels into a Color.
func NewColor(r, g, b, a byte) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Reference colors of the target game: near-white background and the dark
// ball sprite. Alpha is zero because the capture path reports an unused
// alpha plane.
const (
	FieldColor = Color(0x00fbf9f6)
	BallColor  = Color(0x002c3d51)
)

func (c Color) R() byte { return byte(c >> 16) }
func (c Color) G() byte { return byte(c >> 8) }
func (c Color) B() byte { return byte(c) }
func (c Color) A() byte { return byte(c >> 24) }

// String renders the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}

// ParseColor parses a "#rrggbb" hex string into a Color with zero alpha.
func ParseColor(s string) (Color, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(t) != 6 {
		return 0, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color(v), nil
}
