package geom

import "fmt"

// Rect is an axis-aligned rectangle with half-open bounds: (X1, Y1) are
// exclusive. The zero Rect doubles as a "not yet known" sentinel for
// accumulated regions.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// NewRect creates a rectangle from its corner coordinates.
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// CenterX returns the horizontal center, rounded down.
func (r Rect) CenterX() int { return r.X0 + r.Width()/2 }

// CenterY returns the vertical center, rounded down.
func (r Rect) CenterY() int { return r.Y0 + r.Height()/2 }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: min(other.X0, r.X0),
		Y0: min(other.Y0, r.Y0),
		X1: max(other.X1, r.X1),
		Y1: max(other.Y1, r.Y1),
	}
}

// Clamp restricts the rectangle to [0,w]x[0,h]. The result always
// satisfies X0 <= X1 and Y0 <= Y1: possibly degenerate, never invalid.
func (r Rect) Clamp(w, h int) Rect {
	x0 := min(w, max(0, r.X0))
	x1 := min(w, max(0, r.X1))
	y0 := min(h, max(0, r.Y0))
	y1 := min(h, max(0, r.Y1))
	return Rect{X0: min(x0, x1), Y0: min(y0, y1), X1: max(x0, x1), Y1: max(y0, y1)}
}

// Shrink contracts all sides by one pixel and clamps to [0,w]x[0,h].
// The boolean reports whether the result still has positive extent in both
// dimensions; callers use it to stop iterative contraction.
func (r Rect) Shrink(w, h int) (Rect, bool) {
	s := Rect{X0: r.X0 + 1, Y0: r.Y0 + 1, X1: r.X1 - 1, Y1: r.Y1 - 1}.Clamp(w, h)
	return s, s.Width() > 0 && s.Height() > 0
}

// Expand grows all sides by one pixel and clamps to [0,w]x[0,h].
// The boolean reports whether the result has not yet saturated to the full
// frame; callers use it to stop iterative expansion.
func (r Rect) Expand(w, h int) (Rect, bool) {
	e := Rect{X0: r.X0 - 1, Y0: r.Y0 - 1, X1: r.X1 + 1, Y1: r.Y1 + 1}.Clamp(w, h)
	return e, e.X0 != 0 || e.Y0 != 0 || e.X1 != w || e.Y1 != h
}

// String renders the rectangle as {{x0, y0}, {x1, y1}}.
func (r Rect) String() string {
	return fmt.Sprintf("{{%d, %d}, {%d, %d}}", r.X0, r.Y0, r.X1, r.Y1)
}
