package game

import "github.com/lyind/loopgrab/domain/geom"

// Detector implements the pixel-level search primitives of the engine. It
// holds no per-tick state; everything it reports is derived from the frame
// passed into each call.
type Detector struct {
	width  int
	height int
	field  geom.Color
	ball   geom.Color
}

// NewDetector returns a detector for frames of the given dimensions using
// the supplied reference colors.
func NewDetector(width, height int, field, ball geom.Color) *Detector {
	return &Detector{width: width, height: height, field: field, ball: ball}
}

func (d *Detector) topContains(f Frame, r geom.Rect, c geom.Color) bool {
	for x := r.X0; x < r.X1; x++ {
		if f.PixelAt(x, r.Y0) == c {
			return true
		}
	}
	return false
}

func (d *Detector) bottomContains(f Frame, r geom.Rect, c geom.Color) bool {
	for x := r.X0; x < r.X1; x++ {
		if f.PixelAt(x, r.Y1) == c {
			return true
		}
	}
	return false
}

func (d *Detector) leftContains(f Frame, r geom.Rect, c geom.Color) bool {
	for y := r.Y0; y < r.Y1; y++ {
		if f.PixelAt(r.X0, y) == c {
			return true
		}
	}
	return false
}

func (d *Detector) rightContains(f Frame, r geom.Rect, c geom.Color) bool {
	for y := r.Y0; y < r.Y1; y++ {
		if f.PixelAt(r.X1, y) == c {
			return true
		}
	}
	return false
}

// FindColorBounds grows seed outward one pixel per side per pass, keeping a
// side's growth only when the newly exposed border strip contains at least
// one pixel of the target color. Sides are evaluated independently, so the
// rectangle may grow asymmetrically. Iteration stops when a full pass grows
// no side. The boolean reports whether the result differs from seed.
//
// This is a coarse flood-fill approximation: it samples only the perimeter
// of each candidate, never the interior, and will cross single-pixel gaps
// on a side as long as some pixel of the strip matches.
func (d *Detector) FindColorBounds(f Frame, seed geom.Rect, c geom.Color) (geom.Rect, bool) {
	r1 := seed
	var r0 geom.Rect
	for {
		r0 = r1

		r1.X0 = max(0, r1.X0-1)
		if !d.leftContains(f, r1, c) {
			r1.X0 = r0.X0
		}

		r1.Y0 = max(0, r1.Y0-1)
		if !d.topContains(f, r1, c) {
			r1.Y0 = r0.Y0
		}

		r1.X1 = min(d.width-1, r1.X1+1)
		if !d.rightContains(f, r1, c) {
			r1.X1 = r0.X1
		}

		r1.Y1 = min(d.height-1, r1.Y1+1)
		if !d.bottomContains(f, r1, c) {
			r1.Y1 = r0.Y1
		}

		if r0 == r1 {
			break
		}
	}

	return r0, r0 != seed
}

// CheckForBall probes (x, y) as a candidate ball seed. The pixel must carry
// the ball color; the color bounds grown from it must be strictly square
// with side length above 4; the four corners must not be ball-colored while
// the four edge midpoints (inset one pixel) must be. The corner/midpoint
// test separates the round sprite from any filled rectangular artifact of
// the same color.
func (d *Detector) CheckForBall(f Frame, x, y int) (geom.Rect, bool) {
	if f.PixelAt(x, y) != d.ball {
		return geom.Rect{}, false
	}

	b, _ := d.FindColorBounds(f, geom.NewRect(x, y, x+1, y+1), d.ball)
	w := b.Width()
	h := b.Height()
	if w <= 4 || h <= 4 || w != h {
		return geom.Rect{}, false
	}
	if f.PixelAt(b.X0, b.Y0) != d.ball &&
		f.PixelAt(b.X1, b.Y0) != d.ball &&
		f.PixelAt(b.X0, b.Y1) != d.ball &&
		f.PixelAt(b.X1, b.Y1) != d.ball &&
		f.PixelAt(b.X0+w/2, b.Y0+1) == d.ball &&
		f.PixelAt(b.X0+w/2, b.Y1-1) == d.ball &&
		f.PixelAt(b.X0+1, b.Y0+h/2) == d.ball &&
		f.PixelAt(b.X1-1, b.Y0+h/2) == d.ball {
		return b, true
	}

	return geom.Rect{}, false
}

// Surrounded reports whether the ball no longer touches field color. The
// probe rectangle is the ball box expanded outward by three pixels; only
// its four edge midpoints are sampled. A single gap between probe points
// can be missed, which is accepted in exchange for constant cost per tick.
func (d *Detector) Surrounded(f Frame, ball geom.Rect) bool {
	p := ball
	p, _ = p.Expand(d.width, d.height)
	p, _ = p.Expand(d.width, d.height)
	p, _ = p.Expand(d.width, d.height)

	// Near the frame edge the expansions saturate at width/height; pull the
	// far-side probes back to the last addressable row and column.
	right := min(d.width-1, p.X1)
	bottom := min(d.height-1, p.Y1)

	return f.PixelAt(p.CenterX(), p.Y0) != d.field &&
		f.PixelAt(p.CenterX(), bottom) != d.field &&
		f.PixelAt(p.X0, p.CenterY()) != d.field &&
		f.PixelAt(right, p.CenterY()) != d.field
}
