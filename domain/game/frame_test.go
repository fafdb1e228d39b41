package game

// Synthetic in-memory frames and a recording control sink used across the
// engine tests.

import (
	"github.com/lyind/loopgrab/domain/geom"
)

// canvas is a scriptable in-memory frame: Next applies at most one queued
// mutation, so a test can change the scene between ticks.
type canvas struct {
	w, h       int
	px         []geom.Color
	script     []func()
	snapshots  []string
	restricted []geom.Rect
}

func newCanvas(w, h int, bg geom.Color) *canvas {
	c := &canvas{w: w, h: h, px: make([]geom.Color, w*h)}
	c.fill(bg)
	return c
}

func (c *canvas) fill(col geom.Color) {
	for i := range c.px {
		c.px[i] = col
	}
}

func (c *canvas) set(x, y int, col geom.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = col
}

func (c *canvas) fillRect(r geom.Rect, col geom.Color) {
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			c.set(x, y, col)
		}
	}
}

// drawBall paints a size x size square of col with the four corner pixels
// left untouched: the cheapest blob the shape validator accepts as round.
func (c *canvas) drawBall(x0, y0, size int, col geom.Color) {
	c.fillRect(geom.NewRect(x0, y0, x0+size, y0+size), col)
	bg := c.px[0]
	c.set(x0, y0, bg)
	c.set(x0+size-1, y0, bg)
	c.set(x0, y0+size-1, bg)
	c.set(x0+size-1, y0+size-1, bg)
}

func (c *canvas) Next() {
	if len(c.script) == 0 {
		return
	}
	f := c.script[0]
	c.script = c.script[1:]
	if f != nil {
		f()
	}
}

func (c *canvas) PixelAt(x, y int) geom.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.px[y*c.w+x]
}

func (c *canvas) SaveSnapshot(path string) {
	c.snapshots = append(c.snapshots, path)
}

func (c *canvas) RestrictTo(r geom.Rect) {
	c.restricted = append(c.restricted, r)
}

var _ RegionFrame = (*canvas)(nil)

// recordingControls counts every command issued by the engine.
type recordingControls struct {
	fires   int
	moves   [][2]int
	clicks  [][2]int
	focuses [][2]int
}

func (r *recordingControls) Fire()          { r.fires++ }
func (r *recordingControls) Move(x, y int)  { r.moves = append(r.moves, [2]int{x, y}) }
func (r *recordingControls) Click(x, y int) { r.clicks = append(r.clicks, [2]int{x, y}) }
func (r *recordingControls) Focus(x, y int) { r.focuses = append(r.focuses, [2]int{x, y}) }

var _ Controls = (*recordingControls)(nil)
