package game

import (
	"time"

	"github.com/lyind/loopgrab/domain/geom"
)

// Frame is the capability contract for a raster source. Next blocks until a
// freshly captured snapshot fully replaces the prior pixel data; PixelAt is
// only defined for coordinates inside the frame (the engine guarantees
// clamped rectangles); SaveSnapshot is a best-effort diagnostic dump whose
// failures are logged by the implementation, never propagated.
type Frame interface {
	Next()
	PixelAt(x, y int) geom.Color
	SaveSnapshot(path string)
}

// RegionFrame is an optional Frame capability: sources that can narrow
// their capture region implement it, and the engine narrows them to the
// confirmed field once tracking no longer needs the rest of the screen.
type RegionFrame interface {
	Frame
	RestrictTo(r geom.Rect)
}

// Controls is the capability contract for input injection, addressed by
// absolute screen coordinates.
type Controls interface {
	Fire()
	Move(x, y int)
	Click(x, y int)
	Focus(x, y int)
}

// State enumerates the phases of one play session.
type State int

const (
	// StateAcquiring is the bootstrap phase: the whole screen is searched
	// for the ball every tick and the field boundary accretes from observed
	// ball positions.
	StateAcquiring State = iota
	// StatePlaying tracks the ball inside the confirmed field and drives
	// fire decisions.
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateAcquiring:
		return "acquiring"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Stats summarises session behaviour for instrumentation.
type Stats struct {
	Frames        int
	Fires         int
	Suppressed    int
	LastFireFrame int
	State         State
	Ball          geom.Rect
	Field         geom.Rect
	AvgStep       time.Duration
}
