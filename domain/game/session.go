package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lyind/loopgrab/config"
	"github.com/lyind/loopgrab/domain/geom"
)

// Session drives one play session: field acquisition, ball tracking and
// fire decisions. It is single-threaded by design; Step must be called from
// one goroutine and never overlaps collaborator calls.
type Session struct {
	logger   *slog.Logger
	controls Controls
	det      *Detector

	width  int
	height int

	state State
	ball  geom.Rect
	field geom.Rect

	frameCount   int
	lastFire     int
	lastBall     time.Time
	lastBallMove time.Time
	deadzone     int
	suppressed   int
	hasFired     bool

	stallTimeout time.Duration
	missTimeout  time.Duration
	snapshotPath string

	fires     int
	stepNanos int64
}

// NewSession constructs a session for a display of the given dimensions.
// Colors, deadzone and timeouts come from cfg; nil cfg selects defaults.
func NewSession(logger *slog.Logger, cfg *config.Config, controls Controls, width, height int) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("session: invalid display size %dx%d", width, height)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fieldColor, err := geom.ParseColor(cfg.FieldColor)
	if err != nil {
		return nil, fmt.Errorf("session: field color: %w", err)
	}
	ballColor, err := geom.ParseColor(cfg.BallColor)
	if err != nil {
		return nil, fmt.Errorf("session: ball color: %w", err)
	}
	deadzone := cfg.DeadzoneFrames
	if deadzone < 0 {
		deadzone = 1
	}
	now := time.Now()
	return &Session{
		logger:       logger,
		controls:     controls,
		det:          NewDetector(width, height, fieldColor, ballColor),
		width:        width,
		height:       height,
		state:        StateAcquiring,
		// Backdate the last fire so the very first qualifying event fires.
		lastFire:     -deadzone,
		lastBall:     now,
		lastBallMove: now,
		deadzone:     deadzone,
		stallTimeout: time.Duration(cfg.StallTimeoutMS) * time.Millisecond,
		missTimeout:  time.Duration(cfg.MissTimeoutMS) * time.Millisecond,
		snapshotPath: cfg.SnapshotPath,
	}, nil
}

// State returns the current session phase.
func (s *Session) State() State { return s.state }

// Stats returns a snapshot of session counters for instrumentation.
func (s *Session) Stats() Stats {
	var avg time.Duration
	if s.frameCount > 0 {
		avg = time.Duration(s.stepNanos / int64(s.frameCount))
	}
	return Stats{
		Frames:        s.frameCount,
		Fires:         s.fires,
		Suppressed:    s.suppressed,
		LastFireFrame: s.lastFire,
		State:         s.state,
		Ball:          s.ball,
		Field:         s.field,
		AvgStep:       avg,
	}
}

// findBall runs the two-phase ball search: a cheap re-check of four probe
// points on the previous ball rectangle, then a strided grid scan of zone.
// On success the ball rectangle and sighting timestamps are updated; on
// failure all state is left untouched.
func (s *Session) findBall(f Frame, zone geom.Rect, now time.Time) bool {
	b := s.ball
	probes := [4][2]int{
		{b.CenterX(), b.Y0},
		{b.X0, b.CenterY()},
		{b.CenterX(), b.Y1},
		{b.X1, b.CenterY()},
	}
	for _, p := range probes {
		r, ok := s.det.CheckForBall(f, p[0], p[1])
		if !ok {
			continue
		}
		if s.ball != r {
			s.lastBallMove = now
		}
		s.ball = r
		s.lastBall = now
		return true
	}

	// The ball jumped; rescan the zone with a stride of half the last known
	// ball size so no blob that large can slip between probes.
	strideY := max(1, s.ball.Height()/2)
	strideX := max(1, s.ball.Width()/2)
	for y := zone.Y0; y < zone.Y1; y += strideY {
		for x := zone.X0; x < zone.X1; x += strideX {
			if s.ball.Contains(x, y) {
				continue
			}
			r, ok := s.det.CheckForBall(f, x, y)
			if !ok {
				continue
			}
			s.ball = r
			s.lastBall = now
			s.lastBallMove = now
			if s.logger != nil {
				s.logger.Debug("ball acquired", "ball", r.String())
			}
			return true
		}
	}

	return false
}

// haveField reports whether the accreted field passes the confirmation
// heuristic: both dimensions above ten ball-units and a near-square aspect.
func (s *Session) haveField() bool {
	unit := max(4, s.ball.Width())
	return s.field.Width() > unit*10 &&
		s.field.Height() > unit*10 &&
		s.field.Width() < s.field.Height()+unit/4 &&
		s.field.Width() > s.field.Height()-unit/4
}

// expandField searches the whole frame for the ball and accretes its
// position into the field rectangle. A miss before any accretion is fatal
// and requests a diagnostic snapshot; a later miss is tolerated.
func (s *Session) expandField(f Frame, now time.Time) bool {
	if !s.findBall(f, geom.NewRect(0, 0, s.width, s.height), now) {
		if s.field.X1 == 0 {
			if s.logger != nil {
				s.logger.Error("no ball found", "snapshot", s.snapshotPath)
			}
			f.SaveSnapshot(s.snapshotPath)
			return false
		}
		return true
	}

	if s.field.X1 == 0 {
		s.field = s.ball
	} else {
		s.field = s.field.Union(s.ball)
	}
	return true
}

// addFieldSafetyMargin grows the confirmed field outward by one ball width
// so tracking keeps working when the ball brushes the inferred boundary.
func (s *Session) addFieldSafetyMargin() {
	for i := 0; i < s.ball.Width(); i++ {
		s.field, _ = s.field.Expand(s.width, s.height)
	}
}

// fire issues the fire command unless the frame-domain deadzone suppresses
// it. Suppressed attempts are counted; a success resets the counter.
func (s *Session) fire() bool {
	if s.frameCount-s.lastFire >= s.deadzone {
		s.controls.Fire()
		if s.logger != nil {
			s.logger.Info("fire", "frame", s.frameCount, "suppressed", s.suppressed)
		}
		s.suppressed = 0
		s.lastFire = s.frameCount
		s.fires++
		return true
	}
	s.suppressed++
	return false
}

// Step advances the session by one tick against a freshly captured frame.
// It returns false when the session is over: fatal bootstrap failure, the
// ball stalling for the stall timeout, or no sighting for the miss timeout.
func (s *Session) Step(f Frame, now time.Time) bool {
	start := time.Now()
	f.Next()

	keep := true
	if s.state == StateAcquiring {
		lastField := s.field
		keep = s.expandField(f, now)
		if keep {
			if lastField == s.field && s.field == s.ball {
				// Ball detected but static and field degenerate: the game
				// has not started yet. Focus it and serve once.
				s.controls.Focus(s.ball.CenterX(), s.ball.CenterY())
				s.fire()
				s.field, _ = s.field.Expand(s.width, s.height)
				if s.logger != nil {
					s.logger.Info("game started", "frame", s.frameCount)
				}
			} else if s.haveField() {
				s.addFieldSafetyMargin()
				// Park the pointer at the far corner so it cannot occlude
				// the play area.
				s.controls.Move(s.field.X1, s.field.Y1)
				if rf, ok := f.(RegionFrame); ok {
					// Later grabs only need the confirmed field.
					rf.RestrictTo(s.field)
				}
				s.state = StatePlaying
				if s.logger != nil {
					s.logger.Info("game field locked", "frame", s.frameCount, "field", s.field.String())
				}
			}
		}
	} else {
		if s.findBall(f, s.field, now) {
			box, _ := s.ball.Expand(s.width, s.height)
			if s.det.Surrounded(f, box) {
				if !s.hasFired {
					s.hasFired = s.fire()
				}
			} else {
				s.hasFired = false
			}
			keep = now.Sub(s.lastBallMove) < s.stallTimeout
			if !keep && s.logger != nil {
				s.logger.Info("game stopped", "frame", s.frameCount)
			}
		} else {
			keep = now.Sub(s.lastBall) < s.missTimeout
		}
	}

	s.frameCount++
	s.stepNanos += time.Since(start).Nanoseconds()
	return keep
}
