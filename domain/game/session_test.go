package game

import (
	"testing"
	"time"

	"github.com/lyind/loopgrab/config"
	"github.com/lyind/loopgrab/domain/geom"
)

func newTestSession(t *testing.T, cfg *config.Config, controls Controls, w, h int) *Session {
	t.Helper()
	s, err := NewSession(nil, cfg, controls, w, h)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRejectsBadDimensions(t *testing.T) {
	if _, err := NewSession(nil, nil, &recordingControls{}, 0, 100); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := NewSession(nil, nil, &recordingControls{}, 100, -1); err == nil {
		t.Error("negative height accepted")
	}
}

func TestFireGateDeadzone(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DeadzoneFrames = 3
	rec := &recordingControls{}
	s := newTestSession(t, cfg, rec, 100, 100)

	want := []bool{true, false, false, true, false, false}
	for frame, expected := range want {
		got := s.fire()
		if got != expected {
			t.Errorf("frame %d: fire() = %v, expected %v", frame, got, expected)
		}
		switch frame {
		case 2:
			if s.suppressed != 2 {
				t.Errorf("after frame 2: suppressed = %d, expected 2", s.suppressed)
			}
		case 3:
			if s.suppressed != 0 {
				t.Errorf("after frame 3: suppressed = %d, expected 0", s.suppressed)
			}
		}
		s.frameCount++
	}
	if rec.fires != 2 {
		t.Errorf("fires issued = %d, expected 2", rec.fires)
	}
}

func TestHaveFieldBoundaries(t *testing.T) {
	s := newTestSession(t, nil, &recordingControls{}, 1000, 1000)
	s.ball = geom.NewRect(0, 0, 4, 4) // unit = 4

	tests := []struct {
		name     string
		w, h     int
		expected bool
	}{
		{"exactly 10 units", 40, 40, false},
		{"one past 10 units", 41, 41, true},
		{"width lags", 40, 41, false},
		{"aspect off by a unit quarter", 41, 42, false},
		{"large and square", 200, 200, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.field = geom.NewRect(0, 0, tc.w, tc.h)
			if got := s.haveField(); got != tc.expected {
				t.Errorf("haveField() with %dx%d = %v, expected %v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestStepKickoffHappensExactlyOnce(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor)
	c.drawBall(90, 90, 8, geom.BallColor)
	rec := &recordingControls{}
	s := newTestSession(t, nil, rec, 200, 200)

	t0 := time.Now()
	for i := 0; i < 4; i++ {
		if !s.Step(c, t0.Add(time.Duration(i)*100*time.Millisecond)) {
			t.Fatalf("step %d ended the session", i)
		}
	}

	if rec.fires != 1 {
		t.Errorf("kickoff fires = %d, expected exactly 1", rec.fires)
	}
	if len(rec.focuses) != 1 {
		t.Errorf("kickoff focuses = %d, expected exactly 1", len(rec.focuses))
	}
	if s.State() != StateAcquiring {
		t.Errorf("state = %v, expected still acquiring", s.State())
	}
}

func TestStepConfirmsFieldAndStartsPlaying(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor)
	c.drawBall(10, 10, 8, geom.BallColor)
	// Tick 3: the ball jumps across the board, stretching the field union
	// past the confirmation threshold.
	c.script = []func(){
		nil,
		nil,
		func() {
			c.fillRect(geom.NewRect(10, 10, 18, 18), geom.FieldColor)
			c.drawBall(90, 90, 8, geom.BallColor)
		},
	}
	rec := &recordingControls{}
	s := newTestSession(t, nil, rec, 200, 200)

	t0 := time.Now()
	for i := 0; i < 3; i++ {
		if !s.Step(c, t0.Add(time.Duration(i)*100*time.Millisecond)) {
			t.Fatalf("step %d ended the session", i)
		}
	}

	if s.State() != StatePlaying {
		t.Fatalf("state = %v, expected playing", s.State())
	}
	wantField := geom.NewRect(2, 2, 104, 104)
	if s.field != wantField {
		t.Errorf("field = %v, expected %v (union plus safety margin)", s.field, wantField)
	}
	if len(rec.moves) != 1 || rec.moves[0] != [2]int{104, 104} {
		t.Errorf("pointer park moves = %v, expected one move to (104, 104)", rec.moves)
	}
	if len(c.restricted) != 1 || c.restricted[0] != wantField {
		t.Errorf("capture restriction = %v, expected one restriction to %v", c.restricted, wantField)
	}
}

func TestStepFiresOncePerSurroundedEpisode(t *testing.T) {
	obstacle := geom.NewColor(0x10, 0x10, 0x10, 0)
	c := newCanvas(200, 200, obstacle)
	c.drawBall(40, 40, 8, geom.BallColor)
	// Tick 3 opens the field around the ball, tick 4 boxes it in again.
	c.script = []func(){
		nil,
		nil,
		func() {
			c.fill(geom.FieldColor)
			c.drawBall(40, 40, 8, geom.BallColor)
		},
		func() {
			c.fill(obstacle)
			c.drawBall(40, 40, 8, geom.BallColor)
		},
	}
	rec := &recordingControls{}
	s := newTestSession(t, nil, rec, 200, 200)
	s.state = StatePlaying
	s.field = geom.NewRect(0, 0, 200, 200)

	t0 := time.Now()
	for i := 0; i < 4; i++ {
		if !s.Step(c, t0.Add(time.Duration(i)*100*time.Millisecond)) {
			t.Fatalf("step %d ended the session", i)
		}
	}

	// Surrounded on ticks 1, 2 and 4; the latch holds fire on tick 2.
	if rec.fires != 2 {
		t.Errorf("fires = %d, expected 2 (one per surrounded episode)", rec.fires)
	}
}

func TestStepStopsAfterStallTimeout(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor)
	c.drawBall(90, 90, 8, geom.BallColor)
	s := newTestSession(t, nil, &recordingControls{}, 200, 200)
	s.state = StatePlaying
	s.field = geom.NewRect(0, 0, 200, 200)

	t0 := time.Now()
	if !s.Step(c, t0) {
		t.Fatal("first sighting ended the session")
	}
	if !s.Step(c, t0.Add(time.Second)) {
		t.Fatal("stopped before the stall threshold")
	}
	if !s.Step(c, t0.Add(1999*time.Millisecond)) {
		t.Fatal("stopped just under the stall threshold")
	}
	if s.Step(c, t0.Add(2*time.Second)) {
		t.Fatal("kept playing at the stall threshold")
	}
}

func TestStepStopsAfterMissTimeout(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor) // no ball anywhere
	s := newTestSession(t, nil, &recordingControls{}, 200, 200)
	s.state = StatePlaying
	s.field = geom.NewRect(0, 0, 200, 200)

	t0 := time.Now()
	s.lastBall = t0
	s.lastBallMove = t0
	if !s.Step(c, t0.Add(1999*time.Millisecond)) {
		t.Fatal("stopped just under the miss threshold")
	}
	if s.Step(c, t0.Add(2*time.Second)) {
		t.Fatal("kept playing at the miss threshold")
	}
}

func TestStepBootstrapFailureSavesSnapshot(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor) // no ball anywhere
	s := newTestSession(t, nil, &recordingControls{}, 200, 200)

	if s.Step(c, time.Now()) {
		t.Fatal("session survived a bootstrap with no ball ever seen")
	}
	if len(c.snapshots) != 1 || c.snapshots[0] != "no-ball-proof.png" {
		t.Errorf("snapshots = %v, expected one no-ball-proof.png", c.snapshots)
	}
}

func TestStepToleratesTransientMissDuringAcquisition(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor)
	c.drawBall(90, 90, 8, geom.BallColor)
	// Tick 2: the ball vanishes for one frame.
	c.script = []func(){
		nil,
		func() { c.fillRect(geom.NewRect(90, 90, 98, 98), geom.FieldColor) },
	}
	s := newTestSession(t, nil, &recordingControls{}, 200, 200)

	t0 := time.Now()
	if !s.Step(c, t0) {
		t.Fatal("first acquisition step failed")
	}
	if !s.Step(c, t0.Add(100*time.Millisecond)) {
		t.Fatal("transient miss ended the session despite accumulated field data")
	}
	if len(c.snapshots) != 0 {
		t.Errorf("snapshot requested on a tolerated miss: %v", c.snapshots)
	}
}

func TestSessionStatsCounters(t *testing.T) {
	c := newCanvas(200, 200, geom.FieldColor)
	c.drawBall(90, 90, 8, geom.BallColor)
	s := newTestSession(t, nil, &recordingControls{}, 200, 200)

	t0 := time.Now()
	for i := 0; i < 3; i++ {
		s.Step(c, t0.Add(time.Duration(i)*100*time.Millisecond))
	}

	stats := s.Stats()
	if stats.Frames != 3 {
		t.Errorf("frames = %d, expected 3", stats.Frames)
	}
	if stats.Fires != 1 { // kickoff
		t.Errorf("fires = %d, expected 1", stats.Fires)
	}
	if stats.Ball != geom.NewRect(90, 90, 97, 97) {
		t.Errorf("ball = %v", stats.Ball)
	}
	if stats.State != StateAcquiring {
		t.Errorf("state = %v", stats.State)
	}
}
