package app

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lyind/loopgrab/config"
	"github.com/lyind/loopgrab/domain/game"
)

const statsLogInterval = 5 * time.Second

// Runner drives the cooperative polling loop: capture a frame, run one
// session step, optionally issue control commands, sleep, repeat. It stops
// when the session reports the game is over or Stop is called.
type Runner struct {
	logger  *slog.Logger
	cfg     *config.Config
	session *game.Session
	frame   game.Frame
	stopped atomic.Bool
}

// NewRunner wires a runner around an existing session and frame source.
func NewRunner(logger *slog.Logger, cfg *config.Config, session *game.Session, frame game.Frame) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runner{logger: logger, cfg: cfg, session: session, frame: frame}
}

// Stop requests a cooperative stop; the loop exits before its next step.
// Safe to call from any goroutine.
func (r *Runner) Stop() { r.stopped.Store(true) }

// Run executes the polling loop until the session ends or Stop is called,
// then logs the final session counters.
func (r *Runner) Run() {
	interval := time.Duration(r.cfg.TickIntervalMS) * time.Millisecond
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()

	for !r.stopped.Load() {
		if !r.session.Step(r.frame, time.Now()) {
			break
		}

		select {
		case <-logTicker.C:
			r.logStats()
		default:
		}

		time.Sleep(interval)
	}

	stats := r.session.Stats()
	if r.logger != nil {
		r.logger.Info("session ended",
			"frames", stats.Frames,
			"fires", stats.Fires,
			"state", stats.State.String(),
			"avg_step", stats.AvgStep,
		)
	}
}

func (r *Runner) logStats() {
	if r.logger == nil {
		return
	}
	stats := r.session.Stats()
	r.logger.Info("session.stats",
		"frames", stats.Frames,
		"fires", stats.Fires,
		"suppressed", stats.Suppressed,
		"state", stats.State.String(),
		"ball", stats.Ball.String(),
		"field", stats.Field.String(),
		"avg_step", stats.AvgStep,
	)
}
