package listener

import (
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// Listener installs a global F10 hook that requests a cooperative stop of
// the polling loop. The engine itself has no cancellation signal; this is
// the operator's way of taking the keyboard back.
type Listener struct {
	logger *slog.Logger
	onStop func()
	once   sync.Once
}

// New returns a listener that invokes onStop the first time F10 is pressed.
func New(logger *slog.Logger, onStop func()) *Listener {
	return &Listener{logger: logger, onStop: onStop}
}

// Start registers the hook and blocks processing events until Stop.
// Run it on its own goroutine.
func (l *Listener) Start() {
	hook.Register(hook.KeyDown, []string{"f10"}, func(e hook.Event) {
		l.once.Do(func() {
			if l.logger != nil {
				l.logger.Info("stop requested", "hotkey", "f10")
			}
			l.onStop()
		})
	})
	if l.logger != nil {
		l.logger.Info("hotkeys armed", "stop", "f10")
	}
	evs := hook.Start()
	<-hook.Process(evs)
}

// Stop unregisters the hook and ends event processing.
func (l *Listener) Stop() {
	hook.End()
}
