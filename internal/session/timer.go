package session

import (
	"sync"
	"time"
)

// TimerController drives the per-session countdown. One controller exists per
// session and at most one tick loop runs at a time; Cancel stops the loop so
// a stale timer can never fire after the session has moved on.
type TimerController struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func newTimerController(interval time.Duration) *TimerController {
	if interval <= 0 {
		interval = time.Second
	}
	return &TimerController{interval: interval}
}

// Start begins the tick loop. tick is invoked once per interval and returns
// false to end the loop. Starting an already running controller is a no-op.
func (t *TimerController) Start(tick func() bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}

	t.stop = make(chan struct{})
	t.running = true
	go t.run(t.stop, tick)
}

func (t *TimerController) run(stop chan struct{}, tick func() bool) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !tick() {
				t.Cancel()
				return
			}
		}
	}
}

// Cancel stops the tick loop. Safe to call multiple times and from within a
// tick callback.
func (t *TimerController) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	close(t.stop)
	t.running = false
}

// Running reports whether the tick loop is active.
func (t *TimerController) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
