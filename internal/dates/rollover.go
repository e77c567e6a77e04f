package dates

import (
	"sync"
	"time"
)

// Rollover watches the local clock and invokes a callback when the
// calendar day changes, so long-lived views can re-key themselves.
// The check runs at each minute boundary; a midnight crossing is
// therefore observed within a minute, which matches how quickly the
// rest of the app re-derives "today".
type Rollover struct {
	onChange func(DayKey)
	now      func() time.Time

	mu      sync.Mutex
	current DayKey
	timer   *time.Timer
	stopped bool
}

// NewRollover creates a watcher that calls onChange with the new DayKey
// after each local-midnight boundary. Call Start to begin watching.
func NewRollover(onChange func(DayKey)) *Rollover {
	return &Rollover{
		onChange: onChange,
		now:      time.Now,
	}
}

// Current returns the DayKey as of the last check.
func (r *Rollover) Current() DayKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == "" {
		r.current = KeyFor(r.now())
	}
	return r.current
}

// Start begins watching. It is a no-op if already started.
func (r *Rollover) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil || r.stopped {
		return
	}
	r.current = KeyFor(r.now())
	r.schedule()
}

// Stop cancels the watcher. Safe to call multiple times.
func (r *Rollover) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// schedule arms the timer for the next minute boundary. Caller holds mu.
func (r *Rollover) schedule() {
	wait := untilNextMinute(r.now())
	r.timer = time.AfterFunc(wait, r.tick)
}

func (r *Rollover) tick() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	next := KeyFor(r.now())
	changed := next != r.current
	r.current = next
	r.schedule()
	r.mu.Unlock()

	if changed && r.onChange != nil {
		r.onChange(next)
	}
}

func untilNextMinute(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}
