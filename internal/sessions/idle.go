package sessions

import (
	"sync"
	"time"
)

// IdleTimer signs a single session out after a fixed period without activity.
// It is owned by the session service; callers interact with it only through
// Touch and Stop, and teardown on logout is deterministic.
type IdleTimer struct {
	mu       sync.Mutex
	ttl      time.Duration
	timer    *time.Timer
	stopped  bool
	onExpire func()
}

func newIdleTimer(ttl time.Duration, onExpire func()) *IdleTimer {
	t := &IdleTimer{ttl: ttl, onExpire: onExpire}
	t.timer = time.AfterFunc(ttl, t.expire)
	return t
}

// Touch resets the countdown. It reports false once the timer has already
// fired or been stopped, in which case the session is gone.
func (t *IdleTimer) Touch() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.timer.Reset(t.ttl)
	return true
}

// Stop cancels the timer without firing the expiry callback.
func (t *IdleTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.timer.Stop()
}

func (t *IdleTimer) expire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Tracker owns one idle timer per user. Activity signals arrive through
// Touch; Signout tears the timer down without firing it.
type Tracker struct {
	mu       sync.Mutex
	ttl      time.Duration
	timers   map[string]*IdleTimer
	onExpire func(userID string)
}

// NewTracker builds a tracker that calls onExpire when a user's session
// idles out.
func NewTracker(ttl time.Duration, onExpire func(userID string)) *Tracker {
	return &Tracker{
		ttl:      ttl,
		timers:   make(map[string]*IdleTimer),
		onExpire: onExpire,
	}
}

// Touch records activity for a user, starting a timer on first sight.
func (tr *Tracker) Touch(userID string) {
	if userID == "" {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if t, ok := tr.timers[userID]; ok && t.Touch() {
		return
	}
	tr.timers[userID] = newIdleTimer(tr.ttl, func() {
		tr.remove(userID)
		if tr.onExpire != nil {
			tr.onExpire(userID)
		}
	})
}

// Signout stops and removes the user's timer without firing expiry.
func (tr *Tracker) Signout(userID string) {
	tr.mu.Lock()
	t, ok := tr.timers[userID]
	delete(tr.timers, userID)
	tr.mu.Unlock()
	if ok {
		t.Stop()
	}
}

// Active reports whether the user currently has a live timer.
func (tr *Tracker) Active(userID string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, ok := tr.timers[userID]
	return ok
}

func (tr *Tracker) remove(userID string) {
	tr.mu.Lock()
	delete(tr.timers, userID)
	tr.mu.Unlock()
}
