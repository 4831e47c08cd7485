// Package gravity schedules the periodic descent of the active piece.
//
// Two tick sources are provided. Timer suits goroutine event loops that
// select on a channel. Clock suits Bubble Tea, where each tick is a
// message scheduled with tea.Tick and cannot be cancelled once sent; the
// clock hands out generation tokens so stale ticks can be dropped. Both
// guarantee that at most one live tick stream exists per game.
package gravity

import "time"

// Timer is a restartable ticker. The zero value is stopped.
// A Timer is not safe for concurrent use; it belongs to the goroutine that
// selects on C.
type Timer struct {
	ticker *time.Ticker
	period time.Duration
}

// Reset stops any running ticker and starts a fresh one with period d.
// Non-positive periods stop the timer.
func (t *Timer) Reset(d time.Duration) {
	t.Stop()
	if d <= 0 {
		return
	}
	t.ticker = time.NewTicker(d)
	t.period = d
}

// Adjust restarts a running timer with period d if the period changed.
// A stopped timer stays stopped.
func (t *Timer) Adjust(d time.Duration) {
	if !t.Running() || d == t.period {
		return
	}
	t.Reset(d)
}

// Stop halts the timer. Ticks already delivered are not retracted, but no
// new ones arrive.
func (t *Timer) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	t.period = 0
}

// C returns the tick channel, or nil when stopped so that a select case on
// it never fires.
func (t *Timer) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Running reports whether the timer is ticking.
func (t *Timer) Running() bool {
	return t.ticker != nil
}

// Period returns the current period, zero when stopped.
func (t *Timer) Period() time.Duration {
	return t.period
}
