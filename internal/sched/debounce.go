package sched

import "time"

// Debouncer postpones an action until delay has passed without a new Trigger.
type Debouncer struct {
	loop    *Loop
	delay   time.Duration
	action  func()
	pending Handle
}

func NewDebouncer(loop *Loop, delay time.Duration, action func()) *Debouncer {
	return &Debouncer{loop: loop, delay: delay, action: action}
}

// Trigger restarts the postponement; only the last call before a quiet
// period of delay leads to the action.
func (d *Debouncer) Trigger() {
	if d.pending != 0 {
		d.loop.Stop(d.pending)
	}
	d.pending = d.loop.AfterFunc(d.delay, func() {
		d.pending = 0
		d.action()
	})
}

// Pending reports whether an action is scheduled.
func (d *Debouncer) Pending() bool { return d.pending != 0 }
