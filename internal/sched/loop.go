// Package sched provides a single-threaded frame and timer loop.
//
// A Loop plays the role of the display: every call to Advance is one refresh.
// All callbacks run on the goroutine calling Advance, so state touched only
// from callbacks needs no locking.
package sched

import "time"

// Handle identifies a pending frame callback or timer. The zero Handle is never issued.
type Handle uint64

type frameRequest struct {
	id Handle
	fn func()
}

type timer struct {
	id       Handle
	deadline time.Duration
	fn       func()
}

type Loop struct {
	now    time.Duration
	nextID Handle
	frames []frameRequest
	due    []frameRequest
	timers []timer
}

func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the virtual time elapsed since the loop was created.
func (l *Loop) Now() time.Duration { return l.now }

func (l *Loop) issue() Handle {
	l.nextID++
	return l.nextID
}

// RequestFrame runs fn once on the next refresh.
func (l *Loop) RequestFrame(fn func()) Handle {
	id := l.issue()
	l.frames = append(l.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame drops a pending frame callback. Unknown handles are ignored.
func (l *Loop) CancelFrame(h Handle) {
	for i, f := range l.frames {
		if f.id == h {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
	for i := range l.due {
		if l.due[i].id == h {
			l.due[i].fn = nil
			return
		}
	}
}

// AfterFunc runs fn once after the clock has advanced by at least d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	id := l.issue()
	l.timers = append(l.timers, timer{id: id, deadline: l.now + d, fn: fn})
	return id
}

// Stop cancels a pending timer and reports whether it was still pending.
func (l *Loop) Stop(h Handle) bool {
	for i, t := range l.timers {
		if t.id == h {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Loop) PendingFrames() int { return len(l.frames) }

func (l *Loop) PendingTimers() int { return len(l.timers) }

// Advance performs one refresh: the clock moves by dt, due timers fire in
// deadline order, then the frame callbacks queued before this refresh run.
// Frames requested from inside any callback, timers included, wait for the
// next refresh.
func (l *Loop) Advance(dt time.Duration) {
	if dt > 0 {
		l.now += dt
	}
	l.due, l.frames = l.frames, nil
	l.fireTimers()

	for i := range l.due {
		if fn := l.due[i].fn; fn != nil {
			l.due[i].fn = nil
			fn()
		}
	}
	l.due = nil
}

func (l *Loop) fireTimers() {
	for {
		idx := -1
		for i, t := range l.timers {
			if t.deadline > l.now {
				continue
			}
			if idx < 0 || t.deadline < l.timers[idx].deadline ||
				(t.deadline == l.timers[idx].deadline && t.id < l.timers[idx].id) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := l.timers[idx]
		l.timers = append(l.timers[:idx], l.timers[idx+1:]...)
		t.fn()
	}
}
