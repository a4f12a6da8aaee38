package hotkey

import (
	"context"
	"time"
)

type Event int

const (
	// Tap is a press released before the long-press threshold.
	Tap Event = iota
	// HoldStart fires once the key has been down for the threshold.
	HoldStart
	// HoldEnd is the release that follows HoldStart.
	HoldEnd
)

func (e Event) String() string {
	switch e {
	case Tap:
		return "tap"
	case HoldStart:
		return "hold_start"
	case HoldEnd:
		return "hold_end"
	}
	return "unknown"
}

// Hybrid wraps a Hotkey to tell taps from holds on the same key combination.
// A tap is reported on release; a hold is reported as soon as the threshold
// passes and again on release.
type Hybrid struct {
	events chan Event
}

// NewHybrid builds a Hybrid on top of an existing Hotkey. longPress is the
// hold threshold. The goroutine exits when ctx is done.
func NewHybrid(ctx context.Context, hk Hotkey, longPress time.Duration) *Hybrid {
	h := &Hybrid{events: make(chan Event, 4)}
	go h.run(ctx, hk, longPress)
	return h
}

func (h *Hybrid) Events() <-chan Event { return h.events }

func (h *Hybrid) run(ctx context.Context, hk Hotkey, longPress time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
		}

		timer := time.NewTimer(longPress)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-hk.Keyup():
			timer.Stop()
			if !h.emit(ctx, Tap) {
				return
			}
		case <-timer.C:
			if !h.emit(ctx, HoldStart) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-hk.Keyup():
			}
			if !h.emit(ctx, HoldEnd) {
				return
			}
		}
	}
}

func (h *Hybrid) emit(ctx context.Context, e Event) bool {
	select {
	case h.events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
