package hotkey

import (
	"context"
	"testing"
	"time"
)

func waitEvent(t *testing.T, hy *Hybrid, want Event) {
	t.Helper()
	select {
	case got := <-hy.Events():
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %v", want)
	}
}

func expectQuiet(t *testing.T, hy *Hybrid, d time.Duration) {
	t.Helper()
	select {
	case e := <-hy.Events():
		t.Fatalf("unexpected %v", e)
	case <-time.After(d):
	}
}

func TestHybridLongPress(t *testing.T) {
	fk := NewFake()
	threshold := 50 * time.Millisecond
	hy := NewHybrid(t.Context(), fk, threshold)

	fk.SimKeydown()
	waitEvent(t, hy, HoldStart)
	expectQuiet(t, hy, 20*time.Millisecond)
	fk.SimKeyup()
	waitEvent(t, hy, HoldEnd)
}

func TestHybridShortTap(t *testing.T) {
	fk := NewFake()
	hy := NewHybrid(t.Context(), fk, 200*time.Millisecond)

	fk.SimKeydown()
	expectQuiet(t, hy, 20*time.Millisecond)
	fk.SimKeyup() // release before threshold
	waitEvent(t, hy, Tap)
	expectQuiet(t, hy, 250*time.Millisecond)
}

func TestHybridMultipleCycles(t *testing.T) {
	fk := NewFake()
	threshold := 50 * time.Millisecond
	hy := NewHybrid(t.Context(), fk, threshold)

	fk.SimKeydown()
	waitEvent(t, hy, HoldStart)
	fk.SimKeyup()
	waitEvent(t, hy, HoldEnd)

	fk.SimTap()
	waitEvent(t, hy, Tap)

	fk.SimTap()
	waitEvent(t, hy, Tap)

	fk.SimKeydown()
	waitEvent(t, hy, HoldStart)
	fk.SimKeyup()
	waitEvent(t, hy, HoldEnd)
}

func TestHybridStopsOnCancel(t *testing.T) {
	fk := NewFake()
	ctx, cancel := context.WithCancel(t.Context())
	hy := NewHybrid(ctx, fk, 50*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	fk.SimKeydown()
	expectQuiet(t, hy, 100*time.Millisecond)
}
