package inject

import (
	"fmt"
	"strings"
	"sync"

	"voxkey/keys"
)

type Kind int

const (
	KindPress Kind = iota
	KindRelease
)

func (k Kind) String() string {
	if k == KindRelease {
		return "release"
	}
	return "press"
}

type Event struct {
	Kind  Kind
	Token keys.Token
}

func (e Event) String() string { return e.Kind.String() + " " + e.Token.String() }

// Fake records every press and release instead of touching the host.
type Fake struct {
	mu       sync.Mutex
	events   []Event
	failOn   map[Event]error
	panicOn  map[Event]bool
	listener func(Event)
}

func NewFake() *Fake {
	return &Fake{failOn: map[Event]error{}, panicOn: map[Event]bool{}}
}

// FailOn makes the given event return err instead of being recorded.
func (f *Fake) FailOn(kind Kind, t keys.Token, err error) {
	f.mu.Lock()
	f.failOn[Event{kind, t}] = err
	f.mu.Unlock()
}

// PanicOn makes the given event panic.
func (f *Fake) PanicOn(kind Kind, t keys.Token) {
	f.mu.Lock()
	f.panicOn[Event{kind, t}] = true
	f.mu.Unlock()
}

// OnEvent registers fn to be called after each recorded event.
func (f *Fake) OnEvent(fn func(Event)) {
	f.mu.Lock()
	f.listener = fn
	f.mu.Unlock()
}

func (f *Fake) Press(t keys.Token) error   { return f.record(Event{KindPress, t}) }
func (f *Fake) Release(t keys.Token) error { return f.record(Event{KindRelease, t}) }

func (f *Fake) record(ev Event) error {
	f.mu.Lock()
	if f.panicOn[ev] {
		f.mu.Unlock()
		panic(fmt.Sprintf("fake injector: %s", ev))
	}
	if err := f.failOn[ev]; err != nil {
		f.mu.Unlock()
		return err
	}
	f.events = append(f.events, ev)
	fn := f.listener
	f.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
	return nil
}

func (f *Fake) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Trace renders the recorded events as "press ctrl, release ctrl".
func (f *Fake) Trace() string {
	evs := f.Events()
	parts := make([]string, len(evs))
	for i, ev := range evs {
		parts[i] = ev.String()
	}
	return strings.Join(parts, ", ")
}

func (f *Fake) Reset() {
	f.mu.Lock()
	f.events = nil
	f.mu.Unlock()
}
