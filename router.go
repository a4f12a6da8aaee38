package main

import (
	"strings"
	"sync"
	"sync/atomic"

	"voxkey/control"
	"voxkey/grammar"
	"voxkey/log"
)

// Outcome says what Route did with an utterance.
type Outcome int

const (
	Dropped Outcome = iota // voice paused or nothing to do
	Executed
	Rejected // looked like a command but emitted nothing
	Dictated
	DictationFailed
)

func (o Outcome) String() string {
	switch o {
	case Dropped:
		return "dropped"
	case Executed:
		return "executed"
	case Rejected:
		return "rejected"
	case Dictated:
		return "dictated"
	case DictationFailed:
		return "dictation_failed"
	}
	return "unknown"
}

// Router decides whether a recognized utterance is a key command or text.
type Router struct {
	ctl     *control.Controller
	engine  *grammar.Engine
	dictate func(string) error

	routed atomic.Int64

	mu      sync.Mutex
	grammar *control.Topic[bool]
	queue   control.Queue
	onRoute func(text string, o Outcome)
	onFail  func(text string, o Outcome)
}

func NewRouter(ctl *control.Controller, engine *grammar.Engine, dictate func(string) error) *Router {
	return &Router{
		ctl:     ctl,
		engine:  engine,
		dictate: dictate,
		grammar: control.NewTopic("grammar", false),
	}
}

// OnRoute sets a hook called after every Route.
func (r *Router) OnRoute(fn func(text string, o Outcome)) {
	r.mu.Lock()
	r.onRoute = fn
	r.mu.Unlock()
}

// OnFailure sets a hook called when an utterance is rejected or its
// dictation fails.
func (r *Router) OnFailure(fn func(text string, o Outcome)) {
	r.mu.Lock()
	r.onFail = fn
	r.mu.Unlock()
}

func (r *Router) Grammar() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grammar.Value()
}

func (r *Router) SetGrammar(on bool) bool {
	return r.updateGrammar(func(bool) bool { return on })
}

// ToggleGrammar flips grammar mode and returns the new setting.
func (r *Router) ToggleGrammar() bool {
	return r.updateGrammar(func(cur bool) bool { return !cur })
}

// updateGrammar applies next. Entering grammar mode shows the reference
// panel and leaving it hides the panel.
func (r *Router) updateGrammar(next func(bool) bool) bool {
	r.mu.Lock()
	on := next(r.grammar.Value())
	deliver, changed := r.grammar.Set(on)
	if changed {
		log.StateChange("grammar", onOff(on))
		r.queue.Push(deliver)
	}
	r.mu.Unlock()
	r.queue.Drain(&r.mu)

	switch {
	case changed && on:
		r.ctl.ShowShortcuts()
	case changed:
		r.ctl.HideShortcuts()
	}
	return on
}

// RegisterGrammar adds o and calls it with the current setting.
func (r *Router) RegisterGrammar(o *control.Observer[bool]) {
	r.mu.Lock()
	deliver, added := r.grammar.Add(o)
	r.mu.Unlock()
	if added {
		deliver()
	}
}

func (r *Router) UnregisterGrammar(o *control.Observer[bool]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammar.Remove(o)
}

// Routed is the number of utterances that produced keystrokes or text.
func (r *Router) Routed() int { return int(r.routed.Load()) }

// Route handles one utterance. Nothing happens while voice is paused. In
// grammar mode every utterance is parsed as a command; otherwise only
// explicit commands are, and the rest is dictated.
func (r *Router) Route(text string) Outcome {
	o := r.route(text)
	if o == Executed || o == Dictated {
		r.routed.Add(1)
	}
	r.mu.Lock()
	fn, fail := r.onRoute, r.onFail
	r.mu.Unlock()
	if fn != nil {
		fn(text, o)
	}
	if fail != nil && (o == Rejected || o == DictationFailed) {
		fail(text, o)
	}
	return o
}

func (r *Router) route(text string) Outcome {
	if r.ctl.Voice() != control.Active {
		return Dropped
	}
	if strings.TrimSpace(text) == "" {
		return Dropped
	}
	if r.Grammar() || r.engine.IsCommand(text) {
		if r.engine.Parse(text) {
			return Executed
		}
		return Rejected
	}
	if err := r.dictate(text); err != nil {
		log.Errorf("dictation: %v", err)
		return DictationFailed
	}
	return Dictated
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
