package grammar

import (
	"fmt"
	"sync"

	"voxkey/keys"
	"voxkey/log"
)

// Injector is the host capability that presses and releases keys.
type Injector interface {
	Press(keys.Token) error
	Release(keys.Token) error
}

// Engine parses utterances and emits the matching key events. It is safe
// for concurrent use; emissions are serialized so chords never interleave.
type Engine struct {
	resolver *keys.Resolver
	inj      Injector

	emitMu sync.Mutex

	mu      sync.Mutex
	last    string
	hasLast bool
}

func New(resolver *keys.Resolver, inj Injector) *Engine {
	return &Engine{resolver: resolver, inj: inj}
}

// Parse executes utterance as a command. It returns true only if key
// events were emitted; unknown keys and injector failures are logged and
// reported as false.
func (e *Engine) Parse(utterance string) bool {
	text := Normalize(utterance)
	if text == "" {
		return false
	}
	action, ok := Match(text)
	if !ok {
		return false
	}
	if !e.execute(action) {
		return false
	}
	e.mu.Lock()
	e.last, e.hasLast = action.Canonical(), true
	e.mu.Unlock()
	log.Command(action.Kind(), action.Canonical())
	return true
}

// Send emits utterance like Parse but leaves no trace of it as a command:
// LastCommand and the command log are untouched. Dictation uses it to send
// the paste keystroke.
func (e *Engine) Send(utterance string) bool {
	text := Normalize(utterance)
	if text == "" {
		return false
	}
	action, ok := Match(text)
	if !ok {
		return false
	}
	return e.execute(action)
}

// IsCommand reports whether utterance matches one of the explicit command
// rules. A bare key name is not a command. Nothing is executed.
func (e *Engine) IsCommand(utterance string) bool {
	_, ok := matchCommand(Normalize(utterance))
	return ok
}

// LastCommand returns the canonical form of the last executed command.
func (e *Engine) LastCommand() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.hasLast
}

func (e *Engine) execute(action Action) bool {
	var mods []keys.Token
	var target keys.Token

	switch a := action.(type) {
	case Press:
		t, ok := e.resolve(a.Key)
		if !ok {
			return false
		}
		target = t
	case Keypad:
		target = keys.Char(rune(a.Digit))
	case Function:
		n, ok := keys.Function(a.N)
		if !ok {
			log.Warnf("grammar: function key %d out of range", a.N)
			return false
		}
		target = keys.Special(n)
	case Chord:
		mods = make([]keys.Token, 0, len(a.Modifiers))
		for _, name := range a.Modifiers {
			t, ok := e.resolve(name)
			if !ok {
				return false
			}
			mods = append(mods, t)
		}
		t, ok := e.resolve(a.Key)
		if !ok {
			return false
		}
		target = t
	default:
		log.Errorf("grammar: unhandled action %T", action)
		return false
	}

	if err := e.emit(mods, target); err != nil {
		log.Errorf("grammar: %s failed: %v", action.Canonical(), err)
		return false
	}
	return true
}

func (e *Engine) resolve(name string) (keys.Token, bool) {
	t, ok := e.resolver.Resolve(name)
	if !ok {
		log.Warnf("grammar: unknown key %q", name)
	}
	return t, ok
}

// emit holds mods in order, strikes target, then lets go of mods in reverse.
// On failure every key still down is released before returning.
func (e *Engine) emit(mods []keys.Token, target keys.Token) (err error) {
	e.emitMu.Lock()
	defer e.emitMu.Unlock()

	var held []keys.Token
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("injector panic: %v", r)
		}
		if err != nil {
			e.releaseAll(held)
		}
	}()

	for _, m := range mods {
		if err := e.inj.Press(m); err != nil {
			return fmt.Errorf("press %s: %w", m, err)
		}
		held = append(held, m)
	}
	if err := e.inj.Press(target); err != nil {
		return fmt.Errorf("press %s: %w", target, err)
	}
	if err := e.inj.Release(target); err != nil {
		return fmt.Errorf("release %s: %w", target, err)
	}
	for len(held) > 0 {
		m := held[len(held)-1]
		held = held[:len(held)-1]
		if err := e.inj.Release(m); err != nil {
			return fmt.Errorf("release %s: %w", m, err)
		}
	}
	return nil
}

func (e *Engine) releaseAll(held []keys.Token) {
	for i := len(held) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("grammar: release %s panicked: %v", held[i], r)
				}
			}()
			if err := e.inj.Release(held[i]); err != nil {
				log.Errorf("grammar: release %s: %v", held[i], err)
			}
		}()
	}
}
