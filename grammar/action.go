// Package grammar turns spoken commands into key presses.
//
// An utterance is matched against a fixed, ordered rule list. Each rule
// produces one Action variant; the final rule accepts any non-empty text as
// a bare key name, so every non-empty utterance yields exactly one Action.
package grammar

import (
	"strconv"
	"strings"
)

// Action is the closed set of things an utterance can ask for. The variants
// are Press, Keypad, Function and Chord.
type Action interface {
	// Canonical is the textual form recorded as the last command.
	Canonical() string
	// Kind names the rule that produced the action.
	Kind() string

	isAction()
}

// Press strikes a single named key. Bare is set when the utterance had no
// "press"/"type" verb.
type Press struct {
	Key  string
	Bare bool
}

// Keypad strikes a digit key.
type Keypad struct {
	Digit byte
}

// Function strikes F1..F12.
type Function struct {
	N int
}

// Chord holds Modifiers (one to three, in spoken order) while Key is struck.
type Chord struct {
	Modifiers []string
	Key       string
}

func (Press) isAction()    {}
func (Keypad) isAction()   {}
func (Function) isAction() {}
func (Chord) isAction()    {}

func (a Press) Canonical() string    { return "press " + a.Key }
func (a Keypad) Canonical() string   { return "keypad " + string(a.Digit) }
func (a Function) Canonical() string { return "function " + strconv.Itoa(a.N) }
func (a Chord) Canonical() string {
	return strings.Join(a.Modifiers, " ") + " " + a.Key
}

func (a Press) Kind() string {
	if a.Bare {
		return "bare_key"
	}
	return "single_key"
}
func (Keypad) Kind() string   { return "numpad" }
func (Function) Kind() string { return "function_key" }
func (a Chord) Kind() string {
	switch len(a.Modifiers) {
	case 1:
		return "modifier_key"
	case 2:
		return "double_modifier"
	}
	return "triple_modifier"
}
