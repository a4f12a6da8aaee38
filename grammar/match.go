package grammar

import (
	"strconv"
	"strings"
)

const maxModifiers = 3

// Normalize lowercases text, trims it and collapses inner whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Match applies the rules in priority order to a normalized utterance:
//
//  1. press|type <key>
//  2. keypad <digit>
//  3. function <1-12>
//  4. <mod> <key>
//  5. <mod> <mod> <key>
//  6. <mod> <mod> <mod> <key>
//  7. <key>
//
// It reports false only for the empty string.
func Match(text string) (Action, bool) {
	if a, ok := matchCommand(text); ok {
		return a, true
	}
	if text == "" {
		return nil, false
	}
	return Press{Key: text, Bare: true}, true
}

// matchCommand is Match without rule 7.
func matchCommand(text string) (Action, bool) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return nil, false
	}
	head, rest := words[0], words[1:]

	switch head {
	case "press", "type":
		return Press{Key: strings.Join(rest, " ")}, true
	case "keypad":
		if len(rest) == 1 && len(rest[0]) == 1 && isDigit(rest[0][0]) {
			return Keypad{Digit: rest[0][0]}, true
		}
	case "function":
		if n, ok := functionNumber(rest); ok {
			return Function{N: n}, true
		}
	}

	n := 0
	for n < len(words)-1 && n < maxModifiers && isModifierWord(words[n]) {
		n++
	}
	if n == 0 {
		return nil, false
	}
	mods := make([]string, n)
	copy(mods, words[:n])
	return Chord{Modifiers: mods, Key: strings.Join(words[n:], " ")}, true
}

// functionNumber accepts a single one- or two-digit number in 1..12.
// Anything else does not match, so the utterance falls through.
func functionNumber(rest []string) (int, bool) {
	if len(rest) != 1 || len(rest[0]) > 2 {
		return 0, false
	}
	for i := 0; i < len(rest[0]); i++ {
		if !isDigit(rest[0][i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

func isModifierWord(w string) bool {
	switch w {
	case "shift", "control", "ctrl", "alt":
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
