// Package hotkey listens for global key combinations and turns them into
// voice and panel transitions.
package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"voxkey/keys"
)

var ErrUnknownKey = errors.New("unknown key")

// Hotkey provides global shortcut registration with press/release events.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Combo is zero or more modifiers plus one trigger key.
type Combo struct {
	Mods []keys.Named
	Key  keys.Token
}

// ParseCombo reads forms like "ctrl+alt+v" or "Super + F9". Every part but
// the last must be a modifier.
func ParseCombo(r *keys.Resolver, s string) (Combo, error) {
	parts := strings.Split(s, "+")
	var c Combo
	for i, p := range parts {
		p = strings.TrimSpace(p)
		tok, ok := r.Resolve(p)
		if !ok {
			return Combo{}, fmt.Errorf("combo %q: %w: %q", s, ErrUnknownKey, p)
		}
		if i == len(parts)-1 {
			c.Key = tok
			break
		}
		n, _ := tok.Named()
		if !n.IsModifier() {
			return Combo{}, fmt.Errorf("combo %q: %q is not a modifier", s, p)
		}
		c.Mods = append(c.Mods, n)
	}
	return c, nil
}

func (c Combo) String() string {
	parts := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		parts = append(parts, m.String())
	}
	return strings.Join(append(parts, c.Key.String()), "+")
}

// Set is the three hotkeys the app listens on.
type Set struct {
	Voice     Combo
	Shortcuts Combo
	Grammar   Combo
}

const (
	DefaultVoice     = "ctrl+alt+v"
	DefaultShortcuts = "ctrl+alt+s"
	DefaultGrammar   = "ctrl+alt+g"
)

// ParseSet parses all three combos and rejects duplicates.
func ParseSet(r *keys.Resolver, voice, shortcuts, grammar string) (Set, error) {
	var s Set
	var err error
	if s.Voice, err = ParseCombo(r, voice); err != nil {
		return Set{}, fmt.Errorf("voice key: %w", err)
	}
	if s.Shortcuts, err = ParseCombo(r, shortcuts); err != nil {
		return Set{}, fmt.Errorf("shortcuts key: %w", err)
	}
	if s.Grammar, err = ParseCombo(r, grammar); err != nil {
		return Set{}, fmt.Errorf("grammar key: %w", err)
	}
	seen := map[string]string{}
	for _, e := range []struct{ name, combo string }{
		{"voice", s.Voice.String()},
		{"shortcuts", s.Shortcuts.String()},
		{"grammar", s.Grammar.String()},
	} {
		if prev, dup := seen[e.combo]; dup {
			return Set{}, fmt.Errorf("%s key %s is already used by %s", e.name, e.combo, prev)
		}
		seen[e.combo] = e.name
	}
	return s, nil
}
