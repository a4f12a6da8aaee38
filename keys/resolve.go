package keys

import "strings"

// Resolver looks up spoken key names. Its table is built once by
// NewResolver and only read afterwards, so a Resolver is safe for
// concurrent use.
type Resolver struct {
	table map[string]Named
}

func NewResolver() *Resolver {
	t := map[string]Named{
		"enter":     Enter,
		"return":    Enter,
		"tab":       Tab,
		"space":     Space,
		"spacebar":  Space,
		"backspace": Backspace,
		"delete":    Delete,
		"escape":    Escape,
		"esc":       Escape,

		"up":        Up,
		"down":      Down,
		"left":      Left,
		"right":     Right,
		"page up":   PageUp,
		"page down": PageDown,
		"home":      Home,
		"end":       End,

		"shift":   Shift,
		"control": Ctrl,
		"ctrl":    Ctrl,
		"alt":     Alt,
		"option":  Alt,
		"command": Super,
		"cmd":     Super,
		"super":   Super,
		"windows": Super,

		"caps lock":    CapsLock,
		"insert":       Insert,
		"print screen": PrintScreen,
		"scroll lock":  ScrollLock,
		"pause":        Pause,
		"menu":         Menu,
	}
	for n := 1; n <= 12; n++ {
		fn, _ := Function(n)
		t[fn.String()] = fn
	}
	return &Resolver{table: t}
}

// Resolve maps name to a Token. Names are matched case-insensitively after
// trimming. A single ASCII letter or digit not in the table resolves to a
// literal token; anything else is not found.
func (r *Resolver) Resolve(name string) (Token, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, ok := r.table[name]; ok {
		return Special(n), true
	}
	if len(name) == 1 && isAlnum(name[0]) {
		return Char(rune(name[0])), true
	}
	return Token{}, false
}

// Names returns every name the table knows, for help output.
func (r *Resolver) Names() []string {
	out := make([]string, 0, len(r.table))
	for k := range r.table {
		out = append(out, k)
	}
	return out
}

// isAlnum is ASCII only: the injector has no key codes for other letters.
func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
