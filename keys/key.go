// Package keys maps spoken key names to injectable key identities.
package keys

import "fmt"

// Named is one of the fixed special keys. Literal characters are not Named.
type Named uint8

const (
	NoKey Named = iota

	Enter
	Tab
	Space
	Backspace
	Delete
	Escape
	Insert

	Up
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End

	Shift
	Ctrl
	Alt
	Super

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	CapsLock
	PrintScreen
	ScrollLock
	Pause
	Menu
)

var namedLabels = [...]string{
	NoKey:       "none",
	Enter:       "enter",
	Tab:         "tab",
	Space:       "space",
	Backspace:   "backspace",
	Delete:      "delete",
	Escape:      "escape",
	Insert:      "insert",
	Up:          "up",
	Down:        "down",
	Left:        "left",
	Right:       "right",
	PageUp:      "page up",
	PageDown:    "page down",
	Home:        "home",
	End:         "end",
	Shift:       "shift",
	Ctrl:        "ctrl",
	Alt:         "alt",
	Super:       "super",
	F1:          "f1",
	F2:          "f2",
	F3:          "f3",
	F4:          "f4",
	F5:          "f5",
	F6:          "f6",
	F7:          "f7",
	F8:          "f8",
	F9:          "f9",
	F10:         "f10",
	F11:         "f11",
	F12:         "f12",
	CapsLock:    "caps lock",
	PrintScreen: "print screen",
	ScrollLock:  "scroll lock",
	Pause:       "pause",
	Menu:        "menu",
}

func (n Named) String() string {
	if int(n) < len(namedLabels) {
		return namedLabels[n]
	}
	return fmt.Sprintf("named(%d)", uint8(n))
}

// IsModifier reports whether n is held while another key is struck.
func (n Named) IsModifier() bool {
	return n == Shift || n == Ctrl || n == Alt || n == Super
}

// Function returns the function key Fn for 1 <= n <= 12.
func Function(n int) (Named, bool) {
	if n < 1 || n > 12 {
		return NoKey, false
	}
	return F1 + Named(n-1), true
}

// Token identifies a key: either a Named special key or a literal rune.
// The zero Token is invalid.
type Token struct {
	named Named
	char  rune
}

// Special returns the token for a named key.
func Special(n Named) Token { return Token{named: n} }

// Char returns the token for a literal character.
func Char(r rune) Token { return Token{char: r} }

// Named returns the special key and true, or NoKey and false for literals.
func (t Token) Named() (Named, bool) { return t.named, t.named != NoKey }

// Rune returns the literal character and true, or 0 and false for named keys.
func (t Token) Rune() (rune, bool) { return t.char, t.named == NoKey && t.char != 0 }

func (t Token) IsValid() bool { return t.named != NoKey || t.char != 0 }

func (t Token) IsModifier() bool { return t.named.IsModifier() }

func (t Token) String() string {
	if t.named != NoKey {
		return t.named.String()
	}
	if t.char != 0 {
		return string(t.char)
	}
	return "invalid"
}
