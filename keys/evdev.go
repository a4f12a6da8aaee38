package keys

// Linux input-event-codes.h values.

// a=30, b=48, c=46, d=32, e=18, f=33, g=34, h=35, i=23, j=36,
// k=37, l=38, m=50, n=49, o=24, p=25, q=16, r=19, s=31, t=20,
// u=22, v=47, w=17, x=45, y=21, z=44
var letterCodes = [26]uint16{
	30, 48, 46, 32, 18, 33, 34, 35, 23, 36,
	37, 38, 50, 49, 24, 25, 16, 19, 31, 20,
	22, 47, 17, 45, 21, 44,
}

// 0=11, 1=2, 2=3, ..., 9=10
var digitCodes = [10]uint16{11, 2, 3, 4, 5, 6, 7, 8, 9, 10}

var namedCodes = [...]uint16{
	Enter:       28,
	Tab:         15,
	Space:       57,
	Backspace:   14,
	Delete:      111,
	Escape:      1,
	Insert:      110,
	Up:          103,
	Down:        108,
	Left:        105,
	Right:       106,
	PageUp:      104,
	PageDown:    109,
	Home:        102,
	End:         107,
	Shift:       42,
	Ctrl:        29,
	Alt:         56,
	Super:       125,
	F1:          59,
	F2:          60,
	F3:          61,
	F4:          62,
	F5:          63,
	F6:          64,
	F7:          65,
	F8:          66,
	F9:          67,
	F10:         68,
	F11:         87,
	F12:         88,
	CapsLock:    58,
	PrintScreen: 99,
	ScrollLock:  70,
	Pause:       119,
	Menu:        139,
}

// Right-hand modifier codes, accepted as equivalents when reading events.
const (
	codeRightShift = 54
	codeRightCtrl  = 97
	codeRightAlt   = 100
	codeRightSuper = 126
)

// EvdevCode returns the Linux key code for t.
func EvdevCode(t Token) (uint16, bool) {
	if n, ok := t.Named(); ok {
		if int(n) < len(namedCodes) && namedCodes[n] != 0 {
			return namedCodes[n], true
		}
		return 0, false
	}
	c, ok := t.Rune()
	if !ok {
		return 0, false
	}
	switch {
	case c >= 'a' && c <= 'z':
		return letterCodes[c-'a'], true
	case c >= '0' && c <= '9':
		return digitCodes[c-'0'], true
	}
	return 0, false
}

// EvdevAliases returns every code that counts as t when reading input, so
// both left and right modifiers match.
func EvdevAliases(t Token) []uint16 {
	code, ok := EvdevCode(t)
	if !ok {
		return nil
	}
	n, _ := t.Named()
	switch n {
	case Shift:
		return []uint16{code, codeRightShift}
	case Ctrl:
		return []uint16{code, codeRightCtrl}
	case Alt:
		return []uint16{code, codeRightAlt}
	case Super:
		return []uint16{code, codeRightSuper}
	}
	return []uint16{code}
}
