package keys

import "testing"

func TestResolveNamed(t *testing.T) {
	r := NewResolver()
	cases := map[string]Named{
		"enter":        Enter,
		"Return":       Enter,
		"  ESC ":       Escape,
		"page up":      PageUp,
		"control":      Ctrl,
		"ctrl":         Ctrl,
		"option":       Alt,
		"windows":      Super,
		"f12":          F12,
		"print screen": PrintScreen,
	}
	for name, want := range cases {
		tok, ok := r.Resolve(name)
		if !ok {
			t.Errorf("Resolve(%q) not found", name)
			continue
		}
		got, isNamed := tok.Named()
		if !isNamed || got != want {
			t.Errorf("Resolve(%q) = %v, want %v", name, tok, want)
		}
	}
}

func TestResolveLiteral(t *testing.T) {
	r := NewResolver()
	for _, name := range []string{"a", "Z", "7"} {
		tok, ok := r.Resolve(name)
		if !ok {
			t.Fatalf("Resolve(%q) not found", name)
		}
		c, isChar := tok.Rune()
		if !isChar {
			t.Fatalf("Resolve(%q) = %v, want literal", name, tok)
		}
		if want := rune(lower(name[0])); c != want {
			t.Errorf("Resolve(%q) rune = %q, want %q", name, c, want)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver()
	for _, name := range []string{"", "   ", "hello", "alt delete", ",", "é", "f13"} {
		if tok, ok := r.Resolve(name); ok {
			t.Errorf("Resolve(%q) = %v, want not found", name, tok)
		}
	}
}

func TestFunction(t *testing.T) {
	if _, ok := Function(0); ok {
		t.Error("Function(0) should fail")
	}
	if _, ok := Function(13); ok {
		t.Error("Function(13) should fail")
	}
	if n, ok := Function(5); !ok || n != F5 {
		t.Errorf("Function(5) = %v, %v", n, ok)
	}
}

func TestEvdevCode(t *testing.T) {
	r := NewResolver()
	for _, name := range r.Names() {
		tok, _ := r.Resolve(name)
		if _, ok := EvdevCode(tok); !ok {
			t.Errorf("no evdev code for %q", name)
		}
	}
	if code, _ := EvdevCode(Char('v')); code != 47 {
		t.Errorf("v = %d, want 47", code)
	}
	if code, _ := EvdevCode(Char('0')); code != 11 {
		t.Errorf("0 = %d, want 11", code)
	}
	if _, ok := EvdevCode(Token{}); ok {
		t.Error("zero token should have no code")
	}
	if got := EvdevAliases(Special(Ctrl)); len(got) != 2 {
		t.Errorf("ctrl aliases = %v", got)
	}
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
