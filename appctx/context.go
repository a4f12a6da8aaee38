// Package appctx works out which kind of application has focus, so the
// reference panel can show the shortcuts that matter there.
package appctx

import (
	"fmt"
	"strings"
)

type Context int

const (
	Default Context = iota
	Terminal
	Browser
	IDE
	Editor
	Office
)

var contextNames = [...]string{
	Default:  "default",
	Terminal: "terminal",
	Browser:  "browser",
	IDE:      "ide",
	Editor:   "editor",
	Office:   "office",
}

func (c Context) String() string {
	if c >= 0 && int(c) < len(contextNames) {
		return contextNames[c]
	}
	return fmt.Sprintf("context(%d)", int(c))
}

// All lists every context in display order.
func All() []Context {
	return []Context{Default, Terminal, Browser, IDE, Editor, Office}
}

// classTable is checked top to bottom; the first substring found in the
// window class wins.
var classTable = []struct {
	match string
	ctx   Context
}{
	{"gnome-terminal", Terminal},
	{"konsole", Terminal},
	{"xterm", Terminal},
	{"alacritty", Terminal},
	{"kitty", Terminal},
	{"terminator", Terminal},
	{"wezterm", Terminal},

	{"firefox", Browser},
	{"chrome", Browser},
	{"chromium", Browser},
	{"brave", Browser},
	{"opera", Browser},
	{"vivaldi", Browser},

	{"code", IDE},
	{"pycharm", IDE},
	{"intellij", IDE},
	{"goland", IDE},
	{"eclipse", IDE},
	{"netbeans", IDE},

	{"gedit", Editor},
	{"kate", Editor},
	{"sublime_text", Editor},
	{"atom", Editor},
	{"vim", Editor},
	{"emacs", Editor},

	{"libreoffice", Office},
	{"soffice", Office},
	{"writer", Office},
	{"calc", Office},
}

// Classify maps a window class or application name to a Context.
// Unrecognised labels are Default.
func Classify(label string) Context {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Default
	}
	for _, e := range classTable {
		if strings.Contains(label, e.match) {
			return e.ctx
		}
	}
	return Default
}
