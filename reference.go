package main

import "voxkey/appctx"

// Shortcut is one line of the reference panel: what to say and what it does.
type Shortcut struct {
	Say  string
	Does string
}

type ShortcutGroup struct {
	Title   string
	Entries []Shortcut
}

var commonShortcuts = ShortcutGroup{"editing", []Shortcut{
	{"control c", "copy"},
	{"control v", "paste"},
	{"control x", "cut"},
	{"control z", "undo"},
	{"control shift z", "redo"},
	{"control a", "select all"},
	{"press enter", "new line"},
	{"press backspace", "delete left"},
}}

var referenceCatalog = map[appctx.Context][]ShortcutGroup{
	appctx.Default: {
		commonShortcuts,
		{"system", []Shortcut{
			{"alt tab", "switch window"},
			{"alt f4", "close window"},
			{"press escape", "cancel"},
			{"control alt delete", "system menu"},
		}},
	},
	appctx.Terminal: {
		{"shell", []Shortcut{
			{"control c", "interrupt"},
			{"control d", "end of input"},
			{"control l", "clear screen"},
			{"control r", "search history"},
			{"control shift c", "copy"},
			{"control shift v", "paste"},
			{"press tab", "complete"},
			{"press up", "previous command"},
		}},
	},
	appctx.Browser: {
		{"tabs", []Shortcut{
			{"control t", "new tab"},
			{"control w", "close tab"},
			{"control shift t", "reopen tab"},
			{"control page down", "next tab"},
			{"control page up", "previous tab"},
		}},
		{"navigation", []Shortcut{
			{"control l", "address bar"},
			{"alt left", "back"},
			{"alt right", "forward"},
			{"function 5", "reload"},
			{"control f", "find"},
		}},
	},
	appctx.IDE: {
		{"code", []Shortcut{
			{"control p", "quick open"},
			{"control shift p", "command palette"},
			{"function 12", "go to definition"},
			{"control shift f", "search in files"},
			{"function 2", "rename symbol"},
			{"control s", "save"},
		}},
		{"debug", []Shortcut{
			{"function 5", "start or continue"},
			{"function 9", "toggle breakpoint"},
			{"function 10", "step over"},
			{"function 11", "step into"},
		}},
	},
	appctx.Editor: {
		commonShortcuts,
		{"file", []Shortcut{
			{"control s", "save"},
			{"control f", "find"},
			{"control h", "replace"},
			{"control home", "start of file"},
			{"control end", "end of file"},
		}},
	},
	appctx.Office: {
		commonShortcuts,
		{"format", []Shortcut{
			{"control b", "bold"},
			{"control i", "italic"},
			{"control u", "underline"},
			{"control p", "print"},
			{"control s", "save"},
		}},
	},
}

// shortcutsFor returns the reference groups for c, falling back to Default.
func shortcutsFor(c appctx.Context) []ShortcutGroup {
	if g, ok := referenceCatalog[c]; ok {
		return g
	}
	return referenceCatalog[appctx.Default]
}
