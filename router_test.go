package main

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"voxkey/appctx"
	"voxkey/clipboard"
	"voxkey/control"
	"voxkey/hotkey"
	"voxkey/inject"
	"voxkey/keys"
)

func testConfig() config {
	return config{longPress: 30 * time.Millisecond, poll: time.Hour, hybrid: true}
}

func testSet(t *testing.T) hotkey.Set {
	t.Helper()
	set, err := hotkey.ParseSet(keys.NewResolver(), hotkey.DefaultVoice, hotkey.DefaultShortcuts, hotkey.DefaultGrammar)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func newRouterApp(t *testing.T, voice bool) (*App, *inject.Fake, *clipboard.Memory) {
	t.Helper()
	cfg := testConfig()
	cfg.voice = voice
	fk := inject.NewFake()
	board := &clipboard.Memory{}
	focus := appctx.FocusFunc(func(context.Context) (string, error) { return "xterm", nil })
	app := newApp(cfg, testSet(t), fk, board, focus)
	t.Cleanup(app.dictator.Flush)
	return app, fk, board
}

const pasteTrace = "press ctrl, press v, release v, release ctrl"

func TestRouteDropsWhilePaused(t *testing.T) {
	app, fk, board := newRouterApp(t, false)
	for _, text := range []string{"control c", "hello world", "escape"} {
		if got := app.router.Route(text); got != Dropped {
			t.Errorf("Route(%q) = %v, want dropped", text, got)
		}
	}
	if fk.Trace() != "" || len(board.Copies()) != 0 {
		t.Errorf("paused router produced output: %q %q", fk.Trace(), board.Copies())
	}
	if app.router.Routed() != 0 {
		t.Errorf("Routed = %d", app.router.Routed())
	}
}

func TestRouteCommand(t *testing.T) {
	app, fk, board := newRouterApp(t, true)
	if got := app.router.Route("Control  C"); got != Executed {
		t.Fatalf("Route = %v", got)
	}
	if got := fk.Trace(); got != "press ctrl, press c, release c, release ctrl" {
		t.Errorf("trace = %q", got)
	}
	if len(board.Copies()) != 0 {
		t.Error("command went through the clipboard")
	}
}

func TestRouteDictation(t *testing.T) {
	app, fk, board := newRouterApp(t, true)
	if got := app.router.Route("hello world"); got != Dictated {
		t.Fatalf("Route = %v", got)
	}
	if got := board.Copies(); !slices.Equal(got, []string{"hello world"}) {
		t.Errorf("clipboard writes = %q", got)
	}
	if got := fk.Trace(); got != pasteTrace {
		t.Errorf("trace = %q", got)
	}

	// a bare key name is text outside grammar mode
	fk.Reset()
	if got := app.router.Route("escape"); got != Dictated {
		t.Errorf("Route(escape) = %v", got)
	}
	if app.router.Routed() != 2 {
		t.Errorf("Routed = %d", app.router.Routed())
	}
}

func TestRouteGrammarMode(t *testing.T) {
	app, fk, board := newRouterApp(t, true)
	if !app.router.ToggleGrammar() {
		t.Fatal("grammar mode not on")
	}

	if got := app.router.Route("escape"); got != Executed {
		t.Errorf("Route(escape) = %v", got)
	}
	if got := fk.Trace(); got != "press escape, release escape" {
		t.Errorf("trace = %q", got)
	}

	fk.Reset()
	if got := app.router.Route("hello world"); got != Rejected {
		t.Errorf("Route(hello world) = %v, want rejected", got)
	}
	if fk.Trace() != "" || len(board.Copies()) != 0 {
		t.Error("grammar mode typed text")
	}
}

func TestRouteRejectedCommand(t *testing.T) {
	app, fk, _ := newRouterApp(t, true)
	if got := app.router.Route("press banana"); got != Rejected {
		t.Errorf("Route = %v", got)
	}
	if fk.Trace() != "" {
		t.Errorf("trace = %q", fk.Trace())
	}
}

func TestRouteDictationFailure(t *testing.T) {
	app, fk, board := newRouterApp(t, true)
	board.Copy("saved")
	fk.FailOn(inject.KindPress, keys.Char('v'), errors.New("device gone"))

	if got := app.router.Route("some text"); got != DictationFailed {
		t.Fatalf("Route = %v", got)
	}
	if got, _ := board.Read(); got != "saved" {
		t.Errorf("clipboard = %q, want restored", got)
	}
	if app.router.Routed() != 0 {
		t.Errorf("Routed = %d", app.router.Routed())
	}
}

func TestRouteHook(t *testing.T) {
	app, _, _ := newRouterApp(t, true)
	var got []Outcome
	app.router.OnRoute(func(_ string, o Outcome) { got = append(got, o) })

	app.router.Route("control z")
	app.ctl.Pause()
	app.router.Route("control z")

	if !slices.Equal(got, []Outcome{Executed, Dropped}) {
		t.Errorf("hook saw %v", got)
	}
}

func TestFailureHook(t *testing.T) {
	app, fk, _ := newRouterApp(t, true)
	var got []Outcome
	app.router.OnFailure(func(_ string, o Outcome) { got = append(got, o) })

	app.router.Route("control z")
	app.router.Route("press banana")
	fk.FailOn(inject.KindPress, keys.Char('v'), errors.New("device gone"))
	app.router.Route("some text")

	if !slices.Equal(got, []Outcome{Rejected, DictationFailed}) {
		t.Errorf("failure hook saw %v", got)
	}
}

func TestGrammarModeDrivesPanel(t *testing.T) {
	app, _, _ := newRouterApp(t, true)
	var panel []control.PanelState
	app.ctl.RegisterShortcuts(control.NewObserver("test", func(p control.PanelState) { panel = append(panel, p) }))

	app.ctl.HideShortcuts()
	app.router.ToggleGrammar()
	if got := app.ctl.Shortcuts(); got != control.Visible {
		t.Errorf("panel after entering grammar mode = %v", got)
	}
	app.router.SetGrammar(true) // unchanged: panel left alone
	app.ctl.HideShortcuts()
	app.ctl.ShowShortcuts()
	app.router.ToggleGrammar()
	if got := app.ctl.Shortcuts(); got != control.Hidden {
		t.Errorf("panel after leaving grammar mode = %v", got)
	}

	want := []control.PanelState{control.Visible, control.Hidden, control.Visible, control.Hidden, control.Visible, control.Hidden}
	if !slices.Equal(panel, want) {
		t.Errorf("panel notifications = %v, want %v", panel, want)
	}
}

func TestDictationLeavesLastCommand(t *testing.T) {
	app, _, _ := newRouterApp(t, true)
	app.router.Route("control s")
	if got := app.router.Route("some words"); got != Dictated {
		t.Fatalf("Route = %v", got)
	}
	if cmd, _ := app.engine.LastCommand(); cmd != "control s" {
		t.Errorf("LastCommand = %q, want control s", cmd)
	}
}

func TestGrammarObserver(t *testing.T) {
	app, _, _ := newRouterApp(t, true)
	var seen []bool
	app.router.RegisterGrammar(control.NewObserver("test", func(on bool) { seen = append(seen, on) }))

	app.router.SetGrammar(false) // unchanged
	app.router.ToggleGrammar()
	app.router.SetGrammar(true) // unchanged
	app.router.ToggleGrammar()

	if !slices.Equal(seen, []bool{false, true, false}) {
		t.Errorf("grammar observer saw %v", seen)
	}
}
