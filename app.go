package main

import (
	"context"
	"fmt"

	"voxkey/appctx"
	"voxkey/clipboard"
	"voxkey/control"
	"voxkey/grammar"
	"voxkey/hotkey"
	"voxkey/keys"
	"voxkey/log"
)

// App is everything between the recognizer and the keyboard.
type App struct {
	ctl      *control.Controller
	engine   *grammar.Engine
	dictator *clipboard.Dictator
	router   *Router
	monitor  *appctx.Monitor
	keys     hotkey.Set
}

func newApp(cfg config, set hotkey.Set, inj grammar.Injector, board clipboard.Board, focus appctx.Focus) *App {
	voice := control.Paused
	if cfg.voice {
		voice = control.Active
	}
	ctl := control.New(control.Options{Voice: voice})
	engine := grammar.New(keys.NewResolver(), inj)
	d := clipboard.NewDictator(board, func() bool { return engine.Send("control v") }, 0)
	r := NewRouter(ctl, engine, d.Type)
	r.SetGrammar(cfg.grammar)

	return &App{
		ctl:      ctl,
		engine:   engine,
		dictator: d,
		router:   r,
		monitor:  appctx.NewMonitor(focus, cfg.poll),
		keys:     set,
	}
}

func (a *App) sessionStart() {
	v, p := a.ctl.States()
	log.SessionStart(v.String(), p.String(), a.router.Grammar())
}

// listen routes utterances until src closes or ctx is done.
func (a *App) listen(ctx context.Context, src <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case text, ok := <-src:
			if !ok {
				return
			}
			o := a.router.Route(text)
			log.Infof("utterance %q: %s", text, o)
		}
	}
}

// bindHotkeys registers the voice, shortcuts and grammar hotkeys and starts
// their handlers. The returned func unregisters them.
func (a *App) bindHotkeys(ctx context.Context, cfg config, newHotkey func(hotkey.Combo) (hotkey.Hotkey, error)) (func(), error) {
	var registered []hotkey.Hotkey
	cleanup := func() {
		for _, hk := range registered {
			hk.Unregister()
		}
	}
	open := func(name string, c hotkey.Combo) (hotkey.Hotkey, error) {
		hk, err := newHotkey(c)
		if err != nil {
			return nil, fmt.Errorf("%s hotkey: %w", name, err)
		}
		if err := hk.Register(); err != nil {
			return nil, fmt.Errorf("%s hotkey %s: %w", name, c, err)
		}
		registered = append(registered, hk)
		return hk, nil
	}

	voice, err := open("voice", a.keys.Voice)
	if err != nil {
		cleanup()
		return nil, err
	}
	panel, err := open("shortcuts", a.keys.Shortcuts)
	if err != nil {
		cleanup()
		return nil, err
	}
	gram, err := open("grammar", a.keys.Grammar)
	if err != nil {
		cleanup()
		return nil, err
	}

	b := hotkey.NewBinder(a.ctl)
	if cfg.hybrid {
		go b.RunVoice(ctx, hotkey.NewHybrid(ctx, voice, cfg.longPress))
	} else {
		go b.RunPress(ctx, "voice", voice, func() { a.ctl.ToggleVoice() })
		go hotkey.Drain(ctx, voice)
	}
	go b.RunPress(ctx, "shortcuts", panel, func() { a.ctl.ToggleShortcuts() })
	go hotkey.Drain(ctx, panel)
	go b.RunPress(ctx, "grammar", gram, func() { a.router.ToggleGrammar() })
	go hotkey.Drain(ctx, gram)

	log.Infof("hotkeys: voice=%s shortcuts=%s grammar=%s hybrid=%v", a.keys.Voice, a.keys.Shortcuts, a.keys.Grammar, cfg.hybrid)
	return cleanup, nil
}

// close restores the clipboard, drops every observer and ends the session.
func (a *App) close() {
	a.dictator.Flush()
	a.ctl.Shutdown()
	log.SessionEnd(a.router.Routed())
}
