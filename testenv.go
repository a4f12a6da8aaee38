package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"voxkey/appctx"
	"voxkey/beep"
	"voxkey/clipboard"
	"voxkey/control"
	"voxkey/hotkey"
	"voxkey/inject"
	"voxkey/log"
)

// newTestApp builds an App whose keyboard, clipboard and focused window are
// all in-process fakes. Every injected key event is written to out.
func newTestApp(cfg config, set hotkey.Set, out io.Writer) (*App, *inject.Fake) {
	fk := inject.NewFake()
	fk.OnEvent(func(e inject.Event) {
		log.Info("inject: " + e.String())
		fmt.Fprintf(out, "key %s\n", e)
	})
	focus := appctx.FocusFunc(func(context.Context) (string, error) { return "", nil })
	app := newApp(cfg, set, fk, &clipboard.Memory{}, focus)
	return app, fk
}

// runScript drives app from a line-oriented script until QUIT or EOF:
//
//	VOICE | SHORTCUTS | GRAMMAR   toggle a channel
//	MODE <mode>                   set both channels (both, voice, shortcuts, none)
//	SAY <text>                    route an utterance
//	KEYDOWN | KEYUP               press or release the voice hotkey
//	STATE                         print the current mode
//	SLEEP <ms>
//	QUIT
func runScript(ctx context.Context, app *App, in io.Reader, out io.Writer, longPress time.Duration) error {
	voiceKey := hotkey.NewFake()
	b := hotkey.NewBinder(app.ctl)
	go b.RunVoice(ctx, hotkey.NewHybrid(ctx, voiceKey, longPress))

	app.ctl.RegisterVoice(control.NewObserver("script", func(v control.VoiceState) {
		fmt.Fprintf(out, "voice %s\n", v)
	}))
	app.ctl.RegisterShortcuts(control.NewObserver("script", func(p control.PanelState) {
		fmt.Fprintf(out, "shortcuts %s\n", p)
	}))
	app.router.RegisterGrammar(control.NewObserver("script", func(on bool) {
		fmt.Fprintf(out, "grammar %s\n", onOff(on))
	}))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToUpper(cmd) {
		case "":
		case "VOICE":
			app.ctl.ToggleVoice()
		case "SHORTCUTS":
			app.ctl.ToggleShortcuts()
		case "GRAMMAR":
			app.router.ToggleGrammar()
		case "MODE":
			m, err := control.ParseMode(arg)
			if err != nil {
				fmt.Fprintf(out, "error %v\n", err)
				continue
			}
			app.ctl.SetMode(m)
		case "SAY":
			fmt.Fprintf(out, "said %q: %s\n", arg, app.router.Route(arg))
		case "KEYDOWN":
			voiceKey.SimKeydown()
		case "KEYUP":
			voiceKey.SimKeyup()
		case "STATE":
			fmt.Fprintf(out, "mode %s\n", app.ctl.Mode())
		case "SLEEP":
			if ms, err := strconv.Atoi(arg); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		case "QUIT":
			return nil
		default:
			fmt.Fprintf(out, "error unknown command %q\n", cmd)
		}
	}
	return scanner.Err()
}

// lockedWriter serializes writes coming from observer goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// runTestMode is the -test entry point: a fake desktop scripted from stdin.
func runTestMode(ctx context.Context, cfg config, set hotkey.Set) int {
	beep.Disable()
	out := &lockedWriter{w: os.Stdout}
	app, _ := newTestApp(cfg, set, out)
	app.sessionStart()
	defer app.close()

	if err := runScript(ctx, app, os.Stdin, out, cfg.longPress); err != nil && ctx.Err() == nil {
		log.Errorf("test script: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
