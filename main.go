package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"voxkey/appctx"
	"voxkey/beep"
	"voxkey/clipboard"
	"voxkey/doctor"
	"voxkey/hotkey"
	"voxkey/inject"
	"voxkey/keys"
	"voxkey/log"
	"voxkey/shutdown"
)

var version = "dev"

func run() {
	os.Exit(runMain(os.Args[1:]))
}

func runMain(args []string) int {
	cfg, err := parseConfig(args, os.Getenv, os.Stderr)
	if err != nil {
		return 2
	}

	if cfg.version {
		fmt.Printf("voxkey %s\n", version)
		return 0
	}

	set, err := hotkey.ParseSet(keys.NewResolver(), cfg.voiceKey, cfg.panelKey, cfg.grammarKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.doctor {
		return doctor.Run(set)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(cfg.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		return 1
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	initCrashLog()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	ctx, stop := shutdown.Context(context.Background())
	defer stop()

	if cfg.test {
		return runTestMode(ctx, cfg, set)
	}
	return runLive(ctx, cfg, set)
}

func initCrashLog() {
	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}

func runLive(ctx context.Context, cfg config, set hotkey.Set) int {
	kb, err := inject.New()
	if err != nil {
		log.Errorf("keyboard init: %v", err)
		fmt.Fprintf(os.Stderr, "Error: keyboard output unavailable: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
		return 1
	}
	if clipboard.Unsupported() {
		fmt.Fprintln(os.Stderr, "Warning: no clipboard utility found, dictation will fail (install xclip or wl-clipboard)")
	}

	app := newApp(cfg, set, kb, clipboard.System{}, appctx.Xdotool{})
	app.sessionStart()
	defer app.close()

	if cfg.beep {
		app.ctl.RegisterVoice(beep.VoiceObserver(beep.Play))
		app.router.OnFailure(func(string, Outcome) { beep.Play(beep.Fail) })
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unbind, err := app.bindHotkeys(ctx, cfg, hotkey.New)
	if err != nil {
		// the TUI keys and the recognizer still work without global hotkeys
		log.Warnf("%v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer unbind()
	}

	go app.monitor.Run(ctx)

	in, closeInput, err := openInput(cfg.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeInput()

	useTUI := cfg.tui && term.IsTerminal(int(os.Stdout.Fd()))
	var tuiOpts []tea.ProgramOption
	if useTUI && in == os.Stdin {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			// stdin belongs to the TUI; utterances need -input
			log.Warn("tui owns stdin; pass -input to read utterances")
			in = nil
		} else {
			tuiOpts = append(tuiOpts, tea.WithInputTTY())
		}
	}
	if in != nil {
		go func() {
			app.listen(ctx, lineSource(ctx, in))
			if !useTUI {
				cancel()
			}
		}()
	}

	if !useTUI {
		<-ctx.Done()
		return 0
	}

	p := NewTUIProgram(app, tuiOpts...)
	var obs *tuiObservers
	attached := make(chan struct{})
	go func() {
		obs = attachTUI(app, p.Send)
		close(attached)
	}()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	if _, err := p.Run(); err != nil {
		log.Errorf("TUI error: %v", err)
		return 1
	}
	cancel()
	<-attached
	obs.detach(app)
	return 0
}

// openInput opens the recognizer output. "-" is stdin.
func openInput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}
