package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"voxkey/appctx"
	"voxkey/hotkey"
)

type config struct {
	voice      bool
	grammar    bool
	voiceKey   string
	panelKey   string
	grammarKey string
	hybrid     bool
	longPress  time.Duration
	poll       time.Duration
	logPath    string
	input      string
	beep       bool
	tui        bool
	test       bool
	doctor     bool
	version    bool
}

// parseConfig reads flags from args. Hotkeys fall back to VOXKEY_*_KEY
// environment variables before the built-in defaults.
func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	envOr := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	var c config
	fs := flag.NewFlagSet("voxkey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&c.voice, "voice", false, "Start with voice capture active")
	fs.BoolVar(&c.grammar, "grammar", false, "Grammar mode: treat every utterance as a key command")
	fs.StringVar(&c.voiceKey, "voice-key", envOr("VOXKEY_VOICE_KEY", hotkey.DefaultVoice), "Hotkey that toggles voice capture")
	fs.StringVar(&c.panelKey, "shortcuts-key", envOr("VOXKEY_SHORTCUTS_KEY", hotkey.DefaultShortcuts), "Hotkey that toggles the shortcuts panel")
	fs.StringVar(&c.grammarKey, "grammar-key", envOr("VOXKEY_GRAMMAR_KEY", hotkey.DefaultGrammar), "Hotkey that toggles grammar mode")
	fs.BoolVar(&c.hybrid, "hybrid", true, "Voice key: tap to toggle, hold to talk")
	fs.DurationVar(&c.longPress, "longpress", 350*time.Millisecond, "Long-press threshold for hold vs tap (e.g., 350ms)")
	fs.DurationVar(&c.poll, "poll", appctx.DefaultInterval, "How often to check the focused application")
	fs.StringVar(&c.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	fs.StringVar(&c.input, "input", "-", "Recognizer output to read utterances from, one per line (- for stdin)")
	fs.BoolVar(&c.beep, "beep", true, "Play a sound when voice starts, stops or a command fails")
	fs.BoolVar(&c.tui, "tui", true, "Run with terminal UI")
	fs.BoolVar(&c.test, "test", false, "Test mode (headless, stdin-driven script)")
	fs.BoolVar(&c.doctor, "doctor", false, "Run system diagnostics and exit")
	fs.BoolVar(&c.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if c.longPress <= 0 {
		return config{}, fmt.Errorf("-longpress must be positive, got %s", c.longPress)
	}
	if c.poll <= 0 {
		return config{}, fmt.Errorf("-poll must be positive, got %s", c.poll)
	}
	return c, nil
}
