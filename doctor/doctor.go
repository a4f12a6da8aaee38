// Package doctor walks the user through checks of every desktop
// integration voxkey needs.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"voxkey/appctx"
	"voxkey/clipboard"
	"voxkey/grammar"
	"voxkey/hotkey"
	"voxkey/inject"
	"voxkey/keys"
	"voxkey/shutdown"
)

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(set hotkey.Set) int {
	resetTerminal()
	ctx, stop := shutdown.Context(context.Background())
	finished := make(chan struct{})
	watching := make(chan struct{})
	defer func() {
		close(finished)
		<-watching
		stop()
	}()
	go func() {
		defer close(watching)
		select {
		case <-ctx.Done():
			fmt.Println("\nInterrupted")
			os.Exit(1)
		case <-finished:
		}
	}()

	fmt.Println("voxkey doctor - interactive system diagnostics")
	fmt.Println("==============================================")

	allPass := true

	if !checkHotkey(ctx, set.Voice) {
		allPass = false
	}
	kb, ok := checkInjector()
	if !ok {
		allPass = false
	}
	if !checkContext(ctx) {
		allPass = false
	}
	if kb != nil && !checkPaste(kb) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkHotkey(ctx context.Context, combo hotkey.Combo) bool {
	fmt.Println()
	fmt.Println("[1/4] Hotkey detection")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  %s\n", msg)

	hk, err := hotkey.New(combo)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if err := hk.Register(); err != nil {
		fmt.Printf("  FAIL: could not register hotkey: %v\n", err)
		return false
	}
	defer hk.Unregister()

	fmt.Printf("Press %s...\n", combo)
	select {
	case <-hk.Keydown():
		fmt.Println("  PASS: hotkey detected")
		// Wait for keyup to avoid triggering next step
		select {
		case <-hk.Keyup():
		case <-time.After(5 * time.Second):
		}
		// Reset terminal after hotkey - it may leave terminal in raw mode
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	case <-ctx.Done():
		return false
	}
}

func checkInjector() (*inject.Keyboard, bool) {
	fmt.Println()
	fmt.Println("[2/4] Keystroke output (uinput init)")

	kb, err := inject.New()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println("  Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
		return nil, false
	}
	fmt.Println("  PASS: virtual keyboard initialized")
	return kb, true
}

func checkContext(ctx context.Context) bool {
	fmt.Println()
	fmt.Println("[3/4] Application context")

	msg, err := appctx.Diagnose(ctx)
	if err != nil {
		// context-aware shortcuts are optional; everything else still works
		fmt.Printf("  WARN: %v\n", err)
		return true
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkPaste(kb *inject.Keyboard) bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard and paste")

	if clipboard.Unsupported() {
		fmt.Println("  FAIL: no clipboard utility found (install xclip, xsel or wl-clipboard)")
		return false
	}

	engine := grammar.New(keys.NewResolver(), kb)
	d := clipboard.NewDictator(clipboard.System{}, func() bool { return engine.Send("control v") }, 0)

	fmt.Println("Focus on a text editor window...")
	for i := 5; i > 0; i-- {
		fmt.Printf("  %d...\n", i)
		time.Sleep(1 * time.Second)
	}

	if err := d.Type("voxkey-doctor-test"); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	d.Flush()

	// Reset terminal and use fresh reader for confirmation
	resetTerminal()
	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Println()
	fmt.Print("Did the text \"voxkey-doctor-test\" appear? [y/n]: ")
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm != "y" && confirm != "yes" {
		fmt.Println("  FAIL: clipboard/paste not confirmed")
		return false
	}
	fmt.Println("  PASS: clipboard and paste verified by user")
	return true
}
