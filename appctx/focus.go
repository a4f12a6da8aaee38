package appctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var ErrNoWindow = errors.New("no active window")

// Focus reports the class name of the focused window.
type Focus interface {
	ForegroundApp(ctx context.Context) (string, error)
}

// FocusFunc adapts a function to Focus.
type FocusFunc func(ctx context.Context) (string, error)

func (f FocusFunc) ForegroundApp(ctx context.Context) (string, error) { return f(ctx) }

// Xdotool asks xdotool (X11) for the active window's class.
type Xdotool struct {
	// Timeout bounds each xdotool call. Zero means one second.
	Timeout time.Duration
}

func (p Xdotool) ForegroundApp(ctx context.Context) (string, error) {
	id, err := p.run(ctx, "getactivewindow")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNoWindow
	}
	class, err := p.run(ctx, "getwindowclassname", id)
	if err != nil {
		return "", err
	}
	return class, nil
}

func (p Xdotool) run(ctx context.Context, args ...string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "xdotool", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("xdotool %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("xdotool %s: %w", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Diagnose checks that xdotool is installed and can see a window.
func Diagnose(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("xdotool"); err != nil {
		return "", fmt.Errorf("xdotool not found (install xdotool for context-aware shortcuts)")
	}
	class, err := Xdotool{}.ForegroundApp(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("focused window %q -> %s", class, Classify(class)), nil
}
