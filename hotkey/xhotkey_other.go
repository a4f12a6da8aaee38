//go:build !linux

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"voxkey/keys"
)

var namedKeys = map[keys.Named]hotkey.Key{
	keys.Space:  hotkey.KeySpace,
	keys.Enter:  hotkey.KeyReturn,
	keys.Escape: hotkey.KeyEscape,
	keys.Tab:    hotkey.KeyTab,
	keys.Left:   hotkey.KeyLeft,
	keys.Right:  hotkey.KeyRight,
	keys.Up:     hotkey.KeyUp,
	keys.Down:   hotkey.KeyDown,
	keys.F1:     hotkey.KeyF1,
	keys.F2:     hotkey.KeyF2,
	keys.F3:     hotkey.KeyF3,
	keys.F4:     hotkey.KeyF4,
	keys.F5:     hotkey.KeyF5,
	keys.F6:     hotkey.KeyF6,
	keys.F7:     hotkey.KeyF7,
	keys.F8:     hotkey.KeyF8,
	keys.F9:     hotkey.KeyF9,
	keys.F10:    hotkey.KeyF10,
	keys.F11:    hotkey.KeyF11,
	keys.F12:    hotkey.KeyF12,
}

var letterKeys = [...]hotkey.Key{
	hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE, hotkey.KeyF,
	hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ, hotkey.KeyK, hotkey.KeyL,
	hotkey.KeyM, hotkey.KeyN, hotkey.KeyO, hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR,
	hotkey.KeyS, hotkey.KeyT, hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX,
	hotkey.KeyY, hotkey.KeyZ,
}

var digitKeys = [...]hotkey.Key{
	hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
	hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
}

func platformKey(t keys.Token) (hotkey.Key, bool) {
	if n, ok := t.Named(); ok {
		k, ok := namedKeys[n]
		return k, ok
	}
	r, _ := t.Rune()
	switch {
	case r >= 'a' && r <= 'z':
		return letterKeys[r-'a'], true
	case r >= '0' && r <= '9':
		return digitKeys[r-'0'], true
	}
	return 0, false
}

type xHotkey struct {
	hk      *hotkey.Hotkey
	combo   Combo
	keydown chan struct{}
	keyup   chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// New creates a hotkey for c using golang.design/x/hotkey (Cocoa/Win32).
func New(c Combo) (Hotkey, error) {
	var mods []hotkey.Modifier
	for _, m := range c.Mods {
		pm, ok := modMap[m]
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", c, ErrUnknownKey, m)
		}
		mods = append(mods, pm)
	}
	key, ok := platformKey(c.Key)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", c, ErrUnknownKey, c.Key)
	}
	return &xHotkey{
		hk:      hotkey.New(mods, key),
		combo:   c,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}, nil
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", h.combo, err)
	}
	go h.forward(h.hk.Keydown(), h.keydown)
	go h.forward(h.hk.Keyup(), h.keyup)
	return nil
}

func (h *xHotkey) forward(src <-chan hotkey.Event, dst chan struct{}) {
	for {
		select {
		case <-h.stop:
			return
		case <-src:
			select {
			case dst <- struct{}{}:
			case <-h.stop:
				return
			}
		}
	}
}

func (h *xHotkey) Unregister() {
	h.once.Do(func() {
		close(h.stop)
		h.hk.Unregister()
	})
}

func (h *xHotkey) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *xHotkey) Keyup() <-chan struct{} {
	return h.keyup
}

// Diagnose reports hotkey availability.
func Diagnose() (string, error) {
	return "hotkey support available (golang.design/x/hotkey)", nil
}
