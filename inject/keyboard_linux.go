//go:build linux

package inject

import (
	"fmt"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"voxkey/keys"
)

// Keyboard injects key events through a uinput virtual keyboard.
type Keyboard struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

func New() (*Keyboard, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("creating virtual keyboard (check /dev/uinput permissions): %w", err)
	}
	// Give compositor time to recognize the new input device
	time.Sleep(200 * time.Millisecond)
	return &Keyboard{kb: kb}, nil
}

func (k *Keyboard) Press(t keys.Token) error {
	return k.send(t, true)
}

func (k *Keyboard) Release(t keys.Token) error {
	return k.send(t, false)
}

func (k *Keyboard) send(t keys.Token, down bool) error {
	code, ok := keys.EvdevCode(t)
	if !ok {
		return fmt.Errorf("no key code for %s", t)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.kb.SetKeys(int(code))
	if down {
		return k.kb.Press()
	}
	return k.kb.Release()
}
