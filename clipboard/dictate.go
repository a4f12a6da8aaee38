package clipboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"voxkey/log"
)

var ErrPaste = errors.New("paste keystroke failed")

// DefaultRestoreDelay leaves the target application time to read the
// clipboard before the previous content goes back.
const DefaultRestoreDelay = 600 * time.Millisecond

// Dictator types text by copying it and sending the paste keystroke.
type Dictator struct {
	board        Board
	paste        func() bool
	restoreDelay time.Duration

	mu      sync.Mutex
	pending *time.Timer
	gen     uint64
	saved   string
	hasSave bool
}

// NewDictator returns a Dictator that uses paste to send the paste
// keystroke. A zero restoreDelay means DefaultRestoreDelay.
func NewDictator(board Board, paste func() bool, restoreDelay time.Duration) *Dictator {
	if restoreDelay <= 0 {
		restoreDelay = DefaultRestoreDelay
	}
	return &Dictator{board: board, paste: paste, restoreDelay: restoreDelay}
}

// Type inserts text into the focused window. The clipboard content from
// before the first of a burst of calls is restored once the burst is over.
func (d *Dictator) Type(text string) error {
	if text == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	} else {
		prev, err := d.board.Read()
		d.saved, d.hasSave = prev, err == nil && prev != ""
	}

	if err := d.board.Copy(text); err != nil {
		d.restoreLocked()
		return fmt.Errorf("copy: %w", err)
	}
	if !d.paste() {
		d.restoreLocked()
		return ErrPaste
	}
	log.Command("dictation", fmt.Sprintf("%d chars", len(text)))

	if d.hasSave {
		d.gen++
		gen := d.gen
		d.pending = time.AfterFunc(d.restoreDelay, func() { d.restore(gen) })
	}
	return nil
}

// restore is a timer callback. A timer superseded by a later Type finds a
// newer generation and does nothing.
func (d *Dictator) restore(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	d.restoreLocked()
}

func (d *Dictator) restoreLocked() {
	d.pending = nil
	if !d.hasSave {
		return
	}
	if err := d.board.Copy(d.saved); err != nil {
		log.Warnf("clipboard restore: %v", err)
	}
	d.saved, d.hasSave = "", false
}

// Flush restores the saved clipboard now if a restore is pending.
func (d *Dictator) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.restoreLocked()
	}
}
