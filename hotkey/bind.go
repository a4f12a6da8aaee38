package hotkey

import (
	"context"

	"voxkey/control"
	"voxkey/log"
)

// Binder turns hotkey activity into Controller transitions.
type Binder struct {
	ctl *control.Controller
}

func NewBinder(ctl *control.Controller) *Binder {
	return &Binder{ctl: ctl}
}

// RunVoice handles tap and hold events for the voice key until ctx is done.
// A tap toggles; a hold resumes and the matching release pauses again,
// unless voice was already active when the hold began.
func (b *Binder) RunVoice(ctx context.Context, hy *Hybrid) {
	pauseOnRelease := false
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-hy.Events():
			switch e {
			case Tap:
				log.Infof("hotkey: voice tap -> %s", b.ctl.ToggleVoice())
			case HoldStart:
				pauseOnRelease = b.ctl.Voice() != control.Active
				b.ctl.Resume()
				log.Info("hotkey: voice hold")
			case HoldEnd:
				if pauseOnRelease {
					b.ctl.Pause()
				}
				pauseOnRelease = false
				log.Info("hotkey: voice release")
			}
		}
	}
}

// RunPress calls fn on every press of hk until ctx is done.
func (b *Binder) RunPress(ctx context.Context, name string, hk Hotkey, fn func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
			log.Infof("hotkey: %s", name)
			fn()
		}
	}
}

// Drain discards release events so a backend with a bounded keyup buffer
// never blocks. Use it for keys driven by RunPress.
func Drain(ctx context.Context, hk Hotkey) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keyup():
		}
	}
}
