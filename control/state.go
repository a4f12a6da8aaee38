// Package control tracks the voice and reference-panel channels and tells
// observers when either one changes.
package control

import (
	"fmt"
	"strings"
)

// VoiceState is the voice-capture channel.
type VoiceState int

const (
	Paused VoiceState = iota
	Active
)

func (v VoiceState) String() string {
	if v == Active {
		return "active"
	}
	return "paused"
}

// PanelState is the reference-panel channel.
type PanelState int

const (
	Visible PanelState = iota
	Hidden
)

func (p PanelState) String() string {
	if p == Hidden {
		return "hidden"
	}
	return "visible"
}

// Mode is the combination of both channels. It is never stored; see
// DeriveMode.
type Mode int

const (
	BothActive Mode = iota
	VoiceOnly
	ShortcutsOnly
	BothInactive
)

var modeNames = [...]string{
	BothActive:    "both_active",
	VoiceOnly:     "voice_only",
	ShortcutsOnly: "shortcuts_only",
	BothInactive:  "both_inactive",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// DeriveMode is the only place a Mode is computed.
func DeriveMode(v VoiceState, p PanelState) Mode {
	switch {
	case v == Active && p == Visible:
		return BothActive
	case v == Active:
		return VoiceOnly
	case p == Visible:
		return ShortcutsOnly
	}
	return BothInactive
}

// States is the inverse of DeriveMode.
func (m Mode) States() (VoiceState, PanelState, bool) {
	switch m {
	case BothActive:
		return Active, Visible, true
	case VoiceOnly:
		return Active, Hidden, true
	case ShortcutsOnly:
		return Paused, Visible, true
	case BothInactive:
		return Paused, Hidden, true
	}
	return Paused, Hidden, false
}

// ParseMode accepts the String form or a short alias: both, voice,
// shortcuts, none.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "both_active":
		return BothActive, nil
	case "voice", "voice_only":
		return VoiceOnly, nil
	case "shortcuts", "shortcuts_only":
		return ShortcutsOnly, nil
	case "none", "both_inactive":
		return BothInactive, nil
	}
	return 0, fmt.Errorf("unknown mode %q (use both, voice, shortcuts or none)", s)
}
