// Package beep plays short audible cues: a tick when voice capture starts
// or stops and a double beep when an utterance could not be carried out.
package beep

import (
	"math"
	"sync/atomic"

	"voxkey/control"
)

type Cue int

const (
	Start Cue = iota
	Stop
	Fail
)

func (c Cue) String() string {
	switch c {
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Fail:
		return "fail"
	}
	return "unknown"
}

const sampleRate = 44100

type tone struct {
	freq     float64
	volume   float64
	decay    float64
	duration float64 // seconds per beep
	gap      float64 // seconds of silence between two beeps; 0 means one beep
}

var tones = [...]tone{
	Start: {freq: 1200, volume: 0.5, decay: 60, duration: 0.2},
	Stop:  {freq: 900, volume: 0.5, decay: 40, duration: 0.2},
	Fail:  {freq: 350, volume: 0.6, decay: 30, duration: 0.08, gap: 0.05},
}

var disabled atomic.Bool

// Disable silences every later Play. Test mode calls it.
func Disable() { disabled.Store(true) }

// Play starts c in the background and returns at once. Playback errors are
// logged by the platform backend and otherwise ignored.
func Play(c Cue) {
	if disabled.Load() || c < 0 || int(c) >= len(tones) {
		return
	}
	play(c)
}

// samples renders c as mono signed 16-bit PCM.
func samples(c Cue) []int16 {
	t := tones[c]
	one := tick(t)
	if t.gap == 0 {
		return one
	}
	gap := make([]int16, int(sampleRate*t.gap))
	out := make([]int16, 0, 2*len(one)+len(gap))
	out = append(out, one...)
	out = append(out, gap...)
	return append(out, one...)
}

func tick(t tone) []int16 {
	n := int(sampleRate * t.duration)
	out := make([]int16, n)
	for i := range out {
		x := float64(i) / sampleRate
		envelope := math.Exp(-x * t.decay)
		out[i] = int16(math.Sin(2*math.Pi*t.freq*x) * 32767 * t.volume * envelope)
	}
	return out
}

// VoiceObserver plays Start when voice resumes and Stop when it pauses. The
// value delivered on registration is not a change and stays silent.
func VoiceObserver(play func(Cue)) *control.Observer[control.VoiceState] {
	var primed atomic.Bool
	return control.NewObserver("beep", func(v control.VoiceState) {
		if !primed.Swap(true) {
			return
		}
		if v == control.Active {
			play(Start)
		} else {
			play(Stop)
		}
	})
}
