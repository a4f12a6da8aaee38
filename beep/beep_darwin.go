//go:build darwin

package beep

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"voxkey/log"
)

var (
	malgoCtx  *malgo.AllocatedContext
	device    *malgo.Device
	pcm       [len(tones)][]byte
	soundOnce sync.Once

	// read by the device callback
	current atomic.Pointer[[]byte]
	pos     atomic.Uint32
	playMu  sync.Mutex
)

func initSound() {
	for c := range pcm {
		pcm[c] = littleEndian(samples(Cue(c)))
	}
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		log.Warnf("beep: audio context: %v", err)
		return
	}
	if err := initDevice(); err != nil {
		log.Warnf("beep: playback device: %v", err)
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func initDevice() error {
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = 1
	cfg.SampleRate = sampleRate

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, cfg, malgo.DeviceCallbacks{Data: fill})
	return err
}

func littleEndian(mono []int16) []byte {
	out := make([]byte, 2*len(mono))
	for i, s := range mono {
		out[2*i] = byte(s)
		out[2*i+1] = byte(s >> 8)
	}
	return out
}

func fill(out, _ []byte, frames uint32) {
	clear(out)
	buf := current.Load()
	if buf == nil {
		return
	}
	p := pos.Load()
	remaining := uint32(len(*buf)) - p
	if remaining == 0 {
		current.Store(nil)
		return
	}
	n := min(frames*2, remaining)
	copy(out[:n], (*buf)[p:p+n])
	pos.Store(p + n)
}

func play(c Cue) {
	soundOnce.Do(initSound)
	go playBytes(pcm[c])
}

func playBytes(buf []byte) {
	playMu.Lock()
	defer playMu.Unlock()
	if malgoCtx == nil || device == nil || len(buf) == 0 {
		return
	}

	device.Stop()
	pos.Store(0)
	current.Store(&buf)

	if err := device.Start(); err != nil {
		// the device goes stale across sleep and wake
		device.Uninit()
		if err := initDevice(); err != nil {
			current.Store(nil)
			log.Warnf("beep: playback device: %v", err)
			return
		}
		if err := device.Start(); err != nil {
			current.Store(nil)
			log.Warnf("beep: start: %v", err)
		}
	}
}
