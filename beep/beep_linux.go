//go:build linux

package beep

import (
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"

	"voxkey/log"
)

var (
	stereo    [len(tones)][]int16
	soundOnce sync.Once
)

func initSound() {
	for c := range stereo {
		stereo[c] = interleave(samples(Cue(c)))
	}
}

// interleave duplicates each sample into left and right, the default sink
// layout.
func interleave(mono []int16) []int16 {
	out := make([]int16, 2*len(mono))
	for i, s := range mono {
		out[2*i] = s
		out[2*i+1] = s
	}
	return out
}

func play(c Cue) {
	soundOnce.Do(initSound)
	go playSamples(stereo[c])
}

func playSamples(buf []int16) {
	if len(buf) == 0 {
		return
	}
	client, err := pulse.NewClient()
	if err != nil {
		log.Warnf("beep: pulse: %v", err)
		return
	}
	defer client.Close()

	pos := 0
	reader := pulse.Int16Reader(func(out []int16) (int, error) {
		if pos >= len(buf) {
			return 0, pulse.EndOfData
		}
		n := copy(out, buf[pos:])
		pos += n
		return n, nil
	})
	stream, err := client.NewPlayback(reader,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm), uint32(proto.VolumeNorm)}
		}),
	)
	if err != nil {
		log.Warnf("beep: playback: %v", err)
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}
