//go:build linux

package chime

import (
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

type system struct {
	logger  hclog.Logger
	once    sync.Once
	samples map[Kind][]int16
}

func newSystem(logger hclog.Logger) Player {
	return &system{logger: logger}
}

func (s *system) init() {
	s.samples = make(map[Kind][]int16, len(chimes))
	for kind := range chimes {
		s.samples[kind] = stereo(samplesFor(kind))
	}
}

func (s *system) Play(kind Kind) {
	s.once.Do(s.init)
	samples := s.samples[kind]
	if len(samples) == 0 {
		return
	}
	go s.play(samples)
}

func (s *system) play(samples []int16) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("sanctuary"))
	if err != nil {
		s.logger.Debug("pulse connect failed", "error", err)
		return
	}
	defer c.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})
	stream, err := c.NewPlayback(reader,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm), uint32(proto.VolumeNorm)}
		}),
	)
	if err != nil {
		s.logger.Debug("pulse playback failed", "error", err)
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}
