//go:build !linux

package chime

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	hclog "github.com/hashicorp/go-hclog"
)

type system struct {
	logger  hclog.Logger
	once    sync.Once
	ctx     *oto.Context
	buffers map[Kind][]byte
}

func newSystem(logger hclog.Logger) Player {
	return &system{logger: logger}
}

func (s *system) init() {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		s.logger.Debug("oto init failed", "error", err)
		return
	}
	<-ready
	s.ctx = ctx

	s.buffers = make(map[Kind][]byte, len(chimes))
	for kind := range chimes {
		s.buffers[kind] = littleEndian(samplesFor(kind))
	}
}

func (s *system) Play(kind Kind) {
	s.once.Do(s.init)
	if s.ctx == nil || len(s.buffers[kind]) == 0 {
		return
	}
	player := s.ctx.NewPlayer(bytes.NewReader(s.buffers[kind]))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.logger.Debug("close player failed", "error", err)
		}
	}()
}
