package chime

import (
	"encoding/binary"
	"math"

	hclog "github.com/hashicorp/go-hclog"
)

const sampleRate = 44100

// Kind selects which chime to play.
type Kind int

const (
	// FocusDone plays when a work or study phase ends.
	FocusDone Kind = iota
	// BreakDone plays when a break ends.
	BreakDone
)

// Player plays short completion chimes. Play never blocks and never fails;
// audio errors are logged.
type Player interface {
	Play(kind Kind)
}

// Noop is a Player that stays silent.
type Noop struct{}

// Play does nothing.
func (Noop) Play(Kind) {}

// New returns the platform chime player, or Noop when disabled.
func New(enabled bool, logger hclog.Logger) Player {
	if !enabled {
		return Noop{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return newSystem(logger.Named("chime"))
}

type voice struct {
	freq     float64
	duration float64
	volume   float64
	decay    float64
}

var chimes = map[Kind]voice{
	FocusDone: {freq: 1200, duration: 0.4, volume: 0.5, decay: 8},
	BreakDone: {freq: 900, duration: 0.4, volume: 0.5, decay: 6},
}

func samplesFor(kind Kind) []int16 {
	s, ok := chimes[kind]
	if !ok {
		return nil
	}
	return tone(sampleRate, s.freq, s.duration, s.volume, s.decay)
}

// tone renders a mono sine with an exponential decay envelope.
func tone(rate int, freq, duration, volume, decay float64) []int16 {
	n := int(float64(rate) * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

// stereo interleaves mono samples into L/R pairs.
func stereo(mono []int16) []int16 {
	out := make([]int16, len(mono)*2)
	for i, s := range mono {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}

// littleEndian encodes samples as signed 16-bit little-endian PCM.
func littleEndian(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
