package chime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTone(t *testing.T) {
	samples := tone(1000, 100, 0.5, 0.5, 4)
	require.Len(t, samples, 500)
	require.Zero(t, samples[0], "sine starts at zero")

	var peakEarly, peakLate int16
	for i, s := range samples {
		if s < 0 {
			s = -s
		}
		require.LessOrEqual(t, int(s), 32767/2)
		if i < 50 && s > peakEarly {
			peakEarly = s
		}
		if i >= 450 && s > peakLate {
			peakLate = s
		}
	}
	require.Greater(t, peakEarly, peakLate, "envelope decays")
}

func TestStereo(t *testing.T) {
	require.Equal(t, []int16{1, 1, -2, -2}, stereo([]int16{1, -2}))
}

func TestLittleEndian(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x02, 0xff, 0xff}, littleEndian([]int16{0x0201, -1}))
}

func TestSamplesFor(t *testing.T) {
	require.Len(t, samplesFor(FocusDone), int(float64(sampleRate)*chimes[FocusDone].duration))
	require.Nil(t, samplesFor(Kind(99)))
}

func TestNew_Disabled(t *testing.T) {
	p := New(false, nil)
	require.IsType(t, Noop{}, p)
	p.Play(FocusDone)
}
