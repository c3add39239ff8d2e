// Package assets synthesizes the arena's sound effects at startup, so the
// binary carries no audio files.
package assets

import (
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/arena/common"
)

const SampleRate = 44100

const attack = 0.005

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// Clip describes one synthesized effect. The pitch sweeps linearly from Freq
// to EndFreq; a zero EndFreq holds the pitch.
type Clip struct {
	Wave     Wave
	Freq     float64
	EndFreq  float64
	Duration float64
	Volume   float64
}

// Synthesize renders c as 16-bit little-endian stereo PCM, the format audio
// players consume directly.
func Synthesize(c Clip) []byte {
	n := int(c.Duration * SampleRate)
	if n <= 0 {
		return nil
	}
	end := c.EndFreq
	if end == 0 {
		end = c.Freq
	}
	rng := rand.New(rand.NewSource(int64(c.Freq) + int64(n)))

	out := make([]byte, n*4)
	phase := 0.0
	for i := range n {
		t := float64(i) / SampleRate
		k := float64(i) / float64(n)
		phase += 2 * math.Pi * common.Lerp(c.Freq, end, k) / SampleRate

		var s float64
		switch c.Wave {
		case WaveSquare:
			s = 1
			if math.Sin(phase) < 0 {
				s = -1
			}
		case WaveNoise:
			s = rng.Float64()*2 - 1
		default:
			s = math.Sin(phase)
		}

		env := math.Min(1, t/attack) * (1 - k) * math.Exp(-4*k)
		v := int16(common.Clamp(s*env*c.Volume, -1, 1) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

// NewPlayer synthesizes c into a player that can be rewound and replayed.
func NewPlayer(c Clip) *audio.Player {
	return Context().NewPlayerFromBytes(Synthesize(c))
}
