package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/arena/assets"
)

type effect int

const (
	effectShoot effect = iota
	effectHit
	effectExplosion
	effectOverheat
	effectBeam
	effectPickup
	effectCount
)

var clips = [effectCount]assets.Clip{
	effectShoot:     {Wave: assets.WaveSquare, Freq: 880, EndFreq: 440, Duration: 0.06, Volume: 0.15},
	effectHit:       {Wave: assets.WaveNoise, Freq: 200, Duration: 0.08, Volume: 0.3},
	effectExplosion: {Wave: assets.WaveNoise, Freq: 60, Duration: 0.45, Volume: 0.5},
	effectOverheat:  {Wave: assets.WaveSine, Freq: 320, EndFreq: 80, Duration: 0.4, Volume: 0.4},
	effectBeam:      {Wave: assets.WaveSine, Freq: 110, EndFreq: 220, Duration: 0.9, Volume: 0.35},
	effectPickup:    {Wave: assets.WaveSine, Freq: 660, EndFreq: 1320, Duration: 0.15, Volume: 0.3},
}

// soundBank plays one synthesized clip per effect. A retrigger restarts the
// clip instead of layering another copy.
type soundBank struct {
	players [effectCount]*audio.Player
}

func newSoundBank() *soundBank {
	s := &soundBank{}
	for i, c := range clips {
		s.players[i] = assets.NewPlayer(c)
	}
	return s
}

func (s *soundBank) play(e effect) {
	p := s.players[e]
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

func (s *soundBank) PlayShootSound()     { s.play(effectShoot) }
func (s *soundBank) PlayHitSound()       { s.play(effectHit) }
func (s *soundBank) PlayExplosionSound() { s.play(effectExplosion) }
func (s *soundBank) PlayOverheatSound()  { s.play(effectOverheat) }
func (s *soundBank) PlayBeamSound()      { s.play(effectBeam) }
func (s *soundBank) PlayPickupSound()    { s.play(effectPickup) }
