package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/prefabs"
)

const (
	spawnRimInset    = 1.0
	spawnRimAttempts = 8
)

// WaveSystem starts the next wave once the arena is clear and the wave's
// delay has passed. After the last wave the table repeats with tougher
// enemies.
type WaveSystem struct {
	balance *prefabs.Balance
	rng     *common.Rand
	scene   Scene

	next   int
	cycle  int
	number int
	timer  float64
}

// NewWaveSystem starts at wave start (1-based); values below 1 start at the
// first wave.
func NewWaveSystem(balance *prefabs.Balance, rng *common.Rand, scene Scene, start int) *WaveSystem {
	s := &WaveSystem{balance: balance, rng: rng, scene: scene}
	if n := s.waveCount(); n > 0 && start > 1 {
		s.next = (start - 1) % n
		s.cycle = (start - 1) / n
		s.number = start - 1
	}
	return s
}

// Wave returns the number of the last started wave, zero before the first.
func (s *WaveSystem) Wave() int { return s.number }

// Cycle returns how many times the wave table has been completed.
func (s *WaveSystem) Cycle() int { return s.cycle }

func (s *WaveSystem) waveCount() int {
	if s.balance == nil {
		return 0
	}
	return len(s.balance.Waves)
}

func (s *WaveSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.waveCount() == 0 {
		return
	}
	if CountEnemies(w) > 0 {
		s.timer = 0
		return
	}
	if _, ok := playerEntity(w); !ok {
		return
	}

	wave := s.balance.Waves[s.next]
	s.timer += dt
	if !common.Reached(s.timer, wave.Delay) {
		return
	}
	s.timer = 0
	s.number++

	opts := entity.EnemyOptions{
		Wave:        s.number,
		HealthScale: 1 + s.balance.Escalation*float64(s.cycle),
	}
	for _, group := range wave.Spawns {
		for range group.Count {
			e, err := entity.NewEnemy(w, s.balance, group.Archetype, s.spawnPoint(w), opts)
			if err != nil {
				log.Printf("wave: %d: %v", s.number, err)
				continue
			}
			attach(s.scene, e)
		}
	}
	push(w, EventWaveStarted, 0, WaveInfo{Number: s.number, Cycle: s.cycle})

	s.next++
	if s.next >= len(s.balance.Waves) {
		s.next = 0
		s.cycle++
	}
}

// spawnPoint picks a point on the arena rim at least MinSpawnDistance from the
// player, falling back to the corner farthest from the player.
func (s *WaveSystem) spawnPoint(w *ecs.World) cp.Vector {
	bb, ok := arenaBounds(w)
	if !ok {
		return cp.Vector{}
	}
	inner := cp.BB{L: bb.L + spawnRimInset, B: bb.B + spawnRimInset, R: bb.R - spawnRimInset, T: bb.T - spawnRimInset}
	player, hasPlayer := playerTarget(w)
	minDist := s.balance.Arena.MinSpawnDistance

	for range spawnRimAttempts {
		p := rimPoint(s.rng, inner)
		if !hasPlayer || p.Distance(player) >= minDist {
			return p
		}
	}

	corners := []cp.Vector{{X: inner.L, Y: inner.B}, {X: inner.R, Y: inner.B}, {X: inner.R, Y: inner.T}, {X: inner.L, Y: inner.T}}
	best := corners[0]
	for _, c := range corners[1:] {
		if c.DistanceSq(player) > best.DistanceSq(player) {
			best = c
		}
	}
	return best
}

// rimPoint returns a uniformly random point on the perimeter of bb.
func rimPoint(rng *common.Rand, bb cp.BB) cp.Vector {
	w := bb.R - bb.L
	h := bb.T - bb.B
	d := rng.Range(0, 2*(w+h))
	switch {
	case d < w:
		return cp.Vector{X: bb.L + d, Y: bb.B}
	case d < w+h:
		return cp.Vector{X: bb.R, Y: bb.B + d - w}
	case d < 2*w+h:
		return cp.Vector{X: bb.R - (d - w - h), Y: bb.T}
	default:
		return cp.Vector{X: bb.L, Y: bb.T - (d - 2*w - h)}
	}
}
