package common

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
)

// Rand is the seedable random source shared by one simulation run. Every
// "random" archetype decision draws from it so a run can be replayed from its
// seed.
type Rand struct {
	seed int64
	rng  *rand.Rand
}

// NewRand creates a source for seed. A zero seed picks one from the clock.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed this source was created with.
func (r *Rand) Seed() int64 {
	if r == nil {
		return 0
	}
	return r.seed
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	if r == nil {
		return 0
	}
	return r.rng.Float64()
}

// Range returns a value in [lo,hi). If hi <= lo it returns lo.
func (r *Rand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

func (r *Rand) Intn(n int) int {
	if r == nil || n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Angle returns a random angle in [0, 2π).
func (r *Rand) Angle() float64 {
	return r.Float64() * 2 * math.Pi
}

// PointInBounds returns a random point inside bb shrunk by inset.
func (r *Rand) PointInBounds(bb cp.BB, inset float64) cp.Vector {
	return cp.Vector{
		X: r.Range(bb.L+inset, bb.R-inset),
		Y: r.Range(bb.B+inset, bb.T-inset),
	}
}

// PointNear returns a random point within radius of center.
func (r *Rand) PointNear(center cp.Vector, radius float64) cp.Vector {
	return center.Add(Heading(r.Angle(), radius*math.Sqrt(r.Float64())))
}
