// Package projectile owns every in-flight projectile of a simulation run,
// player and enemy alike. Controllers only enqueue; the simulator alone
// advances, expires and compacts the live set.
package projectile

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/collision"
	"github.com/milk9111/arena/common"
)

// Owner tags who fired a projectile and therefore what it may hit.
type Owner int

const (
	OwnerPlayer Owner = iota + 1
	OwnerEnemy
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ID identifies a projectile for the lifetime of a Simulator.
type ID uint64

// ExpiryReason records why a projectile died.
type ExpiryReason int

const (
	ExpiredNone ExpiryReason = iota
	ExpiredLifetime
	ExpiredOutOfBounds
	ExpiredHit
	ExpiredCleared
)

// Projectile is a straight-line ballistic mover.
type Projectile struct {
	ID        ID
	Position  cp.Vector
	Velocity  cp.Vector
	Damage    int
	Radius    float64
	Remaining float64
	Owner     Owner
	// Visual is an opaque handle owned by the rendering side; the simulator
	// never looks inside it.
	Visual any
	Dead   bool
	Reason ExpiryReason
}

// Target is a read-only snapshot of something a projectile may hit.
type Target struct {
	Key      uint64
	Position cp.Vector
	Radius   float64
}

// Hit reports one projectile striking one target.
type Hit struct {
	Projectile ID
	Target     uint64
	Damage     int
	Owner      Owner
	Position   cp.Vector
	Visual     any
}

// StepResult is everything that happened to projectiles in one Step.
type StepResult struct {
	Spawned []*Projectile
	Hits    []Hit
	Expired []Projectile
}

// Simulator advances projectiles.
type Simulator struct {
	// Margin is how far past the world bounds a projectile may travel before
	// it is culled.
	Margin float64

	nextID  ID
	live    []*Projectile
	pending []*Projectile
}

// NewSimulator creates an empty simulator.
func NewSimulator(margin float64) *Simulator {
	if margin < 0 {
		margin = 0
	}
	return &Simulator{Margin: margin}
}

// Enqueue schedules p to join the live set at the start of the next Step and
// returns the ID assigned to it.
func (s *Simulator) Enqueue(p Projectile) ID {
	if s == nil {
		return 0
	}
	s.nextID++
	p.ID = s.nextID
	p.Dead = false
	p.Reason = ExpiredNone
	s.pending = append(s.pending, &p)
	return p.ID
}

// Live returns the current live projectiles. Callers must not mutate them.
func (s *Simulator) Live() []*Projectile {
	if s == nil {
		return nil
	}
	return s.live
}

// Pending returns the number of enqueued projectiles not yet admitted.
func (s *Simulator) Pending() int {
	if s == nil {
		return 0
	}
	return len(s.pending)
}

// Len returns the number of live projectiles.
func (s *Simulator) Len() int {
	if s == nil {
		return 0
	}
	return len(s.live)
}

// Clear drops every live and pending projectile and reports the dropped live
// ones so their visuals can be detached.
func (s *Simulator) Clear() []Projectile {
	if s == nil {
		return nil
	}
	out := make([]Projectile, 0, len(s.live)+len(s.pending))
	for _, p := range s.live {
		p.Dead = true
		p.Reason = ExpiredCleared
		out = append(out, *p)
	}
	s.live = s.live[:0]
	s.pending = s.pending[:0]
	return out
}

// Step admits pending projectiles, moves everything by dt and resolves
// expiry in order: lifetime, bounds, then collision against the targets valid
// for the projectile's owner. Several projectiles may hit the same target in
// one step; each hit is reported separately.
func (s *Simulator) Step(dt float64, bounds cp.BB, targets map[Owner][]Target) StepResult {
	var res StepResult
	if s == nil {
		return res
	}

	if len(s.pending) > 0 {
		res.Spawned = append(res.Spawned, s.pending...)
		s.live = append(s.live, s.pending...)
		s.pending = s.pending[:0]
	}

	for _, p := range s.live {
		if p.Dead {
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Mult(dt))
		p.Remaining -= dt

		if p.Remaining <= common.TimeEpsilon {
			p.Remaining = 0
			p.Dead = true
			p.Reason = ExpiredLifetime
			continue
		}

		if !common.InBounds(p.Position, bounds, s.Margin) {
			p.Dead = true
			p.Reason = ExpiredOutOfBounds
			continue
		}

		for _, t := range targets[p.Owner] {
			if !collision.Collides(p.Position, p.Radius, t.Position, t.Radius) {
				continue
			}
			p.Dead = true
			p.Reason = ExpiredHit
			res.Hits = append(res.Hits, Hit{
				Projectile: p.ID,
				Target:     t.Key,
				Damage:     p.Damage,
				Owner:      p.Owner,
				Position:   p.Position,
				Visual:     p.Visual,
			})
			break
		}
	}

	kept := s.live[:0]
	for _, p := range s.live {
		if p.Dead {
			res.Expired = append(res.Expired, *p)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept

	return res
}
