package projectile

import (
	"testing"

	"github.com/jakecoffman/cp"
)

var arena = cp.BB{L: -10, B: -10, R: 10, T: 10}

func TestLifetimeExpiry(t *testing.T) {
	cases := []struct {
		name     string
		lifetime float64
		dt       float64
		steps    int // step on which the projectile must die
	}{
		{"tenths", 1.0, 0.1, 10},
		{"sixtieth", 0.5, 1.0 / 60.0, 30},
		{"single_big_step", 0.2, 1.0, 1},
		{"uneven", 0.3, 0.25, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSimulator(1)
			s.Enqueue(Projectile{Remaining: c.lifetime, Radius: 0.1, Owner: OwnerEnemy})
			for step := 1; step <= c.steps; step++ {
				res := s.Step(c.dt, arena, nil)
				dead := len(res.Expired) == 1
				if step < c.steps && dead {
					t.Fatalf("died early on step %d", step)
				}
				if step == c.steps {
					if !dead {
						t.Fatalf("still alive on step %d", step)
					}
					if res.Expired[0].Reason != ExpiredLifetime {
						t.Fatalf("reason = %v, want lifetime", res.Expired[0].Reason)
					}
				}
			}
			if s.Len() != 0 {
				t.Fatalf("expected empty live set, got %d", s.Len())
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	s := NewSimulator(2)
	s.Enqueue(Projectile{Position: cp.Vector{X: 9}, Velocity: cp.Vector{X: 1}, Remaining: 100, Owner: OwnerPlayer})

	// 9 -> 10 -> 11 -> 12 stays within bounds+margin, 13 leaves.
	for i := 0; i < 3; i++ {
		if res := s.Step(1, arena, nil); len(res.Expired) != 0 {
			t.Fatalf("expired early at step %d", i+1)
		}
	}
	res := s.Step(1, arena, nil)
	if len(res.Expired) != 1 || res.Expired[0].Reason != ExpiredOutOfBounds {
		t.Fatalf("expected out of bounds expiry, got %+v", res.Expired)
	}
}

func TestLifetimeCheckedBeforeBounds(t *testing.T) {
	s := NewSimulator(0)
	s.Enqueue(Projectile{Position: cp.Vector{X: 9.5}, Velocity: cp.Vector{X: 10}, Remaining: 0.1, Owner: OwnerPlayer})
	res := s.Step(0.1, arena, nil)
	if len(res.Expired) != 1 || res.Expired[0].Reason != ExpiredLifetime {
		t.Fatalf("expected lifetime to win, got %+v", res.Expired)
	}
}

func TestHitsRespectOwner(t *testing.T) {
	s := NewSimulator(1)
	s.Enqueue(Projectile{Damage: 3, Radius: 0.2, Remaining: 5, Owner: OwnerPlayer})
	s.Enqueue(Projectile{Damage: 4, Radius: 0.2, Remaining: 5, Owner: OwnerPlayer})
	s.Enqueue(Projectile{Damage: 9, Radius: 0.2, Remaining: 5, Owner: OwnerEnemy})

	targets := map[Owner][]Target{
		OwnerPlayer: {{Key: 7, Position: cp.Vector{}, Radius: 0.5}},
		OwnerEnemy:  {{Key: 1, Position: cp.Vector{X: 5}, Radius: 0.5}},
	}
	res := s.Step(0.016, arena, targets)

	if len(res.Hits) != 2 {
		t.Fatalf("expected two hits, got %d", len(res.Hits))
	}
	total := 0
	for _, h := range res.Hits {
		if h.Target != 7 {
			t.Fatalf("hit wrong target %d", h.Target)
		}
		total += h.Damage
	}
	if total != 7 {
		t.Fatalf("summed damage = %d, want 7", total)
	}
	if s.Len() != 1 {
		t.Fatalf("enemy projectile should still be live, len=%d", s.Len())
	}
}

func TestEnqueueAssignsIDsAndVisualPassesThrough(t *testing.T) {
	s := NewSimulator(1)
	handle := &struct{ name string }{"spark"}
	a := s.Enqueue(Projectile{Remaining: 1, Visual: handle})
	b := s.Enqueue(Projectile{Remaining: 1})
	if a == b || a == 0 {
		t.Fatalf("ids not unique: %d %d", a, b)
	}
	res := s.Step(0.01, arena, nil)
	if len(res.Spawned) != 2 {
		t.Fatalf("expected two spawned, got %d", len(res.Spawned))
	}
	if res.Spawned[0].Visual != handle {
		t.Fatalf("visual handle changed")
	}
}

func TestClear(t *testing.T) {
	s := NewSimulator(1)
	s.Enqueue(Projectile{Remaining: 1})
	s.Step(0.01, arena, nil)
	s.Enqueue(Projectile{Remaining: 1})

	dropped := s.Clear()
	if len(dropped) != 1 || dropped[0].Reason != ExpiredCleared {
		t.Fatalf("expected one cleared projectile, got %+v", dropped)
	}
	if s.Len() != 0 || s.Pending() != 0 {
		t.Fatalf("expected empty simulator")
	}
}
