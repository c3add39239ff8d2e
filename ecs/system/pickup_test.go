package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/prefabs"
)

var testPickups = prefabs.PickupSpec{Radius: 0.4, Lifetime: 0.5, HealAmount: 3, PowerWeight: 1}

func pickups(w *ecs.World) []ecs.Entity {
	return w.Query(component.PickupComponent.Kind())
}

func TestPickupDroppedOncePerDeath(t *testing.T) {
	w := newTestWorld(t)
	addPlayer(t, w, cp.Vector{X: 10, Y: 10})
	e := addEnemy(t, w, cp.Vector{X: 50, Y: 50}, 1)
	get(t, w, e, component.EnemyComponent.Kind()).DropChance = 1
	scene := &recordingScene{}
	sys := NewPickupSystem(testPickups, common.NewRand(3), scene, nil)

	sys.Update(w, 0.1)
	if len(pickups(w)) != 0 {
		t.Fatalf("alive enemy dropped a pickup")
	}

	if !TakeDamage(w, e, 1) {
		t.Fatalf("expected the hit to land")
	}
	sys.Update(w, 0.1)
	sys.Update(w, 0.1)

	got := pickups(w)
	if len(got) != 1 {
		t.Fatalf("pickups: got %d want 1", len(got))
	}
	p := get(t, w, got[0], component.PickupComponent.Kind())
	if p.Kind != component.PickupPower {
		t.Fatalf("kind: got %v", p.Kind)
	}
	if pos := get(t, w, got[0], component.TransformComponent.Kind()).Position; !approxVec(pos, cp.Vector{X: 50, Y: 50}) {
		t.Fatalf("drop position: %v", pos)
	}
	if len(scene.added) != 1 || scene.added[0] != got[0] {
		t.Fatalf("scene additions: %v", scene.added)
	}
}

func TestPickupDroppedForInstantDeath(t *testing.T) {
	w := newTestWorld(t)
	addPlayer(t, w, cp.Vector{X: 10, Y: 10})
	e := addEnemy(t, w, cp.Vector{X: 50, Y: 50}, 1)
	get(t, w, e, component.EnemyComponent.Kind()).DropChance = 1
	lc := get(t, w, e, component.LifecycleComponent.Kind())
	lc.Death = component.PhaseConfig{}
	lifecycle := NewLifecycleSystem(nil, nil, nil)
	sys := NewPickupSystem(testPickups, common.NewRand(3), nil, nil)

	if err := Kill(w, e); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	lifecycle.Update(w, 0.1)
	if lc.State != component.StateRemoved {
		t.Fatalf("zero-length death should finish in one tick, got %v", lc.State)
	}
	sys.Update(w, 0.1)
	sys.Update(w, 0.1)

	if got := len(pickups(w)); got != 1 {
		t.Fatalf("pickups: got %d want 1", got)
	}
}

func TestPickupNoDropWithoutReward(t *testing.T) {
	w := newTestWorld(t)
	e := addEnemy(t, w, cp.Vector{X: 50, Y: 50}, 1)
	get(t, w, e, component.EnemyComponent.Kind()).DropChance = 1
	sys := NewPickupSystem(testPickups, common.NewRand(3), nil, nil)

	ForceRemove(w, e)
	sys.Update(w, 0.1)
	if len(pickups(w)) != 0 {
		t.Fatalf("forced removal should not drop loot")
	}
}

func TestPickupCollect(t *testing.T) {
	cases := []struct {
		name   string
		kind   component.PickupKind
		health int
		level  int
		check  func(t *testing.T, w *ecs.World, pe ecs.Entity)
	}{
		{
			name: "heal", kind: component.PickupHeal, health: 5,
			check: func(t *testing.T, w *ecs.World, pe ecs.Entity) {
				if got := get(t, w, pe, component.HealthComponent.Kind()).Current; got != 8 {
					t.Fatalf("health: got %d want 8", got)
				}
			},
		},
		{
			name: "heal_capped", kind: component.PickupHeal, health: 9,
			check: func(t *testing.T, w *ecs.World, pe ecs.Entity) {
				if got := get(t, w, pe, component.HealthComponent.Kind()).Current; got != 10 {
					t.Fatalf("health: got %d want 10", got)
				}
			},
		},
		{
			name: "power", kind: component.PickupPower, health: 10, level: 1,
			check: func(t *testing.T, w *ecs.World, pe ecs.Entity) {
				if got := get(t, w, pe, component.WeaponComponent.Kind()).Level; got != 2 {
					t.Fatalf("level: got %d want 2", got)
				}
			},
		},
		{
			name: "power_capped", kind: component.PickupPower, health: 10, level: 4,
			check: func(t *testing.T, w *ecs.World, pe ecs.Entity) {
				if got := get(t, w, pe, component.WeaponComponent.Kind()).Level; got != 4 {
					t.Fatalf("level: got %d want 4", got)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			pe := addPlayer(t, w, cp.Vector{X: 20, Y: 20})
			get(t, w, pe, component.HealthComponent.Kind()).Current = tc.health
			must(t, ecs.Add(w, pe, component.WeaponComponent.Kind(), &component.Weapon{Level: tc.level, MaxLevel: 4}))
			p, err := entity.NewPickup(w, testPickups, tc.kind, cp.Vector{X: 20.5, Y: 20})
			must(t, err)

			audio := &countingAudio{}
			scene := &recordingScene{}
			NewPickupSystem(testPickups, common.NewRand(1), scene, audio).Update(w, 0.1)

			tc.check(t, w, pe)
			if ecs.IsAlive(w, p) {
				t.Fatalf("collected pickup still in the world")
			}
			if audio.pickups != 1 || w.Events().Count(EventPickupCollected) != 1 {
				t.Fatalf("collection not announced")
			}
			if len(scene.removed) != 1 || scene.removed[0] != p {
				t.Fatalf("scene removals: %v", scene.removed)
			}
		})
	}
}

func TestPickupExpires(t *testing.T) {
	w := newTestWorld(t)
	addPlayer(t, w, cp.Vector{X: 80, Y: 80})
	p, err := entity.NewPickup(w, testPickups, component.PickupHeal, cp.Vector{X: 20, Y: 20})
	must(t, err)
	sys := NewPickupSystem(testPickups, common.NewRand(1), nil, nil)

	for range 4 {
		sys.Update(w, 0.1)
	}
	if !ecs.IsAlive(w, p) {
		t.Fatalf("pickup expired early")
	}
	sys.Update(w, 0.1)
	if ecs.IsAlive(w, p) {
		t.Fatalf("pickup should expire after its lifetime")
	}
}

func TestPickupIgnoredByDeadPlayer(t *testing.T) {
	w := newTestWorld(t)
	pe := addPlayer(t, w, cp.Vector{X: 20, Y: 20})
	get(t, w, pe, component.LifecycleComponent.Kind()).State = component.StateDying
	p, err := entity.NewPickup(w, testPickups, component.PickupHeal, cp.Vector{X: 20, Y: 20})
	must(t, err)

	NewPickupSystem(testPickups, common.NewRand(1), nil, nil).Update(w, 0.1)
	if !ecs.IsAlive(w, p) {
		t.Fatalf("a dying player collected a pickup")
	}
}
