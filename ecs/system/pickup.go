package system

import (
	"log"

	"github.com/milk9111/arena/collision"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/prefabs"
)

// PickupSystem rolls drops for freshly killed enemies, ages pickups out and
// hands them to the player on contact.
type PickupSystem struct {
	spec  prefabs.PickupSpec
	rng   *common.Rand
	scene Scene
	audio Audio
}

func NewPickupSystem(spec prefabs.PickupSpec, rng *common.Rand, scene Scene, audio Audio) *PickupSystem {
	return &PickupSystem{spec: spec, rng: rng, scene: scene, audio: audio}
}

func (s *PickupSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	s.rollDrops(w)

	pe, hasPlayer := playerEntity(w)
	hasPlayer = hasPlayer && isAlive(w, pe)
	pp := position(w, pe)
	pr := radius(w, pe)

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		pickup.Remaining -= dt
		if pickup.Remaining <= common.TimeEpsilon {
			s.destroy(w, e)
			return
		}
		if !hasPlayer || !collision.Collides(pp, pr, t.Position, pickup.Radius) {
			return
		}
		s.collect(w, pe, pickup)
		s.destroy(w, e)
	})
}

func (s *PickupSystem) rollDrops(w *ecs.World) {
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, lc *component.Lifecycle) {
		// an instant death can reach Removed before this pass runs
		if lc.State < component.StateDying || lc.Forced || !lc.Rewarded || enemy.DropRolled {
			return
		}
		enemy.DropRolled = true
		if !s.rng.Chance(enemy.DropChance) {
			return
		}

		kind := component.PickupHeal
		if s.rng.Chance(s.spec.PowerWeight) {
			kind = component.PickupPower
		}
		p, err := entity.NewPickup(w, s.spec, kind, position(w, e))
		if err != nil {
			log.Printf("pickup: entity=%d drop failed: %v", e, err)
			return
		}
		attach(s.scene, p)
	})
}

func (s *PickupSystem) collect(w *ecs.World, pe ecs.Entity, pickup *component.Pickup) {
	switch pickup.Kind {
	case component.PickupPower:
		if wp, ok := ecs.Get(w, pe, component.WeaponComponent.Kind()); ok {
			wp.Level += pickup.Amount
			if wp.MaxLevel > 0 && wp.Level > wp.MaxLevel {
				wp.Level = wp.MaxLevel
			}
		}
	case component.PickupHeal:
		Heal(w, pe, pickup.Amount)
	}
	if s.audio != nil {
		s.audio.PlayPickupSound()
	}
	push(w, EventPickupCollected, pe, PickupInfo{Kind: pickup.Kind, Amount: pickup.Amount})
}

func (s *PickupSystem) destroy(w *ecs.World, e ecs.Entity) {
	detach(s.scene, e)
	ecs.DestroyEntity(w, e)
}
