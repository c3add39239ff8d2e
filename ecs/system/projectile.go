package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/projectile"
)

// ProjectileSystem steps the projectile simulator against the alive entities
// of the opposing side and applies the hits. Damage from several projectiles
// landing on one target in a frame is summed into a single TakeDamage call.
type ProjectileSystem struct {
	sim   *projectile.Simulator
	scene Scene
	audio Audio
}

func NewProjectileSystem(sim *projectile.Simulator, scene Scene, audio Audio) *ProjectileSystem {
	return &ProjectileSystem{sim: sim, scene: scene, audio: audio}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.sim == nil {
		return
	}
	bounds, _ := arenaBounds(w)

	res := s.sim.Step(dt, bounds, collectTargets(w))

	for _, p := range res.Spawned {
		attach(s.scene, p)
		if p.Visual == nil {
			p.Visual = p.ID
		}
	}

	var order []ecs.Entity
	damage := map[ecs.Entity]int{}
	for _, h := range res.Hits {
		e := ecs.EntityFromKey(h.Target)
		if _, seen := damage[e]; !seen {
			order = append(order, e)
		}
		damage[e] += h.Damage
	}
	for _, e := range order {
		s.applyHit(w, e, damage[e])
	}

	for _, p := range res.Expired {
		detach(s.scene, p.Visual)
	}
}

// Clear drops every projectile and detaches their visuals.
func (s *ProjectileSystem) Clear() {
	if s == nil || s.sim == nil {
		return
	}
	for _, p := range s.sim.Clear() {
		detach(s.scene, p.Visual)
	}
}

func (s *ProjectileSystem) applyHit(w *ecs.World, e ecs.Entity, amount int) {
	if !TakeDamage(w, e, amount) {
		return
	}
	if s.audio != nil {
		s.audio.PlayHitSound()
	}
	remaining := 0
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		remaining = h.Current
	}
	info := HitInfo{Damage: amount, Remaining: remaining}
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		push(w, EventPlayerHit, e, info)
		return
	}
	push(w, EventEnemyHit, e, info)
	if remaining == 0 && s.audio != nil {
		s.audio.PlayExplosionSound()
	}
}

// collectTargets lists, per projectile owner, the alive entities that owner's
// projectiles can hit.
func collectTargets(w *ecs.World) map[projectile.Owner][]projectile.Target {
	targets := map[projectile.Owner][]projectile.Target{}

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, t *component.Transform, lc *component.Lifecycle) {
		if !lc.Active() {
			return
		}
		targets[projectile.OwnerPlayer] = append(targets[projectile.OwnerPlayer], projectile.Target{
			Key:      e.Key(),
			Position: t.Position,
			Radius:   radius(w, e),
		})
	})

	if pe, ok := playerEntity(w); ok && isAlive(w, pe) {
		targets[projectile.OwnerEnemy] = append(targets[projectile.OwnerEnemy], projectile.Target{
			Key:      pe.Key(),
			Position: position(w, pe),
			Radius:   radius(w, pe),
		})
	}
	return targets
}
