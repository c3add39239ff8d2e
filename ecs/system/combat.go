package system

import (
	"github.com/milk9111/arena/collision"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// CombatSystem resolves body contact between the player and alive enemies.
// Touching an enemy hurts the player; ramming one mid-dash hurts the enemy.
type CombatSystem struct {
	audio Audio
}

func NewCombatSystem(audio Audio) *CombatSystem { return &CombatSystem{audio: audio} }

func (s *CombatSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	pe, ok := playerEntity(w)
	if !ok || !isAlive(w, pe) {
		return
	}
	pp := position(w, pe)
	pr := radius(w, pe)
	player, _ := ecs.Get(w, pe, component.PlayerComponent.Kind())

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.StatsComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, stats *component.Stats, lc *component.Lifecycle) {
		if !lc.Active() || !isAlive(w, pe) {
			return
		}
		if !collision.Collides(pp, pr, position(w, e), stats.Radius) {
			return
		}

		if player != nil && player.Dashing() && player.DashDamage > 0 {
			if TakeDamage(w, e, player.DashDamage) {
				s.enemyHit(w, e, player.DashDamage)
			}
			return
		}

		if TakeDamage(w, pe, stats.Damage) {
			if s.audio != nil {
				s.audio.PlayHitSound()
			}
			remaining := 0
			if h, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok {
				remaining = h.Current
			}
			push(w, EventPlayerHit, pe, HitInfo{Damage: stats.Damage, Remaining: remaining})
		}
	})
}

func (s *CombatSystem) enemyHit(w *ecs.World, e ecs.Entity, damage int) {
	remaining := 0
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		remaining = h.Current
	}
	push(w, EventEnemyHit, e, HitInfo{Damage: damage, Remaining: remaining})
	if s.audio == nil {
		return
	}
	if remaining == 0 {
		s.audio.PlayExplosionSound()
		return
	}
	s.audio.PlayHitSound()
}
