package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// LifecycleSystem advances spawn and death transitions and post-hit
// invulnerability. While an entity transitions, the hooks, the archetype's
// transition tick and any death script are its only drivers.
type LifecycleSystem struct {
	hooks   TransitionHooks
	ai      *AISystem
	scripts *DeathScriptRunner
}

func NewLifecycleSystem(hooks TransitionHooks, ai *AISystem, scripts *DeathScriptRunner) *LifecycleSystem {
	return &LifecycleSystem{hooks: hooks, ai: ai, scripts: scripts}
}

func (s *LifecycleSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		if h.IFrames > 0 {
			h.IFrames -= dt
			if h.IFrames < 0 {
				h.IFrames = 0
			}
		}
	})

	ecs.ForEach(w, component.LifecycleComponent.Kind(), func(e ecs.Entity, lc *component.Lifecycle) {
		switch lc.State {
		case component.StateSpawning:
			p := advancePhase(lc, lc.Spawn.Duration, dt)
			if s.hooks != nil {
				s.hooks.OnSpawnUpdate(e, p, lc.Spawn.Hints)
			}
			s.ai.SpawnTick(w, e, p, dt)
			if p >= 1 {
				lc.State = component.StateAlive
				lc.PhaseTimer = 0
				lc.Progress = 0
			}
		case component.StateDying:
			p := advancePhase(lc, lc.Death.Duration, dt)
			if s.hooks != nil {
				s.hooks.OnDeathUpdate(e, p, lc.Death.Hints)
			}
			s.ai.DeathTick(w, e, p, dt)
			s.scripts.Run(w, e, p)
			if p >= 1 {
				lc.State = component.StateRemoved
				lc.PhaseTimer = 0
				push(w, EventRemoved, e, nil)
			}
		}
	})
}

// advancePhase moves the phase timer on and returns the clamped,
// non-decreasing progress.
func advancePhase(lc *component.Lifecycle, duration, dt float64) float64 {
	if dt > 0 {
		lc.PhaseTimer += dt
	}
	p := common.Progress(lc.PhaseTimer, duration)
	if p < lc.Progress {
		p = lc.Progress
	}
	lc.Progress = p
	return p
}

// TakeDamage is the only place health goes down. It reports whether the damage
// landed. Dying and removed entities, invulnerable spawns, entities inside
// their post-hit window and non-positive amounts are ignored. Reaching zero
// health starts the death transition. The post-hit window opens on the first
// hit that lands, so a second source hitting in the same frame is dropped.
func TakeDamage(w *ecs.World, e ecs.Entity, amount int) bool {
	if w == nil || amount <= 0 {
		return false
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	lc, hasLifecycle := ecs.Get(w, e, component.LifecycleComponent.Kind())
	if hasLifecycle {
		switch lc.State {
		case component.StateDying, component.StateRemoved:
			return false
		case component.StateSpawning:
			if lc.Spawn.Invulnerable {
				return false
			}
		}
	}
	if h.IFrames > 0 || h.Current <= 0 {
		return false
	}

	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}

	if h.Current > 0 {
		if h.IFrameDuration > 0 {
			h.IFrames = h.IFrameDuration
		}
		return true
	}

	if hasLifecycle {
		beginDying(w, e, lc)
	}
	return true
}

// Heal restores up to amount health, capped at Max. Only alive entities heal.
func Heal(w *ecs.World, e ecs.Entity, amount int) int {
	if w == nil || amount <= 0 || !isAlive(w, e) {
		return 0
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return 0
	}
	before := h.Current
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return h.Current - before
}

// Kill starts the death transition regardless of health. It is how scripted
// deaths are triggered and grants the normal reward. Dying and removed
// entities are left as they are and report ErrEntityNotAlive.
func Kill(w *ecs.World, e ecs.Entity) error {
	lc, ok := ecs.Get(w, e, component.LifecycleComponent.Kind())
	if !ok {
		return component.ErrEntityNotAlive
	}
	switch lc.State {
	case component.StateDying, component.StateRemoved:
		return component.ErrEntityNotAlive
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Current = 0
	}
	beginDying(w, e, lc)
	return nil
}

// ForceRemove jumps straight to Removed. No death sequence plays and no reward
// is granted. Removing an already removed entity does nothing.
func ForceRemove(w *ecs.World, e ecs.Entity) bool {
	lc, ok := ecs.Get(w, e, component.LifecycleComponent.Kind())
	if !ok || lc.State == component.StateRemoved {
		return false
	}
	lc.State = component.StateRemoved
	lc.Forced = true
	lc.PhaseTimer = 0
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		v.Value.X, v.Value.Y = 0, 0
	}
	return true
}

func beginDying(w *ecs.World, e ecs.Entity, lc *component.Lifecycle) {
	lc.State = component.StateDying
	lc.PhaseTimer = 0
	lc.Progress = 0

	if b, ok := ecs.Get(w, e, component.BrainComponent.Kind()); ok {
		b.FireIntent = false
	}
	if wp, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok {
		wp.Intent = false
		wp.BurstRemaining = 0
	}

	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		push(w, EventPlayerDied, e, nil)
		return
	}
	grantReward(w, e, lc)
}

// grantReward credits the player for a kill. Rewarded makes it happen once per
// entity no matter how it reached Dying.
func grantReward(w *ecs.World, e ecs.Entity, lc *component.Lifecycle) {
	if lc.Rewarded {
		return
	}
	lc.Rewarded = true

	info := KillInfo{Position: position(w, e)}
	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		info.Archetype = enemy.Archetype
	}
	if stats, ok := ecs.Get(w, e, component.StatsComponent.Kind()); ok {
		info.XP = stats.XPValue
	}

	if pe, ok := playerEntity(w); ok {
		if player, ok := ecs.Get(w, pe, component.PlayerComponent.Kind()); ok {
			player.Kills++
			player.XP += info.XP
			if player.XPPerLevel > 0 {
				for player.XP >= (player.Level+1)*player.XPPerLevel {
					player.Level++
					push(w, EventLevelUp, pe, player.Level)
				}
			}
		}
	}
	push(w, EventEnemyKilled, e, info)
}
