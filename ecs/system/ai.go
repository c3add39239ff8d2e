package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// AISystem runs the archetype strategy of every alive enemy. It writes
// Velocity, the brain's fire intent and the weapon aim; nothing else.
type AISystem struct {
	rng *common.Rand
}

func NewAISystem(rng *common.Rand) *AISystem {
	return &AISystem{rng: rng}
}

func (s *AISystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BrainComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, brain *component.Brain, lc *component.Lifecycle) {
		if !lc.Active() {
			return
		}
		ctx, vel, ok := s.context(w, e, brain, dt)
		if !ok {
			return
		}

		arch := ArchetypeFor(brain.Kind)
		vel.Value = arch.ComputeVelocity(ctx)
		brain.FireIntent = arch.FireIfReady(ctx)

		if wp, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok {
			wp.Intent = brain.FireIntent
			if ctx.HasPlayer {
				wp.Aim = common.Direction(ctx.Position, ctx.Player)
			}
		}
	})
}

// SpawnTick hands spawn progress to the entity's archetype.
func (s *AISystem) SpawnTick(w *ecs.World, e ecs.Entity, progress, dt float64) {
	s.transitionTick(w, e, progress, dt, false)
}

// DeathTick hands death progress to the entity's archetype.
func (s *AISystem) DeathTick(w *ecs.World, e ecs.Entity, progress, dt float64) {
	s.transitionTick(w, e, progress, dt, true)
}

func (s *AISystem) transitionTick(w *ecs.World, e ecs.Entity, progress, dt float64, dying bool) {
	if s == nil || w == nil {
		return
	}
	brain, ok := ecs.Get(w, e, component.BrainComponent.Kind())
	if !ok {
		return
	}
	ctx, vel, ok := s.context(w, e, brain, dt)
	if !ok {
		return
	}

	arch := ArchetypeFor(brain.Kind)
	if dying {
		arch.OnDeathTick(ctx, progress)
	} else {
		arch.OnSpawnTick(ctx, progress)
	}
	vel.Value = ctx.Velocity
}

func (s *AISystem) context(w *ecs.World, e ecs.Entity, brain *component.Brain, dt float64) (*ArchetypeContext, *component.Velocity, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return nil, nil, false
	}

	ctx := &ArchetypeContext{
		World:    w,
		Entity:   e,
		Brain:    brain,
		Position: t.Position,
		Velocity: vel.Value,
		Rand:     s.rng,
		Dt:       dt,
	}
	if stats, ok := ecs.Get(w, e, component.StatsComponent.Kind()); ok {
		ctx.Speed = stats.Speed
		ctx.Radius = stats.Radius
	}
	ctx.Player, ctx.HasPlayer = playerTarget(w)
	ctx.Bounds, ctx.HasBounds = arenaBounds(w)
	return ctx, vel, true
}
