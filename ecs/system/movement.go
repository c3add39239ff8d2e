package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// MovementSystem integrates velocity for alive and dying entities and keeps
// them inside the arena.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	bounds, hasBounds := arenaBounds(w)

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity, lc *component.Lifecycle) {
		if lc.State != component.StateAlive && lc.State != component.StateDying {
			return
		}

		t.Position = t.Position.Add(v.Value.Mult(dt))
		if hasBounds {
			t.Position = common.ClampToBounds(t.Position, bounds, radius(w, e))
		}
		if v.Value.X != 0 || v.Value.Y != 0 {
			t.Rotation = common.Angle(v.Value)
		}
	})
}
