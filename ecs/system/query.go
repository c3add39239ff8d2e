package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// arenaBounds returns the world rectangle, or false if no entity carries one.
func arenaBounds(w *ecs.World) (cp.BB, bool) {
	e, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	b, ok := ecs.Get(w, e, component.ArenaBoundsComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	return b.BB, true
}

// playerEntity returns the player if it exists and has not been removed.
func playerEntity(w *ecs.World) (ecs.Entity, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, false
	}
	if lc, ok := ecs.Get(w, e, component.LifecycleComponent.Kind()); ok && lc.State == component.StateRemoved {
		return 0, false
	}
	return e, true
}

// playerTarget returns the player's position when it is alive and can be
// chased.
func playerTarget(w *ecs.World) (cp.Vector, bool) {
	e, ok := playerEntity(w)
	if !ok || !isAlive(w, e) {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position, true
}

func isAlive(w *ecs.World, e ecs.Entity) bool {
	lc, ok := ecs.Get(w, e, component.LifecycleComponent.Kind())
	return ok && lc.State == component.StateAlive
}

func position(w *ecs.World, e ecs.Entity) cp.Vector {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Position
	}
	return cp.Vector{}
}

func radius(w *ecs.World, e ecs.Entity) float64 {
	if s, ok := ecs.Get(w, e, component.StatsComponent.Kind()); ok {
		return s.Radius
	}
	return 0
}

// CountEnemies returns the enemies that have not been removed yet.
func CountEnemies(w *ecs.World) int {
	n := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.LifecycleComponent.Kind(), func(_ ecs.Entity, _ *component.Enemy, lc *component.Lifecycle) {
		if lc.State != component.StateRemoved {
			n++
		}
	})
	return n
}
