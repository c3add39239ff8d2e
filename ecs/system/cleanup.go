package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// CleanupSystem runs last: removed entities are detached from the scene and
// destroyed so nothing sees them next frame.
type CleanupSystem struct {
	scene   Scene
	scripts *DeathScriptRunner
}

func NewCleanupSystem(scene Scene, scripts *DeathScriptRunner) *CleanupSystem {
	return &CleanupSystem{scene: scene, scripts: scripts}
}

func (s *CleanupSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.LifecycleComponent.Kind(), func(e ecs.Entity, lc *component.Lifecycle) {
		if lc.State != component.StateRemoved {
			return
		}
		detach(s.scene, e)
		s.scripts.Forget(e)
		ecs.DestroyEntity(w, e)
	})
}
