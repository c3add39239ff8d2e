package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/projectile"
)

func TestCleanupDestroysRemoved(t *testing.T) {
	w := newTestWorld(t)
	keep := addEnemy(t, w, cp.Vector{X: 10, Y: 10}, 1)
	gone := addEnemy(t, w, cp.Vector{X: 20, Y: 10}, 1)
	ForceRemove(w, gone)

	scene := &recordingScene{}
	NewCleanupSystem(scene, NewDeathScriptRunner(projectile.NewSimulator(1), nil)).Update(w, 0.1)

	if ecs.IsAlive(w, gone) || !ecs.IsAlive(w, keep) {
		t.Fatalf("cleanup: gone alive=%v keep alive=%v", ecs.IsAlive(w, gone), ecs.IsAlive(w, keep))
	}
	if len(scene.removed) != 1 || scene.removed[0] != gone {
		t.Fatalf("scene removals: %v", scene.removed)
	}
}
