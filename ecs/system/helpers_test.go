package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

var testBounds = cp.BB{L: 0, B: 0, R: 100, T: 100}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxVec(a, b cp.Vector) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{BB: testBounds}))
	return w
}

func aliveLifecycle() *component.Lifecycle {
	lc := component.NewLifecycle(nil, nil)
	lc.State = component.StateAlive
	return lc
}

func addPlayer(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 5, Facing: cp.Vector{X: 1}}))
	must(t, ecs.Add(w, e, component.IntentComponent.Kind(), &component.Intent{}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	must(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(10)))
	must(t, ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{Speed: 5, Radius: 0.5}))
	must(t, ecs.Add(w, e, component.LifecycleComponent.Kind(), aliveLifecycle()))
	return e
}

func addEnemy(t *testing.T, w *ecs.World, pos cp.Vector, health int) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Archetype: "test"}))
	must(t, ecs.Add(w, e, component.BrainComponent.Kind(), &component.Brain{Kind: component.BrainNone}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	must(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(health)))
	must(t, ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{Speed: 2, Damage: 1, XPValue: 5, Radius: 0.5}))
	must(t, ecs.Add(w, e, component.LifecycleComponent.Kind(), aliveLifecycle()))
	return e
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v missing component", e)
	}
	return v
}

type recordingHooks struct {
	spawn map[ecs.Entity][]float64
	death map[ecs.Entity][]float64
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{spawn: map[ecs.Entity][]float64{}, death: map[ecs.Entity][]float64{}}
}

func (h *recordingHooks) OnSpawnUpdate(e ecs.Entity, p float64, _ map[string]any) {
	h.spawn[e] = append(h.spawn[e], p)
}

func (h *recordingHooks) OnDeathUpdate(e ecs.Entity, p float64, _ map[string]any) {
	h.death[e] = append(h.death[e], p)
}

type countingAudio struct {
	shots, hits, explosions, overheats, beams, pickups int
}

func (a *countingAudio) PlayShootSound()     { a.shots++ }
func (a *countingAudio) PlayHitSound()       { a.hits++ }
func (a *countingAudio) PlayExplosionSound() { a.explosions++ }
func (a *countingAudio) PlayOverheatSound()  { a.overheats++ }
func (a *countingAudio) PlayBeamSound()      { a.beams++ }
func (a *countingAudio) PlayPickupSound()    { a.pickups++ }

type recordingScene struct {
	added   []any
	removed []any
}

func (s *recordingScene) AddToScene(handle any)      { s.added = append(s.added, handle) }
func (s *recordingScene) RemoveFromScene(handle any) { s.removed = append(s.removed, handle) }
