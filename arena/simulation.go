// Package arena wires the combat simulation together: one world, the systems
// in their fixed frame order and the injected collaborators.
package arena

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

// Options configures a Simulation. Nil collaborators are simply absent.
type Options struct {
	// Balance defaults to the embedded balance table.
	Balance *prefabs.Balance
	// Seed drives every random decision; zero picks one from the clock.
	Seed int64

	Scene   system.Scene
	Audio   system.Audio
	Hooks   system.TransitionHooks
	Scripts system.ScriptLoader

	// StartWave is the 1-based wave to begin with.
	StartWave int
	// NoWaves disables the wave director; enemies only appear through
	// SpawnEnemy.
	NoWaves bool
}

// Simulation is the frame-driven arena. It is not safe for concurrent use.
type Simulation struct {
	opts    Options
	balance *prefabs.Balance
	seed    int64

	world       *ecs.World
	rng         *common.Rand
	sim         *projectile.Simulator
	scheduler   *ecs.Scheduler
	projectiles *system.ProjectileSystem
	scripts     *system.DeathScriptRunner
	cleanup     *system.CleanupSystem
	waves       *system.WaveSystem
	player      ecs.Entity
}

// BeamView is a read-only snapshot of one beam for rendering.
type BeamView struct {
	Entity    ecs.Entity
	Phase     component.BeamPhase
	Origin    cp.Vector
	Direction cp.Vector
	Length    float64
	HalfWidth float64
	Opacity   float64
	Intensity float64
}

func New(opts Options) (*Simulation, error) {
	balance := opts.Balance
	if balance == nil {
		b, err := prefabs.LoadBalance(prefabs.BalanceFile)
		if err != nil {
			return nil, err
		}
		balance = b
	}

	s := &Simulation{
		opts:    opts,
		balance: balance,
		seed:    common.NewRand(opts.Seed).Seed(),
		world:   ecs.NewWorld(),
	}
	if _, err := entity.NewArena(s.world, balance.Arena); err != nil {
		return nil, err
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) build() error {
	s.rng = common.NewRand(s.seed)
	s.sim = projectile.NewSimulator(s.balance.Arena.ProjectileMargin)
	s.scripts = system.NewDeathScriptRunner(s.sim, s.opts.Scripts)
	s.projectiles = system.NewProjectileSystem(s.sim, s.opts.Scene, s.opts.Audio)
	s.cleanup = system.NewCleanupSystem(s.opts.Scene, s.scripts)
	s.waves = system.NewWaveSystem(s.balance, s.rng, s.opts.Scene, s.opts.StartWave)
	ai := system.NewAISystem(s.rng)

	s.scheduler = ecs.NewScheduler(
		system.NewPlayerControlSystem(),
		system.NewLifecycleSystem(s.opts.Hooks, ai, s.scripts),
		ai,
		system.NewMovementSystem(),
		system.NewWeaponSystem(s.sim, s.opts.Audio),
		system.NewBeamSystem(s.opts.Audio),
		s.projectiles,
		system.NewCombatSystem(s.opts.Audio),
		system.NewPickupSystem(s.balance.Pickups, s.rng, s.opts.Scene, s.opts.Audio),
	)
	if !s.opts.NoWaves {
		s.scheduler.Add(s.waves)
	}
	s.scheduler.Add(s.cleanup)

	player, err := entity.NewPlayer(s.world, s.balance.Player, entity.Center(s.balance.Arena))
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	s.player = player
	if s.opts.Scene != nil {
		s.opts.Scene.AddToScene(player)
	}
	return nil
}

// Step advances the simulation by dt seconds using in as the player's
// controls. A nil Input leaves the ship idle.
func (s *Simulation) Step(dt float64, in system.Input) {
	if dt < 0 {
		dt = 0
	}
	if intent, ok := ecs.Get(s.world, s.player, component.IntentComponent.Kind()); ok {
		*intent = system.IntentFromInput(in)
	}
	s.scheduler.Update(s.world, dt)
}

// Reset force-removes every entity, drops all projectiles and starts over with
// the same seed. No kill rewards are granted for what is removed.
func (s *Simulation) Reset() error {
	return s.reset(nil)
}

// ResetWithBalance is Reset with a new balance table, used after hot reload.
func (s *Simulation) ResetWithBalance(b *prefabs.Balance) error {
	if b == nil {
		return fmt.Errorf("arena: nil balance")
	}
	return s.reset(b)
}

func (s *Simulation) reset(b *prefabs.Balance) error {
	for _, e := range s.world.Query(component.LifecycleComponent.Kind()) {
		system.ForceRemove(s.world, e)
	}
	s.projectiles.Clear()
	for _, e := range s.world.Query(component.PickupComponent.Kind()) {
		if s.opts.Scene != nil {
			s.opts.Scene.RemoveFromScene(e)
		}
		s.world.DestroyEntity(e)
	}
	s.cleanup.Update(s.world, 0)
	s.scripts.Reset()
	s.world.Events().Drain()

	if b != nil && b != s.balance {
		s.balance = b
		if bounds, ok := ecs.First(s.world, component.ArenaBoundsComponent.Kind()); ok {
			s.world.DestroyEntity(bounds)
		}
		if _, err := entity.NewArena(s.world, b.Arena); err != nil {
			return err
		}
	}
	return s.build()
}

// SpawnEnemy places an archetype at pos outside of the wave director.
func (s *Simulation) SpawnEnemy(archetype string, pos cp.Vector) (ecs.Entity, error) {
	e, err := entity.NewEnemy(s.world, s.balance, archetype, pos, entity.EnemyOptions{})
	if err != nil {
		return 0, err
	}
	if s.opts.Scene != nil {
		s.opts.Scene.AddToScene(e)
	}
	return e, nil
}

// TakeDamage applies damage through the single health mutation point.
func (s *Simulation) TakeDamage(e ecs.Entity, amount int) bool {
	return system.TakeDamage(s.world, e, amount)
}

// Kill starts e's death sequence as if its health had run out. An entity that
// is already dying or removed yields component.ErrEntityNotAlive and is left
// untouched, so callers relaying duplicate death notifications may ignore it.
func (s *Simulation) Kill(e ecs.Entity) error {
	return system.Kill(s.world, e)
}

// ForceRemove removes e without a death sequence or reward.
func (s *Simulation) ForceRemove(e ecs.Entity) bool {
	return system.ForceRemove(s.world, e)
}

// State returns e's lifecycle state. Destroyed entities report Removed.
func (s *Simulation) State(e ecs.Entity) component.LifeState {
	lc, ok := ecs.Get(s.world, e, component.LifecycleComponent.Kind())
	if !ok {
		return component.StateRemoved
	}
	return lc.State
}

func (s *Simulation) Position(e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position, true
}

// Health returns current and max health.
func (s *Simulation) Health(e ecs.Entity) (int, int) {
	h, ok := ecs.Get(s.world, e, component.HealthComponent.Kind())
	if !ok {
		return 0, 0
	}
	return h.Current, h.Max
}

func (s *Simulation) Radius(e ecs.Entity) float64 {
	stats, ok := ecs.Get(s.world, e, component.StatsComponent.Kind())
	if !ok {
		return 0
	}
	return stats.Radius
}

// Projectiles returns the live projectiles. Callers must not mutate them.
func (s *Simulation) Projectiles() []*projectile.Projectile {
	return s.sim.Live()
}

// Beams returns every beam that is not idle.
func (s *Simulation) Beams() []BeamView {
	var out []BeamView
	ecs.ForEach(s.world, component.BeamComponent.Kind(), func(e ecs.Entity, b *component.Beam) {
		if !b.Firing() {
			return
		}
		out = append(out, BeamView{
			Entity:    e,
			Phase:     b.Phase,
			Origin:    b.Origin,
			Direction: b.Direction,
			Length:    b.Length,
			HalfWidth: b.HalfWidth,
			Opacity:   b.Opacity,
			Intensity: b.Intensity,
		})
	})
	return out
}

// Events drains the events raised since the last call.
func (s *Simulation) Events() []ecs.Event {
	return s.world.Events().Drain()
}

func (s *Simulation) Player() ecs.Entity { return s.player }
func (s *Simulation) World() *ecs.World { return s.world }
func (s *Simulation) Balance() *prefabs.Balance { return s.balance }
func (s *Simulation) Seed() int64 { return s.seed }
func (s *Simulation) Wave() int { return s.waves.Wave() }
func (s *Simulation) Bounds() cp.BB { return entity.Bounds(s.balance.Arena) }
func (s *Simulation) Enemies() int { return system.CountEnemies(s.world) }
func (s *Simulation) Time() float64 { return s.world.Time() }
