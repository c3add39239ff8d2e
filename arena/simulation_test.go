package arena

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

const frame = 1.0 / 60.0

const testBalance = `
arena: {width: 40, height: 40, projectile_margin: 2, min_spawn_distance: 10}
player:
  health: 3
  radius: 0.5
  speed: 5
  iframes: 0.5
  xp_per_level: 10
  weapon:
    fire_rate: 0.1
    projectile_speed: 20
    projectile_radius: 0.2
    projectile_lifetime: 2
    damage: 1
    start_ready: true
archetypes:
  dummy:
    health: 2
    xp_value: 4
    radius: 0.5
    damage: 1
    behavior: {kind: none}
  brute:
    health: 50
    damage: 1
    radius: 1
    behavior: {kind: none}
waves:
  - delay: 0.5
    spawns: [{archetype: dummy, count: 3}]
`

type controls struct {
	move       cp.Vector
	fire, dash bool
}

func (c controls) Movement() cp.Vector { return c.move }
func (c controls) Fire() bool          { return c.fire }
func (c controls) Dash() bool          { return c.dash }

func newTestSimulation(t *testing.T, opts Options) *Simulation {
	t.Helper()
	if opts.Balance == nil {
		b, err := prefabs.ParseBalance([]byte(testBalance))
		if err != nil {
			t.Fatalf("ParseBalance: %v", err)
		}
		opts.Balance = b
	}
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func run(s *Simulation, frames int, in system.Input) []ecs.Event {
	var events []ecs.Event
	for range frames {
		s.Step(frame, in)
		events = append(events, s.Events()...)
	}
	return events
}

func count(events []ecs.Event, t ecs.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestNewUsesEmbeddedBalance(t *testing.T) {
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = ""
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	s, err := New(Options{Seed: 42, NoWaves: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Seed() != 42 {
		t.Fatalf("seed: got %d", s.Seed())
	}
	pos, ok := s.Position(s.Player())
	if !ok || !approxVec(pos, cp.Vector{X: 30, Y: 20}) {
		t.Fatalf("player should start in the middle, got %v", pos)
	}
	if s.State(s.Player()) != component.StateSpawning {
		t.Fatalf("player state: %v", s.State(s.Player()))
	}

	run(s, 60, nil)
	if s.State(s.Player()) != component.StateAlive {
		t.Fatalf("player should be alive after its spawn phase, got %v", s.State(s.Player()))
	}
	if cur, total := s.Health(s.Player()); cur != 10 || total != 10 {
		t.Fatalf("player health: %d/%d", cur, total)
	}
}

func TestShootingAnEnemyDown(t *testing.T) {
	s := newTestSimulation(t, Options{NoWaves: true})
	e, err := s.SpawnEnemy("dummy", cp.Vector{X: 28, Y: 20})
	if err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}

	events := run(s, 120, controls{fire: true})

	if got := count(events, system.EventEnemyKilled); got != 1 {
		t.Fatalf("kill events: got %d want 1", got)
	}
	for _, ev := range events {
		if ev.Type != system.EventEnemyKilled {
			continue
		}
		info, ok := ev.Data.(system.KillInfo)
		if !ok || info.Archetype != "dummy" || info.XP != 4 {
			t.Fatalf("kill info: %+v", ev.Data)
		}
	}
	if s.State(e) != component.StateRemoved || s.Enemies() != 0 {
		t.Fatalf("enemy should be gone: state=%v enemies=%d", s.State(e), s.Enemies())
	}
	player, _ := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	if player.XP != 4 || player.Kills != 1 || player.Level != 0 {
		t.Fatalf("player progress: %+v", player)
	}
}

func TestKillRewardsOnceAndResetIsClean(t *testing.T) {
	s := newTestSimulation(t, Options{NoWaves: true})
	e, err := s.SpawnEnemy("dummy", cp.Vector{X: 30, Y: 30})
	if err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}
	run(s, 1, nil)

	if err := s.Kill(e); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	if err := s.Kill(e); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("second Kill: got %v", err)
	}
	run(s, 5, nil)
	if err := s.Kill(e); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("Kill on removed entity: got %v", err)
	}
	if s.State(e) != component.StateRemoved {
		t.Fatalf("Kill on removed entity changed state to %v", s.State(e))
	}
	if s.ForceRemove(e) {
		t.Fatalf("ForceRemove on a removed entity should be a no-op")
	}
	player, _ := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	if player.XP != 4 {
		t.Fatalf("xp: got %d want 4", player.XP)
	}

	other, err := s.SpawnEnemy("dummy", cp.Vector{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}
	run(s, 1, controls{fire: true})

	for range 2 {
		if err := s.Reset(); err != nil {
			t.Fatalf("Reset: %v", err)
		}
	}
	if s.Enemies() != 0 || len(s.Projectiles()) != 0 || len(s.Events()) != 0 {
		t.Fatalf("reset left state behind: enemies=%d projectiles=%d", s.Enemies(), len(s.Projectiles()))
	}
	if s.State(other) != component.StateRemoved {
		t.Fatalf("old enemy survived reset")
	}
	player, ok := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	if !ok || player.XP != 0 || player.Kills != 0 {
		t.Fatalf("reset should not grant rewards: %+v", player)
	}
}

func TestPlayerDiesToContact(t *testing.T) {
	s := newTestSimulation(t, Options{NoWaves: true})
	if _, err := s.SpawnEnemy("brute", cp.Vector{X: 20, Y: 20}); err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}
	pe := s.Player()

	events := run(s, 180, nil)

	if got := count(events, system.EventPlayerDied); got != 1 {
		t.Fatalf("player died events: got %d", got)
	}
	if got := count(events, system.EventPlayerHit); got != 3 {
		t.Fatalf("player hit events: got %d want 3", got)
	}
	if got := count(events, system.EventEnemyKilled); got != 0 {
		t.Fatalf("nothing should have been killed, got %d", got)
	}
	if s.State(pe) != component.StateRemoved {
		t.Fatalf("player state: %v", s.State(pe))
	}
	if s.Enemies() != 1 {
		t.Fatalf("enemies: %d", s.Enemies())
	}
}

func TestWavesStartAutomatically(t *testing.T) {
	scene := &countingScene{}
	s := newTestSimulation(t, Options{Scene: scene})

	events := run(s, 40, nil)
	if s.Wave() != 1 || s.Enemies() != 3 {
		t.Fatalf("wave=%d enemies=%d", s.Wave(), s.Enemies())
	}
	if count(events, system.EventWaveStarted) != 1 {
		t.Fatalf("wave start not announced")
	}
	// player plus three enemies
	if scene.added != 4 {
		t.Fatalf("scene additions: got %d want 4", scene.added)
	}
	for _, e := range s.World().Query(component.EnemyComponent.Kind()) {
		p, _ := s.Position(e)
		if p.Distance(cp.Vector{X: 20, Y: 20}) < 10 {
			t.Fatalf("enemy spawned at %v, too close", p)
		}
	}
}

func TestHiveDeathSequence(t *testing.T) {
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = ""
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	s, err := New(Options{Seed: 3, NoWaves: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hive, err := s.SpawnEnemy("hive", cp.Vector{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}
	run(s, 61, nil)
	if s.State(hive) != component.StateAlive {
		t.Fatalf("hive state: %v", s.State(hive))
	}
	if s.TakeDamage(hive, 0) {
		t.Fatalf("zero damage should be ignored")
	}

	if err := s.Kill(hive); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	seen := map[projectile.ID]bool{}
	for range 100 {
		s.Step(frame, nil)
		for _, p := range s.Projectiles() {
			if p.Owner == projectile.OwnerEnemy {
				seen[p.ID] = true
			}
		}
	}
	if len(seen) != 36 {
		t.Fatalf("death projectiles: got %d want 36", len(seen))
	}
	if s.State(hive) != component.StateRemoved {
		t.Fatalf("hive should be removed after its death phase, got %v", s.State(hive))
	}
}

func TestTransitionHooksProgress(t *testing.T) {
	hooks := &progressHooks{spawn: map[ecs.Entity][]float64{}}
	s := newTestSimulation(t, Options{NoWaves: true, Hooks: hooks})
	b := s.Balance()
	b.Player.Spawn = &prefabs.PhaseSpec{Duration: 0.25}
	if err := s.ResetWithBalance(b); err != nil {
		t.Fatalf("ResetWithBalance: %v", err)
	}

	run(s, 30, nil)
	got := hooks.spawn[s.Player()]
	if len(got) == 0 || got[len(got)-1] != 1 {
		t.Fatalf("spawn progress should end at 1: %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("progress went backwards: %v", got)
		}
	}
	if s.State(s.Player()) != component.StateAlive {
		t.Fatalf("player state: %v", s.State(s.Player()))
	}
}

func TestNaNSpawnDurationFromYAML(t *testing.T) {
	b, err := prefabs.ParseBalance([]byte(testBalance))
	if err != nil {
		t.Fatalf("ParseBalance: %v", err)
	}
	var spawn prefabs.PhaseSpec
	if err := yaml.Unmarshal([]byte("duration: .nan\n"), &spawn); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !math.IsNaN(spawn.Duration) {
		t.Fatalf("expected yaml to decode .nan, got %v", spawn.Duration)
	}
	b.Player.Spawn = &spawn

	hooks := &progressHooks{spawn: map[ecs.Entity][]float64{}}
	s := newTestSimulation(t, Options{Balance: b, NoWaves: true, Hooks: hooks})
	run(s, 1, nil)

	if s.State(s.Player()) != component.StateAlive {
		t.Fatalf("player should be alive after one frame, got %v", s.State(s.Player()))
	}
	for _, p := range hooks.spawn[s.Player()] {
		if math.IsNaN(p) || p < 0 || p > 1 {
			t.Fatalf("spawn progress out of range: %v", hooks.spawn[s.Player()])
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = ""
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	fingerprint := func() []float64 {
		s, err := New(Options{Seed: 1234})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := range 900 {
			a := float64(i) * 0.02
			s.Step(frame, controls{move: cp.Vector{X: math.Cos(a), Y: math.Sin(a)}, fire: i%90 < 60, dash: i%120 == 0})
			s.Events()
		}
		out := []float64{float64(s.Wave()), float64(s.Enemies()), float64(len(s.Projectiles()))}
		cur, _ := s.Health(s.Player())
		out = append(out, float64(cur))
		for _, e := range s.World().Query(component.EnemyComponent.Kind()) {
			p, _ := s.Position(e)
			out = append(out, p.X, p.Y)
		}
		return out
	}

	a, b := fingerprint(), fingerprint()
	if len(a) != len(b) {
		t.Fatalf("runs diverged: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestResetWithBalanceRejectsNil(t *testing.T) {
	s := newTestSimulation(t, Options{NoWaves: true})
	if err := s.ResetWithBalance(nil); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestSpawnUnknownArchetype(t *testing.T) {
	s := newTestSimulation(t, Options{NoWaves: true})
	if _, err := s.SpawnEnemy("ghost", cp.Vector{}); !errors.Is(err, prefabs.ErrUnknownArchetype) {
		t.Fatalf("got %v", err)
	}
}

type countingScene struct {
	added, removed int
}

func (c *countingScene) AddToScene(any)      { c.added++ }
func (c *countingScene) RemoveFromScene(any) { c.removed++ }

type progressHooks struct {
	spawn map[ecs.Entity][]float64
}

func (h *progressHooks) OnSpawnUpdate(e ecs.Entity, p float64, _ map[string]any) {
	h.spawn[e] = append(h.spawn[e], p)
}

func (h *progressHooks) OnDeathUpdate(ecs.Entity, float64, map[string]any) {}

func approxVec(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}
