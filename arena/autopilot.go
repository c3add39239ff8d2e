package arena

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/projectile"
)

// Autopilot flies the player ship for headless runs. It always fires, backs
// away from enemies inside Danger and otherwise drifts toward the arena
// center. Aim is left to the ship's auto-aim.
type Autopilot struct {
	sim *Simulation
	// Danger is the distance at which an enemy is avoided.
	Danger float64
	// DashRange is the distance at which the ship dashes away.
	DashRange float64

	move cp.Vector
	dash bool
}

func NewAutopilot(sim *Simulation) *Autopilot {
	return &Autopilot{sim: sim, Danger: 8, DashRange: 2.5}
}

// Plan samples the simulation; call it once before each Step.
func (a *Autopilot) Plan() {
	a.move, a.dash = cp.Vector{}, false
	ship, ok := a.sim.Position(a.sim.Player())
	if !ok {
		return
	}

	w := a.sim.World()
	var away cp.Vector
	nearest := math.Inf(1)
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, t *component.Transform) {
		d := ship.Distance(t.Position)
		if d >= a.Danger || d == 0 {
			return
		}
		nearest = math.Min(nearest, d)
		away = away.Add(ship.Sub(t.Position).Mult(1 / d))
	})
	for _, p := range a.sim.Projectiles() {
		d := ship.Distance(p.Position)
		if p.Dead || p.Owner != projectile.OwnerEnemy || d >= a.Danger/2 || d == 0 {
			continue
		}
		away = away.Add(ship.Sub(p.Position).Mult(0.5 / d))
	}

	if away.LengthSq() > 0 {
		a.move = away.Normalize()
		a.dash = nearest < a.DashRange
		return
	}
	if to := a.sim.Bounds().Center().Sub(ship); to.Length() > 1 {
		a.move = to.Normalize()
	}
}

func (a *Autopilot) Movement() cp.Vector { return a.move }
func (a *Autopilot) Fire() bool          { return true }
func (a *Autopilot) Dash() bool          { return a.dash }
