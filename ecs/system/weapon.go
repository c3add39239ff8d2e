package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/projectile"
)

const defaultRadialCount = 8

// WeaponSystem runs fire cadence, bursts and heat, and enqueues projectiles.
// Only alive entities fire; heat keeps cooling regardless.
type WeaponSystem struct {
	sim   *projectile.Simulator
	audio Audio
}

func NewWeaponSystem(sim *projectile.Simulator, audio Audio) *WeaponSystem {
	return &WeaponSystem{sim: sim, audio: audio}
}

func (s *WeaponSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.HeatComponent.Kind(), func(_ ecs.Entity, heat *component.Heat) {
		coolHeat(heat, dt)
	})

	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, wp *component.Weapon, lc *component.Lifecycle) {
		if !lc.Active() {
			wp.BurstRemaining = 0
			return
		}
		s.tick(w, e, wp, dt)
	})
}

func (s *WeaponSystem) tick(w *ecs.World, e ecs.Entity, wp *component.Weapon, dt float64) {
	if wp.FireRate <= 0 {
		return
	}
	heat, _ := ecs.Get(w, e, component.HeatComponent.Kind())

	wp.FireTimer = math.Min(wp.FireTimer+dt, wp.FireRate)

	if wp.BurstRemaining > 0 {
		wp.BurstTimer += dt
		if !common.Reached(wp.BurstTimer, wp.BurstInterval) {
			return
		}
		wp.BurstTimer = 0
		if s.fire(w, e, wp, heat) {
			wp.BurstRemaining--
		} else {
			wp.BurstRemaining = 0
		}
		if wp.BurstRemaining == 0 {
			wp.FireTimer = 0
		}
		return
	}

	if !wp.Intent || !common.Reached(wp.FireTimer, wp.FireRate) {
		return
	}
	if heat != nil && heat.Overheated {
		return
	}
	if !s.fire(w, e, wp, heat) {
		wp.FireTimer = 0
		return
	}
	if wp.BurstCount > 1 {
		wp.BurstRemaining = wp.BurstCount - 1
		wp.BurstTimer = 0
		return
	}
	wp.FireTimer = 0
}

// fire emits one volley of every pattern the weapon carries. It stops early
// when the volley overheats the weapon and reports whether anything fired.
func (s *WeaponSystem) fire(w *ecs.World, e ecs.Entity, wp *component.Weapon, heat *component.Heat) bool {
	if heat != nil && heat.Overheated {
		return false
	}
	origin := position(w, e)
	r := radius(w, e)
	aim := wp.Aim
	if aim.X == 0 && aim.Y == 0 {
		aim = cp.Vector{X: 1}
	}
	aim = aim.Normalize()

	fired := 0
	for i := range wp.Patterns {
		for _, dir := range volley(&wp.Patterns[i], aim, wp) {
			if heat != nil && heat.Overheated {
				break
			}
			s.sim.Enqueue(projectile.Projectile{
				Position:  origin.Add(dir.Mult(r)),
				Velocity:  dir.Mult(wp.ProjectileSpeed),
				Damage:    wp.Damage,
				Radius:    wp.ProjectileRadius,
				Remaining: wp.ProjectileLifetime,
				Owner:     wp.Owner,
			})
			fired++
			if heat != nil && addHeat(heat) {
				push(w, EventOverheated, e, heat.Overheats)
				if s.audio != nil {
					s.audio.PlayOverheatSound()
				}
			}
		}
		if wp.Patterns[i].Kind == component.PatternRadial {
			wp.Patterns[i].Offset = math.Mod(wp.Patterns[i].Offset+wp.Patterns[i].Spin, 2*math.Pi)
		}
	}
	if fired == 0 {
		return false
	}

	wp.ShotsFired += fired
	wp.VolleysFired++
	if s.audio != nil {
		s.audio.PlayShootSound()
	}
	return true
}

// volley returns the bullet directions of one pattern.
func volley(p *component.FirePattern, aim cp.Vector, wp *component.Weapon) []cp.Vector {
	switch p.Kind {
	case component.PatternSpread:
		count := max(p.Count, 1)
		if wp.Owner == projectile.OwnerPlayer {
			count += wp.Level
		}
		return spreadDirections(aim, count, spreadCone(p, wp.Level))
	case component.PatternRadial:
		count := p.Count
		if count <= 0 {
			count = defaultRadialCount
		}
		return radialDirections(count, p.Offset)
	default:
		return []cp.Vector{aim}
	}
}

// spreadCone narrows the cone as the weapon level rises.
func spreadCone(p *component.FirePattern, level int) float64 {
	div := 1 + p.Narrowing*float64(level)
	if div <= 0 {
		return p.Cone
	}
	return p.Cone / div
}

// spreadDirections spaces count bullets evenly across cone, centered on aim.
func spreadDirections(aim cp.Vector, count int, cone float64) []cp.Vector {
	if count <= 1 {
		return []cp.Vector{aim}
	}
	out := make([]cp.Vector, 0, count)
	step := cone / float64(count-1)
	for i := range count {
		out = append(out, common.Rotate(aim, -cone/2+step*float64(i)))
	}
	return out
}

// radialDirections spaces count bullets evenly around the full circle.
func radialDirections(count int, offset float64) []cp.Vector {
	out := make([]cp.Vector, 0, count)
	step := 2 * math.Pi / float64(count)
	for i := range count {
		out = append(out, common.Heading(offset+step*float64(i), 1))
	}
	return out
}

// addHeat adds one shot of heat and reports whether that shot overheated the
// weapon.
func addHeat(h *component.Heat) bool {
	if h.Max <= 0 || h.Overheated {
		return false
	}
	h.Current += h.PerShot
	if h.Current < h.Max-common.TimeEpsilon {
		return false
	}
	h.Current = h.Max
	h.Overheated = true
	h.Overheats++
	return true
}

func coolHeat(h *component.Heat, dt float64) {
	rate := h.DecayRate
	if h.Overheated && h.OverheatDecayRate > 0 {
		rate = h.OverheatDecayRate
	}
	h.Current -= rate * dt
	if h.Current <= common.TimeEpsilon {
		h.Current = 0
		h.Overheated = false
	}
}
