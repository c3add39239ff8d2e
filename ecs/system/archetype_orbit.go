package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
)

const defaultFireSlack = 1.0

// orbitArchetype circles the player on a ring whose radius breathes in and
// out, and fires while it is close to the ring.
type orbitArchetype struct{ baseArchetype }

func (orbitArchetype) ComputeVelocity(ctx *ArchetypeContext) cp.Vector {
	m := ctx.Brain.Orbit
	if m == nil || !ctx.HasPlayer {
		return cp.Vector{}
	}
	if m.Direction == 0 {
		orbitStart(ctx)
	}

	m.OscillationPhase += m.OscillationRate * ctx.Dt
	m.Angle += m.AngularSpeed * m.Direction * ctx.Dt
	m.TargetPoint = ctx.clamp(ctx.Player.Add(common.Heading(m.Angle, orbitRadius(ctx))))
	return seek(ctx, m.TargetPoint, ctx.Speed)
}

func (orbitArchetype) FireIfReady(ctx *ArchetypeContext) bool {
	m := ctx.Brain.Orbit
	if m == nil || !ctx.HasPlayer {
		return false
	}
	slack := m.FireSlack
	if slack <= 0 {
		slack = defaultFireSlack
	}
	return math.Abs(ctx.Position.Distance(ctx.Player)-orbitRadius(ctx)) <= slack
}

// OnSpawnTick settles the orbit direction and starting angle while the entity
// materializes.
func (orbitArchetype) OnSpawnTick(ctx *ArchetypeContext, _ float64) {
	ctx.Velocity = cp.Vector{}
	if ctx.Brain.Orbit != nil && ctx.Brain.Orbit.Direction == 0 && ctx.HasPlayer {
		orbitStart(ctx)
	}
}

func orbitRadius(ctx *ArchetypeContext) float64 {
	m := ctx.Brain.Orbit
	return m.BaseRadius + math.Sin(m.OscillationPhase)*m.RadiusAmplitude
}

func orbitStart(ctx *ArchetypeContext) {
	m := ctx.Brain.Orbit
	m.Direction = 1
	if ctx.Rand.Chance(0.5) {
		m.Direction = -1
	}
	m.Angle = common.Angle(ctx.Position.Sub(ctx.Player))
}
