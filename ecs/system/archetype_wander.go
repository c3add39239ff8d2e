package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs/component"
)

// wanderArchetype follows random quadratic bezier paths. When a path ends a
// new one starts on the same frame, and sometimes it breaks off to circle the
// player for a while.
type wanderArchetype struct{ baseArchetype }

func (wanderArchetype) ComputeVelocity(ctx *ArchetypeContext) cp.Vector {
	m := ctx.Brain.Wander
	if m == nil || ctx.Dt <= 0 {
		return cp.Vector{}
	}
	maxSpeed := ctx.Speed * m.MaxSpeedFactor
	if m.MaxSpeedFactor <= 0 {
		maxSpeed = ctx.Speed
	}

	if m.Orbiting {
		m.OrbitRemaining -= ctx.Dt
		if m.OrbitRemaining > common.TimeEpsilon && ctx.HasPlayer {
			m.OrbitAngle += m.OrbitAngularRate * ctx.Dt
			target := ctx.clamp(ctx.Player.Add(common.Heading(m.OrbitAngle, m.OrbitRadius)))
			return common.ClampLength(target.Sub(ctx.Position).Mult(1/ctx.Dt), maxSpeed)
		}
		m.Orbiting = false
		m.OrbitRemaining = 0
		m.HasPath = false
	}

	if !m.HasPath {
		newWanderPath(ctx, m, ctx.Position)
	}

	m.Progress += ctx.Dt / m.Duration
	if common.Reached(m.Progress, 1) {
		end := m.Target
		v := common.ClampLength(end.Sub(ctx.Position).Mult(1/ctx.Dt), maxSpeed)
		newWanderPath(ctx, m, end)
		if ctx.HasPlayer && ctx.Rand.Chance(m.OrbitChance) {
			m.Orbiting = true
			m.OrbitRemaining = ctx.Rand.Range(m.OrbitDurationMin, m.OrbitDurationMax)
			m.OrbitAngle = common.Angle(end.Sub(ctx.Player))
		}
		return v
	}

	desired := common.QuadBezier(m.Start, m.Control, m.Target, m.Progress)
	return common.ClampLength(desired.Sub(ctx.Position).Mult(1/ctx.Dt), maxSpeed)
}

func (wanderArchetype) FireIfReady(ctx *ArchetypeContext) bool {
	return ctx.HasPlayer
}

func newWanderPath(ctx *ArchetypeContext, m *component.WanderMemory, start cp.Vector) {
	m.Start = start
	m.Target = ctx.clamp(ctx.Rand.PointNear(start, m.WanderRadius))
	mid := m.Start.Add(m.Target).Mult(0.5)
	m.Control = ctx.clamp(ctx.Rand.PointNear(mid, m.WanderRadius/2))

	m.Duration = ctx.Rand.Range(m.PathDurationMin, m.PathDurationMax)
	if m.Duration <= 0 {
		m.Duration = 1
	}
	m.Progress = 0
	m.HasPath = true
	m.PathsGenerated++
}
