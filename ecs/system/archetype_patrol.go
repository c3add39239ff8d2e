package system

import (
	"github.com/jakecoffman/cp"
)

// patrolArchetype walks between random nearby points until the player comes
// within detection range, then chases and shoots for the rest of its life.
type patrolArchetype struct{ baseArchetype }

func (patrolArchetype) ComputeVelocity(ctx *ArchetypeContext) cp.Vector {
	m := ctx.Brain.Patrol
	if m == nil {
		return cp.Vector{}
	}

	if !m.Alerted && ctx.HasPlayer && ctx.Position.Distance(ctx.Player) <= m.DetectionRadius {
		m.Alerted = true
		m.HasTarget = false
	}

	if m.Alerted {
		if !ctx.HasPlayer {
			return cp.Vector{}
		}
		mult := m.AlertSpeedMultiplier
		if mult <= 0 {
			mult = 1
		}
		return seek(ctx, ctx.Player, ctx.Speed*mult)
	}

	if !m.HasTarget || ctx.Position.Distance(m.Target) <= m.ArriveThreshold {
		m.Target = ctx.clamp(ctx.Rand.PointNear(ctx.Position, m.PatrolRadius))
		m.HasTarget = true
	}
	return seek(ctx, m.Target, ctx.Speed)
}

func (patrolArchetype) FireIfReady(ctx *ArchetypeContext) bool {
	return ctx.Brain.Patrol != nil && ctx.Brain.Patrol.Alerted && ctx.HasPlayer
}
