package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
)

const (
	defaultErraticIntervalMin = 0.1
	defaultErraticIntervalMax = 0.25
)

// erraticArchetype picks a new heading every few hundred milliseconds, mostly
// at random and sometimes toward the player, shakes it with a sine jitter and
// bounces off the arena walls.
type erraticArchetype struct{ baseArchetype }

func (erraticArchetype) ComputeVelocity(ctx *ArchetypeContext) cp.Vector {
	m := ctx.Brain.Erratic
	if m == nil {
		return cp.Vector{}
	}

	m.Timer -= ctx.Dt
	if m.Timer <= common.TimeEpsilon || (m.Heading.X == 0 && m.Heading.Y == 0) {
		lo, hi := m.IntervalMin, m.IntervalMax
		if lo <= 0 && hi <= 0 {
			lo, hi = defaultErraticIntervalMin, defaultErraticIntervalMax
		}
		m.Timer = ctx.Rand.Range(lo, hi)

		m.Chasing = ctx.HasPlayer && ctx.Rand.Chance(m.ChaseChance)
		if m.Chasing {
			m.Heading = common.Direction(ctx.Position, ctx.Player)
		}
		if !m.Chasing || (m.Heading.X == 0 && m.Heading.Y == 0) {
			m.Heading = common.Heading(ctx.Rand.Angle(), 1)
		}
	}

	m.JitterPhase += m.JitterRate * ctx.Dt
	heading := common.Rotate(m.Heading, math.Sin(m.JitterPhase)*m.JitterAmplitude)

	if ctx.HasBounds {
		bb := ctx.Bounds
		p := ctx.Position
		if (p.X-ctx.Radius <= bb.L && heading.X < 0) || (p.X+ctx.Radius >= bb.R && heading.X > 0) {
			heading.X = -heading.X
			m.Heading.X = -m.Heading.X
		}
		if (p.Y-ctx.Radius <= bb.B && heading.Y < 0) || (p.Y+ctx.Radius >= bb.T && heading.Y > 0) {
			heading.Y = -heading.Y
			m.Heading.Y = -m.Heading.Y
		}
	}
	return heading.Mult(ctx.Speed)
}

func (erraticArchetype) FireIfReady(ctx *ArchetypeContext) bool {
	return ctx.HasPlayer
}

// OnDeathTick makes the dying glitch twitch in place.
func (erraticArchetype) OnDeathTick(ctx *ArchetypeContext, progress float64) {
	ctx.Velocity = common.Heading(ctx.Rand.Angle(), ctx.Speed*0.3*(1-progress))
}
