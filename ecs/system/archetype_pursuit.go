package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
)

// pursuitArchetype heads straight for the player, weaving side to side.
type pursuitArchetype struct{ baseArchetype }

func (pursuitArchetype) ComputeVelocity(ctx *ArchetypeContext) cp.Vector {
	m := ctx.Brain.Pursuit
	if m == nil || !ctx.HasPlayer {
		return cp.Vector{}
	}
	dir := common.Direction(ctx.Position, ctx.Player)
	if dir.X == 0 && dir.Y == 0 {
		return cp.Vector{}
	}

	m.SwayPhase += m.SwayRate * ctx.Dt
	sway := dir.Perp().Mult(math.Sin(m.SwayPhase) * m.SwayAmplitude)
	return dir.Add(sway).Normalize().Mult(ctx.Speed)
}

func (pursuitArchetype) FireIfReady(ctx *ArchetypeContext) bool {
	return ctx.HasPlayer
}
