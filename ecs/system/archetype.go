package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// ArchetypeContext is what a movement strategy sees for one entity on one
// frame.
type ArchetypeContext struct {
	World  *ecs.World
	Entity ecs.Entity
	Brain  *component.Brain

	Position cp.Vector
	// Velocity is the current velocity. Transition ticks write their result
	// back here.
	Velocity cp.Vector
	Speed    float64
	Radius   float64

	Player    cp.Vector
	HasPlayer bool

	Bounds    cp.BB
	HasBounds bool
	Rand      *common.Rand
	Dt        float64
}

// Archetype is one movement strategy. Strategies only produce a velocity and
// a fire intent; integration and firing happen elsewhere.
type Archetype interface {
	ComputeVelocity(ctx *ArchetypeContext) cp.Vector
	FireIfReady(ctx *ArchetypeContext) bool
	OnSpawnTick(ctx *ArchetypeContext, progress float64)
	OnDeathTick(ctx *ArchetypeContext, progress float64)
}

var archetypes = map[component.BrainKind]Archetype{
	component.BrainNone:    idleArchetype{},
	component.BrainPursuit: pursuitArchetype{},
	component.BrainPatrol:  patrolArchetype{},
	component.BrainWander:  wanderArchetype{},
	component.BrainErratic: erraticArchetype{},
	component.BrainOrbit:   orbitArchetype{},
}

// ArchetypeFor returns the strategy for kind, or the idle strategy.
func ArchetypeFor(kind component.BrainKind) Archetype {
	if a, ok := archetypes[kind]; ok {
		return a
	}
	return idleArchetype{}
}

const deathDrag = 6.0

// baseArchetype holds the default transition ticks: stand still while
// materializing, coast to a stop while dying.
type baseArchetype struct{}

func (baseArchetype) OnSpawnTick(ctx *ArchetypeContext, _ float64) {
	ctx.Velocity = cp.Vector{}
}

func (baseArchetype) OnDeathTick(ctx *ArchetypeContext, _ float64) {
	ctx.Velocity = ctx.Velocity.Mult(math.Exp(-deathDrag * ctx.Dt))
}

type idleArchetype struct{ baseArchetype }

func (idleArchetype) ComputeVelocity(*ArchetypeContext) cp.Vector { return cp.Vector{} }
func (idleArchetype) FireIfReady(ctx *ArchetypeContext) bool     { return ctx.HasPlayer }

// seek returns the velocity toward target at speed without overshooting it in
// one frame.
func seek(ctx *ArchetypeContext, target cp.Vector, speed float64) cp.Vector {
	delta := target.Sub(ctx.Position)
	dist := delta.Length()
	if dist == 0 || speed <= 0 {
		return cp.Vector{}
	}
	if ctx.Dt > 0 && dist < speed*ctx.Dt {
		return delta.Mult(1 / ctx.Dt)
	}
	return delta.Mult(speed / dist)
}

func (ctx *ArchetypeContext) clamp(p cp.Vector) cp.Vector {
	if !ctx.HasBounds {
		return p
	}
	return common.ClampToBounds(p, ctx.Bounds, ctx.Radius)
}
