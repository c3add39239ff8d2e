package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// Input is the per-frame control source for the player ship.
type Input interface {
	Movement() cp.Vector
	Fire() bool
	Dash() bool
}

// Aimer is an optional Input extension for an explicit aim direction. Without
// it the ship auto-aims at the nearest enemy.
type Aimer interface {
	Aim() cp.Vector
}

// Scene attaches and detaches visuals. Entities are passed as ecs.Entity.
// Projectiles are added as *projectile.Projectile; the scene may store its own
// handle in Visual, which is what RemoveFromScene later receives (the
// projectile ID when left unset).
type Scene interface {
	AddToScene(handle any)
	RemoveFromScene(handle any)
}

type Audio interface {
	PlayShootSound()
	PlayHitSound()
	PlayExplosionSound()
	PlayOverheatSound()
	PlayBeamSound()
	PlayPickupSound()
}

// TransitionHooks receive spawn and death progress once per frame while an
// entity is transitioning. p is in [0,1] and never decreases within a phase.
type TransitionHooks interface {
	OnSpawnUpdate(e ecs.Entity, p float64, hints map[string]any)
	OnDeathUpdate(e ecs.Entity, p float64, hints map[string]any)
}

// IntentFromInput snapshots in. A nil Input yields an idle intent.
func IntentFromInput(in Input) component.Intent {
	if in == nil {
		return component.Intent{}
	}
	intent := component.Intent{
		Move: in.Movement(),
		Fire: in.Fire(),
		Dash: in.Dash(),
	}
	if aimer, ok := in.(Aimer); ok {
		intent.Aim = aimer.Aim()
	}
	return intent
}

func attach(scene Scene, handle any) {
	if scene != nil {
		scene.AddToScene(handle)
	}
}

func detach(scene Scene, handle any) {
	if scene != nil && handle != nil {
		scene.RemoveFromScene(handle)
	}
}
