package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// PlayerControlSystem turns the frame's Intent into ship velocity, dashes and
// weapon requests.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem { return &PlayerControlSystem{} }

func (s *PlayerControlSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	e, ok := playerEntity(w)
	if !ok {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	intent := component.Intent{}
	if in, ok := ecs.Get(w, e, component.IntentComponent.Kind()); ok {
		intent = *in
	}
	weapon, hasWeapon := ecs.Get(w, e, component.WeaponComponent.Kind())

	if player.DashRecharge > 0 {
		player.DashRecharge = math.Max(0, player.DashRecharge-dt)
	}

	if !isAlive(w, e) {
		vel.Value = cp.Vector{}
		player.DashTimer = 0
		if hasWeapon {
			weapon.Intent = false
		}
		return
	}

	move := common.ClampLength(intent.Move, 1)
	if move.X != 0 || move.Y != 0 {
		player.Facing = move.Normalize()
	}
	if player.Facing.X == 0 && player.Facing.Y == 0 {
		player.Facing = cp.Vector{X: 1}
	}

	switch {
	case player.DashTimer > 0:
		player.DashTimer -= dt
		if player.DashTimer < 0 {
			player.DashTimer = 0
		}
		vel.Value = player.DashDirection.Mult(player.MoveSpeed * player.DashMultiplier)
	case intent.Dash && player.DashRecharge <= common.TimeEpsilon && player.DashDuration > 0:
		player.DashDirection = player.Facing
		player.DashTimer = player.DashDuration
		player.DashRecharge = player.DashCooldown
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.IFrames < player.DashIFrames {
			h.IFrames = player.DashIFrames
		}
		vel.Value = player.DashDirection.Mult(player.MoveSpeed * player.DashMultiplier)
	default:
		vel.Value = move.Mult(player.MoveSpeed)
	}

	if !hasWeapon {
		return
	}
	weapon.Intent = intent.Fire
	aim := intent.Aim
	if aim.X == 0 && aim.Y == 0 {
		aim = autoAim(w, position(w, e), player.Facing)
	}
	weapon.Aim = aim.Normalize()
}

// autoAim points at the nearest alive enemy, or along fallback when there is
// none.
func autoAim(w *ecs.World, from, fallback cp.Vector) cp.Vector {
	best := math.Inf(1)
	aim := fallback
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.LifecycleComponent.Kind(), func(_ ecs.Entity, _ *component.Enemy, t *component.Transform, lc *component.Lifecycle) {
		if !lc.Active() {
			return
		}
		d := from.DistanceSq(t.Position)
		if d < best && d > 0 {
			best = d
			aim = t.Position.Sub(from)
		}
	})
	return aim
}
