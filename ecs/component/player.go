package component

import "github.com/jakecoffman/cp"

// Player holds the ship controller tuning and progression.
type Player struct {
	MoveSpeed float64

	DashMultiplier float64
	DashDuration   float64
	DashCooldown   float64
	DashIFrames    float64
	// DashDamage is dealt to enemies rammed mid-dash.
	DashDamage     int
	DashTimer      float64
	DashRecharge   float64
	DashDirection  cp.Vector

	Facing cp.Vector

	XP         int
	Level      int
	XPPerLevel int
	Kills      int
}

// Dashing reports whether a dash is in progress.
func (p *Player) Dashing() bool {
	return p != nil && p.DashTimer > 0
}

var PlayerComponent = NewComponent[Player]()

// Intent is the per-frame input snapshot for the player. Move is expected to
// be normalized already.
type Intent struct {
	Move cp.Vector
	Aim  cp.Vector
	Fire bool
	Dash bool
}

var IntentComponent = NewComponent[Intent]()
