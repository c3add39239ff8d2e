package component

import "math"

// LifeState is the high-level phase of an entity.
type LifeState int

const (
	StateSpawning LifeState = iota
	StateAlive
	StateDying
	StateRemoved
)

func (s LifeState) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateAlive:
		return "alive"
	case StateDying:
		return "dying"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// PhaseConfig describes a spawn or death transition. The simulation reads
// Duration and Invulnerable; Hints are forwarded untouched to the renderer.
type PhaseConfig struct {
	Duration     float64
	Invulnerable bool
	Hints        map[string]any
}

// Lifecycle drives Spawning -> Alive -> Dying -> Removed.
type Lifecycle struct {
	State      LifeState
	PhaseTimer float64
	// Progress is the last value handed to a transition hook.
	Progress float64
	Spawn    PhaseConfig
	Death    PhaseConfig
	// Rewarded is set once the death reward has been granted.
	Rewarded bool
	// Forced marks an entity removed by Reset/ForceRemove rather than by dying.
	Forced bool
}

// NewLifecycle starts an entity in Spawning. Nil or malformed configs use the
// zero-duration default.
func NewLifecycle(spawn, death *PhaseConfig) *Lifecycle {
	lc := &Lifecycle{State: StateSpawning}
	if spawn != nil {
		lc.Spawn = *spawn
	}
	if death != nil {
		lc.Death = *death
	}
	lc.Spawn.Duration = phaseDuration(lc.Spawn.Duration)
	lc.Death.Duration = phaseDuration(lc.Death.Duration)
	return lc
}

// phaseDuration maps negative, NaN and infinite durations to zero.
func phaseDuration(d float64) float64 {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// Active reports whether AI and weapons may run.
func (lc *Lifecycle) Active() bool {
	return lc != nil && lc.State == StateAlive
}

var LifecycleComponent = NewComponent[Lifecycle]()
