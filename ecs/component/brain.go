package component

import "github.com/jakecoffman/cp"

// BrainKind selects the movement strategy of an archetype. The set is closed;
// exactly one memory pointer of Brain matches Kind.
type BrainKind int

const (
	BrainNone BrainKind = iota
	BrainPursuit
	BrainPatrol
	BrainWander
	BrainErratic
	BrainOrbit
)

func (k BrainKind) String() string {
	switch k {
	case BrainPursuit:
		return "pursuit"
	case BrainPatrol:
		return "patrol"
	case BrainWander:
		return "wander"
	case BrainErratic:
		return "erratic"
	case BrainOrbit:
		return "orbit"
	default:
		return "none"
	}
}

// ParseBrainKind maps a balance-table name to a BrainKind.
func ParseBrainKind(s string) (BrainKind, bool) {
	switch s {
	case "pursuit":
		return BrainPursuit, true
	case "patrol":
		return BrainPatrol, true
	case "wander":
		return BrainWander, true
	case "erratic":
		return BrainErratic, true
	case "orbit":
		return BrainOrbit, true
	case "", "none":
		return BrainNone, true
	}
	return BrainNone, false
}

// PursuitMemory: head for the player with a perpendicular sway.
type PursuitMemory struct {
	SwayPhase     float64
	SwayRate      float64
	SwayAmplitude float64
}

// PatrolMemory: wander between nearby points until the player is detected,
// then chase for good.
type PatrolMemory struct {
	DetectionRadius      float64
	PatrolRadius         float64
	ArriveThreshold      float64
	AlertSpeedMultiplier float64

	Target    cp.Vector
	HasTarget bool
	Alerted   bool
}

// WanderMemory: follow quadratic bezier paths, sometimes orbiting the player.
type WanderMemory struct {
	PathDurationMin  float64
	PathDurationMax  float64
	WanderRadius     float64
	MaxSpeedFactor   float64
	OrbitChance      float64
	OrbitDurationMin float64
	OrbitDurationMax float64
	OrbitRadius      float64
	OrbitAngularRate float64

	Start    cp.Vector
	Control  cp.Vector
	Target   cp.Vector
	Duration float64
	Progress float64
	HasPath  bool

	Orbiting       bool
	OrbitRemaining float64
	OrbitAngle     float64

	PathsGenerated int
}

// ErraticMemory: short random dashes with a sinusoidal jitter.
type ErraticMemory struct {
	IntervalMin     float64
	IntervalMax     float64
	ChaseChance     float64
	JitterRate      float64
	JitterAmplitude float64

	Heading     cp.Vector
	Timer       float64
	JitterPhase float64
	Chasing     bool
}

// OrbitMemory: circle the player on an oscillating ring and shoot.
type OrbitMemory struct {
	BaseRadius      float64
	RadiusAmplitude float64
	OscillationRate float64
	AngularSpeed    float64
	FireSlack       float64

	Angle            float64
	OscillationPhase float64
	Direction        float64
	TargetPoint      cp.Vector
}

// Brain is the tagged archetype memory of an enemy.
type Brain struct {
	Kind    BrainKind
	Pursuit *PursuitMemory
	Patrol  *PatrolMemory
	Wander  *WanderMemory
	Erratic *ErraticMemory
	Orbit   *OrbitMemory

	// FireIntent is the weapon request computed this frame.
	FireIntent bool
}

var BrainComponent = NewComponent[Brain]()
