package component

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/projectile"
)

// PatternKind names a fire pattern.
type PatternKind string

const (
	PatternAimed  PatternKind = "aimed"
	PatternSpread PatternKind = "spread"
	PatternRadial PatternKind = "radial"
)

// FirePattern is one volley shape. A weapon fires every pattern it carries on
// each shot.
type FirePattern struct {
	Kind PatternKind
	// Count is bullets per volley; spread adds one bullet per weapon level.
	Count int
	// Cone is the full spread angle in radians at level zero.
	Cone float64
	// Narrowing shrinks the cone as the level rises: Cone/(1+Narrowing*level).
	Narrowing float64
	// Spin rotates a radial volley by this many radians after each shot.
	Spin float64

	Offset float64
}

// Weapon is the cadence and burst state of one firing entity.
type Weapon struct {
	FireRate  float64
	FireTimer float64

	BurstCount     int
	BurstInterval  float64
	BurstTimer     float64
	BurstRemaining int

	ProjectileSpeed    float64
	ProjectileRadius   float64
	ProjectileLifetime float64
	Damage             int
	Owner              projectile.Owner

	Patterns []FirePattern
	Level    int
	MaxLevel int

	// Intent is the fire request for this frame.
	Intent bool
	// Aim is the direction of the next volley; zero means "toward the player".
	Aim cp.Vector

	ShotsFired   int
	VolleysFired int
}

// Bursting reports whether a burst is in progress.
func (w *Weapon) Bursting() bool {
	return w != nil && w.BurstRemaining > 0
}

var WeaponComponent = NewComponent[Weapon]()

// Heat gates continuous fire. Heat rises by PerShot for every bullet and
// decays continuously; at Max the weapon locks until heat is back to zero.
type Heat struct {
	Current           float64
	Max               float64
	PerShot           float64
	DecayRate         float64
	OverheatDecayRate float64
	Overheated        bool

	Overheats int
}

// Fraction returns Current/Max in [0,1].
func (h *Heat) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	f := h.Current / h.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

var HeatComponent = NewComponent[Heat]()

// BeamPhase is the stage of a beam attack.
type BeamPhase int

const (
	BeamIdle BeamPhase = iota
	BeamCharging
	BeamExtending
	BeamHolding
	BeamRetracting
)

func (p BeamPhase) String() string {
	switch p {
	case BeamCharging:
		return "charging"
	case BeamExtending:
		return "extending"
	case BeamHolding:
		return "holding"
	case BeamRetracting:
		return "retracting"
	default:
		return "idle"
	}
}

// Beam is a charge, extend, hold, retract attack. Only the hold phase deals
// damage.
type Beam struct {
	Cooldown        float64
	ChargeDuration  float64
	ExtendDuration  float64
	HoldDuration    float64
	RetractDuration float64
	MaxLength       float64
	HalfWidth       float64
	ChargeFraction  float64
	Damage          int
	TickInterval    float64
	PulseRate       float64

	Phase         BeamPhase
	PhaseTimer    float64
	CooldownTimer float64
	TickTimer     float64

	Origin    cp.Vector
	Direction cp.Vector
	Length    float64
	Opacity   float64
	Intensity float64

	Fired int
	Hits  int
}

// Firing reports whether the beam is anywhere past idle.
func (b *Beam) Firing() bool {
	return b != nil && b.Phase != BeamIdle
}

// Enter switches to phase and restarts the phase timer.
func (b *Beam) Enter(phase BeamPhase) {
	b.Phase = phase
	b.PhaseTimer = 0
}

var BeamComponent = NewComponent[Beam]()
