package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownArchetype = errors.New("prefabs: unknown archetype")
	ErrUnknownBehavior  = errors.New("prefabs: unknown behavior")
	ErrUnknownPattern   = errors.New("prefabs: unknown fire pattern")
)

// BalanceFile is the default balance table name.
const BalanceFile = "balance.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Balance is the read-only table of numbers the simulation is tuned by.
type Balance struct {
	Arena      ArenaSpec                `yaml:"arena"`
	Player     PlayerSpec               `yaml:"player"`
	Archetypes map[string]ArchetypeSpec `yaml:"archetypes"`
	Pickups    PickupSpec               `yaml:"pickups"`
	Waves      []WaveSpec               `yaml:"waves"`
	// Escalation multiplies enemy health by 1+Escalation*cycle once the wave
	// table has been played through.
	Escalation float64 `yaml:"escalation"`
}

// LoadBalance loads and validates a balance table.
func LoadBalance(filename string) (*Balance, error) {
	b, err := LoadSpec[Balance](filename)
	if err != nil {
		return nil, err
	}
	b.applyDefaults()
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &b, nil
}

// ParseBalance decodes a balance table from raw yaml.
func ParseBalance(data []byte) (*Balance, error) {
	var b Balance
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal balance: %w", err)
	}
	b.applyDefaults()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Archetype returns the named archetype.
func (b *Balance) Archetype(name string) (ArchetypeSpec, error) {
	if b == nil {
		return ArchetypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	a, ok := b.Archetypes[name]
	if !ok {
		return ArchetypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return a, nil
}

// Validate checks cross references; numeric fields are not range checked,
// a misconfigured value just behaves as its default.
func (b *Balance) Validate() error {
	for name, a := range b.Archetypes {
		if !knownBehavior(a.Behavior.Kind) {
			return fmt.Errorf("%w: %q in archetype %q", ErrUnknownBehavior, a.Behavior.Kind, name)
		}
		if a.Weapon != nil {
			for _, p := range a.Weapon.Patterns {
				if !knownPattern(p.Kind) {
					return fmt.Errorf("%w: %q in archetype %q", ErrUnknownPattern, p.Kind, name)
				}
			}
		}
	}
	for _, p := range b.Player.Weapon.Patterns {
		if !knownPattern(p.Kind) {
			return fmt.Errorf("%w: %q in player weapon", ErrUnknownPattern, p.Kind)
		}
	}
	for i, w := range b.Waves {
		for _, s := range w.Spawns {
			if _, ok := b.Archetypes[s.Archetype]; !ok {
				return fmt.Errorf("%w: %q in wave %d", ErrUnknownArchetype, s.Archetype, i+1)
			}
		}
	}
	return nil
}

func (b *Balance) applyDefaults() {
	if b.Arena.Width <= 0 {
		b.Arena.Width = 60
	}
	if b.Arena.Height <= 0 {
		b.Arena.Height = 40
	}
	if b.Arena.ProjectileMargin <= 0 {
		b.Arena.ProjectileMargin = 4
	}
	if b.Player.Health <= 0 {
		b.Player.Health = 1
	}
	if b.Player.Radius <= 0 {
		b.Player.Radius = 0.5
	}
	if b.Pickups.Lifetime <= 0 {
		b.Pickups.Lifetime = 10
	}
	if b.Pickups.Radius <= 0 {
		b.Pickups.Radius = 0.4
	}
}

func knownBehavior(kind string) bool {
	switch kind {
	case "", "none", "pursuit", "patrol", "wander", "erratic", "orbit":
		return true
	}
	return false
}

func knownPattern(kind string) bool {
	switch kind {
	case "aimed", "spread", "radial":
		return true
	}
	return false
}

type ArenaSpec struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	ProjectileMargin float64 `yaml:"projectile_margin"`
	MinSpawnDistance float64 `yaml:"min_spawn_distance"`
}

type PhaseSpec struct {
	Duration     float64        `yaml:"duration"`
	Invulnerable bool           `yaml:"invulnerable"`
	Hints        map[string]any `yaml:"hints"`
}

type DashSpec struct {
	Multiplier float64 `yaml:"multiplier"`
	Duration   float64 `yaml:"duration"`
	Cooldown   float64 `yaml:"cooldown"`
	IFrames    float64 `yaml:"iframes"`
	Damage     int     `yaml:"damage"`
}

type PlayerSpec struct {
	Health     int        `yaml:"health"`
	Radius     float64    `yaml:"radius"`
	Speed      float64    `yaml:"speed"`
	IFrames    float64    `yaml:"iframes"`
	XPPerLevel int        `yaml:"xp_per_level"`
	Color      *YAMLColor `yaml:"color"`
	Spawn      *PhaseSpec `yaml:"spawn"`
	Death      *PhaseSpec `yaml:"death"`
	Dash       DashSpec   `yaml:"dash"`
	Weapon     WeaponSpec `yaml:"weapon"`
	Heat       *HeatSpec  `yaml:"heat"`
}

type PatternSpec struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
	// Cone and Spin are in degrees.
	Cone      float64 `yaml:"cone"`
	Narrowing float64 `yaml:"narrowing"`
	Spin      float64 `yaml:"spin"`
}

type WeaponSpec struct {
	FireRate           float64       `yaml:"fire_rate"`
	BurstCount         int           `yaml:"burst_count"`
	BurstInterval      float64       `yaml:"burst_interval"`
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	ProjectileRadius   float64       `yaml:"projectile_radius"`
	ProjectileLifetime float64       `yaml:"projectile_lifetime"`
	Damage             int           `yaml:"damage"`
	StartReady         bool          `yaml:"start_ready"`
	MaxLevel           int           `yaml:"max_level"`
	Patterns           []PatternSpec `yaml:"patterns"`
}

type HeatSpec struct {
	Max               float64 `yaml:"max"`
	PerShot           float64 `yaml:"per_shot"`
	DecayRate         float64 `yaml:"decay_rate"`
	OverheatDecayRate float64 `yaml:"overheat_decay_rate"`
}

type BeamSpec struct {
	Cooldown        float64 `yaml:"cooldown"`
	ChargeDuration  float64 `yaml:"charge_duration"`
	ExtendDuration  float64 `yaml:"extend_duration"`
	HoldDuration    float64 `yaml:"hold_duration"`
	RetractDuration float64 `yaml:"retract_duration"`
	Length          float64 `yaml:"length"`
	HalfWidth       float64 `yaml:"half_width"`
	ChargeFraction  float64 `yaml:"charge_fraction"`
	Damage          int     `yaml:"damage"`
	TickInterval    float64 `yaml:"tick_interval"`
	PulseRate       float64 `yaml:"pulse_rate"`
}

// BehaviorSpec carries the knobs of every movement strategy; only the ones
// matching Kind are read.
type BehaviorSpec struct {
	Kind string `yaml:"kind"`

	SwayRate      float64 `yaml:"sway_rate"`
	SwayAmplitude float64 `yaml:"sway_amplitude"`

	DetectionRadius      float64 `yaml:"detection_radius"`
	PatrolRadius         float64 `yaml:"patrol_radius"`
	ArriveThreshold      float64 `yaml:"arrive_threshold"`
	AlertSpeedMultiplier float64 `yaml:"alert_speed_multiplier"`

	PathDurationMin  float64 `yaml:"path_duration_min"`
	PathDurationMax  float64 `yaml:"path_duration_max"`
	WanderRadius     float64 `yaml:"wander_radius"`
	MaxSpeedFactor   float64 `yaml:"max_speed_factor"`
	OrbitChance      float64 `yaml:"orbit_chance"`
	OrbitDurationMin float64 `yaml:"orbit_duration_min"`
	OrbitDurationMax float64 `yaml:"orbit_duration_max"`
	OrbitRadius      float64 `yaml:"orbit_radius"`
	OrbitAngularRate float64 `yaml:"orbit_angular_rate"`

	IntervalMin     float64 `yaml:"interval_min"`
	IntervalMax     float64 `yaml:"interval_max"`
	ChaseChance     float64 `yaml:"chase_chance"`
	JitterRate      float64 `yaml:"jitter_rate"`
	JitterAmplitude float64 `yaml:"jitter_amplitude"`

	BaseRadius      float64 `yaml:"base_radius"`
	RadiusAmplitude float64 `yaml:"radius_amplitude"`
	OscillationRate float64 `yaml:"oscillation_rate"`
	AngularSpeed    float64 `yaml:"angular_speed"`
	FireSlack       float64 `yaml:"fire_slack"`
}

type ArchetypeSpec struct {
	Health      int          `yaml:"health"`
	Speed       float64      `yaml:"speed"`
	Damage      int          `yaml:"damage"`
	XPValue     int          `yaml:"xp_value"`
	Radius      float64      `yaml:"radius"`
	DropChance  float64      `yaml:"drop_chance"`
	Color       *YAMLColor   `yaml:"color"`
	Sides       int          `yaml:"sides"`
	Behavior    BehaviorSpec `yaml:"behavior"`
	Weapon      *WeaponSpec  `yaml:"weapon"`
	Heat        *HeatSpec    `yaml:"heat"`
	Beam        *BeamSpec    `yaml:"beam"`
	Spawn       *PhaseSpec   `yaml:"spawn"`
	Death       *PhaseSpec   `yaml:"death"`
	DeathScript string       `yaml:"death_script"`
}

type PickupSpec struct {
	Radius     float64 `yaml:"radius"`
	Lifetime   float64 `yaml:"lifetime"`
	HealAmount int     `yaml:"heal_amount"`
	// PowerWeight is the share of drops that are weapon power-ups; the rest heal.
	PowerWeight float64 `yaml:"power_weight"`
}

type WaveSpawnSpec struct {
	Archetype string `yaml:"archetype"`
	Count     int    `yaml:"count"`
}

type WaveSpec struct {
	Delay  float64         `yaml:"delay"`
	Spawns []WaveSpawnSpec `yaml:"spawns"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
