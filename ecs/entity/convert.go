package entity

import (
	"fmt"
	"image/color"
	"maps"
	"math"

	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

// phaseConfig copies a transition spec. A nil spec yields nil, which the
// lifecycle treats as an instant, vulnerable transition.
func phaseConfig(spec *prefabs.PhaseSpec) *component.PhaseConfig {
	if spec == nil {
		return nil
	}
	return &component.PhaseConfig{
		Duration:     spec.Duration,
		Invulnerable: spec.Invulnerable,
		Hints:        maps.Clone(spec.Hints),
	}
}

func weaponFromSpec(spec *prefabs.WeaponSpec, owner projectile.Owner) (*component.Weapon, error) {
	wp := &component.Weapon{
		FireRate:           spec.FireRate,
		BurstCount:         spec.BurstCount,
		BurstInterval:      spec.BurstInterval,
		ProjectileSpeed:    spec.ProjectileSpeed,
		ProjectileRadius:   spec.ProjectileRadius,
		ProjectileLifetime: spec.ProjectileLifetime,
		Damage:             spec.Damage,
		Owner:              owner,
		MaxLevel:           spec.MaxLevel,
	}
	if spec.StartReady {
		wp.FireTimer = spec.FireRate
	}
	for _, p := range spec.Patterns {
		kind := component.PatternKind(p.Kind)
		switch kind {
		case component.PatternAimed, component.PatternSpread, component.PatternRadial:
		default:
			return nil, fmt.Errorf("%w: %q", prefabs.ErrUnknownPattern, p.Kind)
		}
		wp.Patterns = append(wp.Patterns, component.FirePattern{
			Kind:      kind,
			Count:     p.Count,
			Cone:      degrees(p.Cone),
			Narrowing: p.Narrowing,
			Spin:      degrees(p.Spin),
		})
	}
	if len(wp.Patterns) == 0 {
		wp.Patterns = []component.FirePattern{{Kind: component.PatternAimed, Count: 1}}
	}
	return wp, nil
}

func heatFromSpec(spec *prefabs.HeatSpec) *component.Heat {
	return &component.Heat{
		Max:               spec.Max,
		PerShot:           spec.PerShot,
		DecayRate:         spec.DecayRate,
		OverheatDecayRate: spec.OverheatDecayRate,
	}
}

func beamFromSpec(spec *prefabs.BeamSpec) *component.Beam {
	return &component.Beam{
		Cooldown:        spec.Cooldown,
		ChargeDuration:  spec.ChargeDuration,
		ExtendDuration:  spec.ExtendDuration,
		HoldDuration:    spec.HoldDuration,
		RetractDuration: spec.RetractDuration,
		MaxLength:       spec.Length,
		HalfWidth:       spec.HalfWidth,
		ChargeFraction:  spec.ChargeFraction,
		Damage:          spec.Damage,
		TickInterval:    spec.TickInterval,
		PulseRate:       spec.PulseRate,
		// first charge waits a full cooldown after spawning
		CooldownTimer: spec.Cooldown,
	}
}

// brainFromSpec builds the tagged memory for a behavior. Only the variant
// matching the kind is populated.
func brainFromSpec(spec prefabs.BehaviorSpec) (*component.Brain, error) {
	kind, ok := component.ParseBrainKind(spec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", prefabs.ErrUnknownBehavior, spec.Kind)
	}

	b := &component.Brain{Kind: kind}
	switch kind {
	case component.BrainPursuit:
		b.Pursuit = &component.PursuitMemory{
			SwayRate:      spec.SwayRate,
			SwayAmplitude: spec.SwayAmplitude,
		}
	case component.BrainPatrol:
		b.Patrol = &component.PatrolMemory{
			DetectionRadius:      spec.DetectionRadius,
			PatrolRadius:         spec.PatrolRadius,
			ArriveThreshold:      spec.ArriveThreshold,
			AlertSpeedMultiplier: spec.AlertSpeedMultiplier,
		}
	case component.BrainWander:
		b.Wander = &component.WanderMemory{
			PathDurationMin:  spec.PathDurationMin,
			PathDurationMax:  spec.PathDurationMax,
			WanderRadius:     spec.WanderRadius,
			MaxSpeedFactor:   spec.MaxSpeedFactor,
			OrbitChance:      spec.OrbitChance,
			OrbitDurationMin: spec.OrbitDurationMin,
			OrbitDurationMax: spec.OrbitDurationMax,
			OrbitRadius:      spec.OrbitRadius,
			OrbitAngularRate: spec.OrbitAngularRate,
		}
	case component.BrainErratic:
		b.Erratic = &component.ErraticMemory{
			IntervalMin:     spec.IntervalMin,
			IntervalMax:     spec.IntervalMax,
			ChaseChance:     spec.ChaseChance,
			JitterRate:      spec.JitterRate,
			JitterAmplitude: spec.JitterAmplitude,
		}
	case component.BrainOrbit:
		b.Orbit = &component.OrbitMemory{
			BaseRadius:      spec.BaseRadius,
			RadiusAmplitude: spec.RadiusAmplitude,
			OscillationRate: spec.OscillationRate,
			AngularSpeed:    spec.AngularSpeed,
			FireSlack:       spec.FireSlack,
		}
	}
	return b, nil
}

func colorOf(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
