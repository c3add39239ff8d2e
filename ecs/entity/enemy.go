package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

// EnemyOptions tweak an archetype for the wave that spawns it.
type EnemyOptions struct {
	Wave int
	// HealthScale multiplies the archetype health; zero means 1.
	HealthScale float64
}

// NewEnemy builds the named archetype at pos. Nothing is created when the
// archetype is unknown or misconfigured.
func NewEnemy(w *ecs.World, balance *prefabs.Balance, archetype string, pos cp.Vector, opts EnemyOptions) (ecs.Entity, error) {
	spec, err := balance.Archetype(archetype)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	brain, err := brainFromSpec(spec.Behavior)
	if err != nil {
		return 0, fmt.Errorf("enemy: %s: %w", archetype, err)
	}
	var weapon *component.Weapon
	if spec.Weapon != nil {
		if weapon, err = weaponFromSpec(spec.Weapon, projectile.OwnerEnemy); err != nil {
			return 0, fmt.Errorf("enemy: %s: %w", archetype, err)
		}
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Archetype:  archetype,
		Wave:       opts.Wave,
		DropChance: spec.DropChance,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.BrainComponent.Kind(), brain); err != nil {
		return 0, fmt.Errorf("enemy: add brain: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("enemy: add velocity: %w", err)
	}

	scale := opts.HealthScale
	if scale <= 0 {
		scale = 1
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(int(math.Round(float64(spec.Health)*scale)))); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.StatsComponent.Kind(), &component.Stats{
		Speed:   spec.Speed,
		Damage:  spec.Damage,
		XPValue: spec.XPValue,
		Radius:  spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add stats: %w", err)
	}

	if err := ecs.Add(w, entity, component.LifecycleComponent.Kind(), component.NewLifecycle(phaseConfig(spec.Spawn), phaseConfig(spec.Death))); err != nil {
		return 0, fmt.Errorf("enemy: add lifecycle: %w", err)
	}

	if weapon != nil {
		if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), weapon); err != nil {
			return 0, fmt.Errorf("enemy: add weapon: %w", err)
		}
	}

	if spec.Heat != nil {
		if err := ecs.Add(w, entity, component.HeatComponent.Kind(), heatFromSpec(spec.Heat)); err != nil {
			return 0, fmt.Errorf("enemy: add heat: %w", err)
		}
	}

	if spec.Beam != nil {
		if err := ecs.Add(w, entity, component.BeamComponent.Kind(), beamFromSpec(spec.Beam)); err != nil {
			return 0, fmt.Errorf("enemy: add beam: %w", err)
		}
	}

	if spec.DeathScript != "" {
		if err := ecs.Add(w, entity, component.DeathScriptComponent.Kind(), &component.DeathScript{Path: spec.DeathScript}); err != nil {
			return 0, fmt.Errorf("enemy: add death script: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: colorOf(spec.Color, colornames.Crimson),
		Sides: spec.Sides,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add appearance: %w", err)
	}

	return entity, nil
}
