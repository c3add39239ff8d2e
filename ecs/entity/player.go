package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

// NewPlayer builds the player ship at pos.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, pos cp.Vector) (ecs.Entity, error) {
	weapon, err := weaponFromSpec(&spec.Weapon, projectile.OwnerPlayer)
	if err != nil {
		return 0, fmt.Errorf("player: weapon: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:      spec.Speed,
		DashMultiplier: spec.Dash.Multiplier,
		DashDuration:   spec.Dash.Duration,
		DashCooldown:   spec.Dash.Cooldown,
		DashIFrames:    spec.Dash.IFrames,
		DashDamage:     spec.Dash.Damage,
		Facing:         cp.Vector{X: 1},
		XPPerLevel:     spec.XPPerLevel,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.IntentComponent.Kind(), &component.Intent{}); err != nil {
		return 0, fmt.Errorf("player: add intent: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}

	health := component.NewHealth(spec.Health)
	health.IFrameDuration = spec.IFrames
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), health); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.StatsComponent.Kind(), &component.Stats{
		Speed:  spec.Speed,
		Damage: spec.Dash.Damage,
		Radius: spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("player: add stats: %w", err)
	}

	if err := ecs.Add(w, entity, component.LifecycleComponent.Kind(), component.NewLifecycle(phaseConfig(spec.Spawn), phaseConfig(spec.Death))); err != nil {
		return 0, fmt.Errorf("player: add lifecycle: %w", err)
	}

	if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), weapon); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}

	if spec.Heat != nil {
		if err := ecs.Add(w, entity, component.HeatComponent.Kind(), heatFromSpec(spec.Heat)); err != nil {
			return 0, fmt.Errorf("player: add heat: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: colorOf(spec.Color, colornames.Deepskyblue),
		Sides: 3,
	}); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}

	return entity, nil
}
