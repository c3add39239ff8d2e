package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// NewPickup drops a power-up at pos.
func NewPickup(w *ecs.World, spec prefabs.PickupSpec, kind component.PickupKind, pos cp.Vector) (ecs.Entity, error) {
	amount := 1
	appearance := &component.Appearance{Color: colornames.Gold, Sides: 4}
	if kind == component.PickupHeal {
		amount = max(spec.HealAmount, 1)
		appearance = &component.Appearance{Color: colornames.Limegreen, Sides: 0}
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Kind:      kind,
		Amount:    amount,
		Radius:    spec.Radius,
		Remaining: spec.Lifetime,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), appearance); err != nil {
		return 0, fmt.Errorf("pickup: add appearance: %w", err)
	}

	return entity, nil
}
