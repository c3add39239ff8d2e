package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// Bounds returns the arena rectangle for spec, anchored at the origin.
func Bounds(spec prefabs.ArenaSpec) cp.BB {
	return cp.BB{L: 0, B: 0, R: spec.Width, T: spec.Height}
}

// Center returns the middle of the arena.
func Center(spec prefabs.ArenaSpec) cp.Vector {
	return cp.Vector{X: spec.Width / 2, Y: spec.Height / 2}
}

// NewArena creates the entity carrying the world bounds.
func NewArena(w *ecs.World, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{BB: Bounds(spec)}); err != nil {
		return 0, fmt.Errorf("arena: add bounds: %w", err)
	}
	return entity, nil
}
