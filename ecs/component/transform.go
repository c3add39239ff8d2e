package component

import "github.com/jakecoffman/cp"

// Transform is the entity position on the arena plane.
type Transform struct {
	Position cp.Vector
	// Rotation is a facing angle for the renderer; the simulation never reads it.
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is written by exactly one controller per frame (AI, player control
// or a death script) and integrated by the movement system.
type Velocity struct {
	Value cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
