package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

const stickDeadzone = 0.2

// controls is one frame of player input. It satisfies system.Input and
// system.Aimer; a zero Aim leaves aiming to the ship.
type controls struct {
	move cp.Vector
	aim  cp.Vector
	fire bool
	dash bool
}

func (c controls) Movement() cp.Vector { return c.move }
func (c controls) Fire() bool          { return c.fire }
func (c controls) Dash() bool          { return c.dash }
func (c controls) Aim() cp.Vector      { return c.aim }

// readControls polls keyboard, mouse and the first gamepad. ship is the
// player's position, used to turn the cursor into an aim direction.
func readControls(r *Renderer, ship cp.Vector) controls {
	var c controls

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		c.move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		c.move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		c.move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		c.move.Y -= 1
	}

	c.fire = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ)
	c.dash = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		c.fire = true
		mx, my := ebiten.CursorPosition()
		c.aim = r.toWorld(mx, my).Sub(ship)
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			c.move = cp.Vector{X: lx, Y: -ly}
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			c.aim = cp.Vector{X: rx, Y: -ry}
		}

		c.fire = c.fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		c.dash = c.dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	if c.move.LengthSq() > 1 {
		c.move = c.move.Normalize()
	}
	return c
}
