package component

import "image/color"

// Appearance carries render hints only; nothing in the simulation reads it.
type Appearance struct {
	Color color.Color
	Sides int
}

var AppearanceComponent = NewComponent[Appearance]()
