package component

// PickupKind names a power-up.
type PickupKind string

const (
	PickupPower PickupKind = "power"
	PickupHeal  PickupKind = "heal"
)

// Pickup is a collectible left behind by a dead enemy. Remaining counts down
// in seconds; at zero the pickup disappears.
type Pickup struct {
	Kind      PickupKind
	Amount    int
	Radius    float64
	Remaining float64
}

var PickupComponent = NewComponent[Pickup]()
