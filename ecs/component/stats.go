package component

// Stats are the per-entity numbers copied from the balance table at build time.
type Stats struct {
	Speed   float64
	Damage  int
	XPValue int
	Radius  float64
}

var StatsComponent = NewComponent[Stats]()
