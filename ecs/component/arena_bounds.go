package component

import "github.com/jakecoffman/cp"

// ArenaBounds stores the world-space rectangle of the arena. One entity
// carries it.
type ArenaBounds struct {
	BB cp.BB
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
