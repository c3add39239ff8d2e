package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Enemy marks an enemy and names its archetype in the balance table.
type Enemy struct {
	Archetype string
	// Wave is the wave number that spawned the enemy, zero if spawned directly.
	Wave int
	// DropChance is the probability of leaving a pickup behind on death.
	DropChance float64
	// DropRolled is set once the drop chance has been rolled for this death.
	DropRolled bool
}

var EnemyComponent = NewComponent[Enemy]()
