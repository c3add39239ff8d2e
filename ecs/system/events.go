package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	EventEnemyKilled     ecs.EventType = "enemy_killed"
	EventEnemyHit        ecs.EventType = "enemy_hit"
	EventPlayerHit       ecs.EventType = "player_hit"
	EventPlayerDied      ecs.EventType = "player_died"
	EventLevelUp         ecs.EventType = "level_up"
	EventOverheated      ecs.EventType = "overheated"
	EventPickupCollected ecs.EventType = "pickup_collected"
	EventWaveStarted     ecs.EventType = "wave_started"
	EventRemoved         ecs.EventType = "removed"
)

type KillInfo struct {
	Archetype string
	XP        int
	Position  cp.Vector
}

type HitInfo struct {
	Damage    int
	Remaining int
}

type PickupInfo struct {
	Kind   component.PickupKind
	Amount int
}

type WaveInfo struct {
	Number int
	Cycle  int
}

func push(w *ecs.World, t ecs.EventType, e ecs.Entity, data any) {
	w.Events().Push(ecs.Event{Type: t, Entity: e, Data: data})
}
