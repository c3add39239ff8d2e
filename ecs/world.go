package ecs

import (
	"github.com/milk9111/arena/ecs/component"
)

// System updates a world once per frame. dt is the frame's elapsed time in
// seconds.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component storage and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	frame    uint64
	time     float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It returns
// false when e was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Entities returns every live entity in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent stores v for e under the component id.
func (w *World) AddComponent(e Entity, id component.ComponentID, v any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, v)
	return nil
}

// RemoveComponent deletes the component id from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e)
	return v, v != nil
}

// HasComponent reports whether e carries the component id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// Query returns the live entities carrying every listed kind, in the dense
// order of the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	var out []Entity
	for _, e := range smallest.denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.denseEntities {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Advance records that a frame of dt seconds has been simulated.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	w.frame++
	w.time += dt
}

// Frame returns the number of simulated frames.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Time returns the simulated time in seconds.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.time
}

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity destroys e in w.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is alive in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities lists the live entities of w.
func Entities(w *World) []Entity {
	return w.Entities()
}

// First returns the first live entity in w carrying kind.
func First(w *World, kind component.Kind) (Entity, bool) {
	return w.First(kind)
}
