package ecs

// EventType identifies a simulation event.
type EventType string

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue drained once per frame by the driver.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Count returns how many queued events have the given type.
func (q *EventQueue) Count(t EventType) int {
	if q == nil {
		return 0
	}
	n := 0
	for _, e := range q.items {
		if e.Type == t {
			n++
		}
	}
	return n
}
