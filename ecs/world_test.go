package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/arena/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		create  int
		destroy []int
	}{
		{name: "single", create: 1, destroy: []int{0}},
		{name: "destroy_middle", create: 3, destroy: []int{1}},
		{name: "none", create: 2},
		{name: "all", create: 3, destroy: []int{2, 0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for range c.create {
				ents = append(ents, CreateEntity(w))
			}
			for _, i := range c.destroy {
				if !DestroyEntity(w, ents[i]) {
					t.Fatalf("DestroyEntity(%v) should succeed", ents[i])
				}
				if IsAlive(w, ents[i]) || DestroyEntity(w, ents[i]) {
					t.Fatalf("entity %v should be dead", ents[i])
				}
			}
			if want := c.create - len(c.destroy); w.Len() != want || len(Entities(w)) != want {
				t.Fatalf("live entities: len=%d entities=%d want %d", w.Len(), len(Entities(w)), want)
			}
		})
	}
}

func TestRecycledIDIsNewEntity(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() || fresh == old {
		t.Fatalf("expected a recycled id with a new generation: old=%v fresh=%v", old, fresh)
	}
	if Has(w, fresh, kind) {
		t.Fatalf("recycled entity inherited a component")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle still resolves")
	}
	if err := Add(w, old, kind, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add to stale handle: got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponentKind[int]()
	strs := component.NewComponentKind[string]()
	e := CreateEntity(w)

	if err := Add[int](w, e, ints, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil component: got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: got %v", err)
	}

	if err := Add(w, e, ints, intPtr(10)); err != nil {
		t.Fatal(err)
	}
	v, ok := Get(w, e, ints)
	if !ok || *v != 10 {
		t.Fatalf("get: %v %v", v, ok)
	}
	*v = 11
	if v, _ := Get(w, e, ints); *v != 11 {
		t.Fatalf("components should be stored by pointer")
	}
	if Has(w, e, strs) {
		t.Fatalf("unexpected string component")
	}
	if !Remove(w, e, ints) || Remove(w, e, ints) || Has(w, e, ints) {
		t.Fatalf("remove should succeed once")
	}
}

func TestQueryAndForEach(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	e1, e2, e3, e4 := CreateEntity(w), CreateEntity(w), CreateEntity(w), CreateEntity(w)
	for _, add := range []struct {
		e    Entity
		kind component.ComponentKind[int]
	}{
		{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb}, {e3, kc}, {e4, kc},
	} {
		if err := Add(w, add.e, add.kind, intPtr(int(add.e.id()))); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{name: "single", kinds: []component.Kind{ka}, want: []Entity{e1, e2}},
		{name: "pair", kinds: []component.Kind{kb, kc}, want: []Entity{e2, e3}},
		{name: "triple", kinds: []component.Kind{ka, kb, kc}, want: []Entity{e2}},
		{name: "missing_store", kinds: []component.Kind{ka, component.NewComponentKind[int]()}},
		{name: "no_kinds"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := w.Query(c.kinds...)
			if len(got) != len(c.want) {
				t.Fatalf("got %v want %v", got, c.want)
			}
			seen := map[Entity]bool{}
			for _, e := range got {
				seen[e] = true
			}
			for _, e := range c.want {
				if !seen[e] {
					t.Fatalf("missing %v in %v", e, got)
				}
			}
		})
	}

	var res []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, a, b, c *int) {
		if *a != *b || *b != *c {
			t.Fatalf("values mixed up: %d %d %d", *a, *b, *c)
		}
		res = append(res, e)
	})
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("ForEach3: got %v", res)
	}

	DestroyEntity(w, e2)
	res = res[:0]
	ForEach2(w, kb, kc, func(e Entity, _, _ *int) { res = append(res, e) })
	if len(res) != 1 || res[0] != e3 {
		t.Fatalf("ForEach2 after destroy: got %v", res)
	}
}

func TestForEachToleratesDestroy(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := range 5 {
		if err := Add(w, CreateEntity(w), kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 5 || w.Len() != 0 {
		t.Fatalf("visited=%d live=%d", visited, w.Len())
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	if _, ok := First(w, kind); ok {
		t.Fatalf("empty world has no first")
	}
	a, b := CreateEntity(w), CreateEntity(w)
	_ = Add(w, a, kind, intPtr(1))
	_ = Add(w, b, kind, intPtr(2))
	if e, ok := First(w, kind); !ok || e != a {
		t.Fatalf("first: got %v", e)
	}
	DestroyEntity(w, a)
	if e, ok := First(w, kind); !ok || e != b {
		t.Fatalf("first after destroy: got %v", e)
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: "hit"})
	q.Push(Event{Type: "kill", Data: 3})
	q.Push(Event{Type: "hit"})

	if q.Len() != 3 || q.Count("hit") != 2 {
		t.Fatalf("len=%d hits=%d", q.Len(), q.Count("hit"))
	}
	got := q.Drain()
	if len(got) != 3 || got[1].Type != "kill" || got[1].Data != 3 {
		t.Fatalf("drain order: %v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{Type: "x"})
	if nilQueue.Len() != 0 {
		t.Fatalf("nil queue should stay empty")
	}
}

type recordSystem struct {
	name  string
	order *[]string
}

func (s recordSystem) Update(_ *World, _ float64) { *s.order = append(*s.order, s.name) }

func TestSchedulerOrderAndClock(t *testing.T) {
	var order []string
	sched := NewScheduler(recordSystem{"a", &order}, nil, recordSystem{"b", &order})
	sched.Add(recordSystem{"c", &order})
	w := NewWorld()

	sched.Update(w, 0.25)
	sched.Update(w, 0.25)

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order: got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: got %v want %v", order, want)
		}
	}
	if w.Frame() != 2 || w.Time() != 0.5 {
		t.Fatalf("clock: frame=%d time=%v", w.Frame(), w.Time())
	}
	if len(sched.Systems()) != 3 {
		t.Fatalf("systems: %d", len(sched.Systems()))
	}
}
