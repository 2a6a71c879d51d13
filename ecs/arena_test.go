package ecs

import "testing"

type sample struct {
	name string
}

func TestArenaEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewArena[sample](nil)
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, a.Insert(&sample{name: string(rune('a' + i))}))
			}
			if a.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, a.Len())
			}
			if c.destroyIndex >= 0 {
				if !a.Remove(ents[c.destroyIndex]) {
					t.Fatalf("Remove should return true for live entity")
				}
				if a.Has(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be present after removal")
				}
				if a.Remove(ents[c.destroyIndex]) {
					t.Fatalf("second Remove should return false")
				}
			}
		})
	}
}

func TestArenaStaleHandleAfterReuse(t *testing.T) {
	a := NewArena[sample](nil)
	first := a.Insert(&sample{name: "first"})
	a.Remove(first)
	second := a.Insert(&sample{name: "second"})

	if first.id() != second.id() {
		t.Fatalf("expected slot reuse, got %s and %s", first, second)
	}
	if _, ok := a.Get(first); ok {
		t.Fatalf("stale handle must not resolve")
	}
	v, ok := a.Get(second)
	if !ok || v.name != "second" {
		t.Fatalf("expected second value, got %v ok=%v", v, ok)
	}
}

func TestArenaRemovePreservesOrder(t *testing.T) {
	a := NewArena[sample](nil)
	var ents []Entity
	for _, n := range []string{"a", "b", "c", "d"} {
		ents = append(ents, a.Insert(&sample{name: n}))
	}
	a.Remove(ents[1])

	var got string
	for _, v := range a.All() {
		got += v.name
	}
	if got != "acd" {
		t.Fatalf("expected acd, got %s", got)
	}
	if v := a.MustGet(ents[3]); v.name != "d" {
		t.Fatalf("index of shifted value not updated: %s", v.name)
	}
}

func TestArenaRetain(t *testing.T) {
	a := NewArena[sample](nil)
	var ents []Entity
	for _, n := range []string{"keep1", "drop1", "keep2", "drop2"} {
		ents = append(ents, a.Insert(&sample{name: n}))
	}

	removed := a.Retain(func(_ Entity, s *sample) bool {
		return s.name[:4] == "keep"
	})

	if len(removed) != 2 || removed[0].name != "drop1" || removed[1].name != "drop2" {
		t.Fatalf("unexpected removed values: %v", removed)
	}
	if a.Len() != 2 {
		t.Fatalf("expected 2 remaining, got %d", a.Len())
	}
	if a.Has(ents[1]) || a.Has(ents[3]) {
		t.Fatalf("dropped handles still present")
	}
	if a.MustGet(ents[2]).name != "keep2" {
		t.Fatalf("kept handle resolves to wrong value")
	}
}

func TestArenaSharedAllocator(t *testing.T) {
	alloc := NewAllocator()
	a := NewArena[sample](alloc)
	b := NewArena[int](alloc)

	ea := a.Insert(&sample{name: "x"})
	v := 7
	eb := b.Insert(&v)

	if ea == eb {
		t.Fatalf("handles from a shared allocator must be unique")
	}
	if a.Has(eb) || b.Has(ea) {
		t.Fatalf("arena must not resolve handles owned by another arena")
	}
}

func TestArenaAllSkipsInsertedDuringIteration(t *testing.T) {
	a := NewArena[sample](nil)
	a.Insert(&sample{name: "a"})
	a.Insert(&sample{name: "b"})

	visited := 0
	for range a.All() {
		visited++
		a.Insert(&sample{name: "late"})
	}
	if visited != 2 {
		t.Fatalf("expected 2 visits, got %d", visited)
	}
	if a.Len() != 4 {
		t.Fatalf("expected 4 values after iteration, got %d", a.Len())
	}
}
