package ecs

import (
	"fmt"
	"iter"
)

// Arena stores values of one kind keyed by entity handle. Iteration follows
// insertion order and removal preserves the order of the remaining values.
type Arena[T any] struct {
	alloc  *Allocator
	dense  []Entity
	values []*T
	sparse []int
}

// NewArena creates an arena drawing handles from alloc. A nil allocator gives
// the arena its own.
func NewArena[T any](alloc *Allocator) *Arena[T] {
	if alloc == nil {
		alloc = NewAllocator()
	}
	return &Arena[T]{alloc: alloc}
}

// Insert stores v and returns its new handle.
func (a *Arena[T]) Insert(v *T) Entity {
	if v == nil {
		panic("ecs: insert nil value")
	}
	e := a.alloc.create()
	idx := int(e.id()) - 1
	for len(a.sparse) <= idx {
		a.sparse = append(a.sparse, -1)
	}
	a.dense = append(a.dense, e)
	a.values = append(a.values, v)
	a.sparse[idx] = len(a.dense) - 1
	return e
}

func (a *Arena[T]) slot(e Entity) (int, bool) {
	if a == nil || !a.alloc.IsAlive(e) {
		return 0, false
	}
	idx := int(e.id()) - 1
	if idx >= len(a.sparse) {
		return 0, false
	}
	pos := a.sparse[idx]
	if pos < 0 || pos >= len(a.dense) || a.dense[pos] != e {
		return 0, false
	}
	return pos, true
}

// Has reports whether e is stored in this arena.
func (a *Arena[T]) Has(e Entity) bool {
	_, ok := a.slot(e)
	return ok
}

// Get returns the value for e.
func (a *Arena[T]) Get(e Entity) (*T, bool) {
	pos, ok := a.slot(e)
	if !ok {
		return nil, false
	}
	return a.values[pos], true
}

// MustGet returns the value for e and panics if the handle is stale.
func (a *Arena[T]) MustGet(e Entity) *T {
	v, ok := a.Get(e)
	if !ok {
		panic(fmt.Sprintf("ecs: stale handle %s", e))
	}
	return v
}

// Remove deletes e, invalidating its handle.
func (a *Arena[T]) Remove(e Entity) bool {
	pos, ok := a.slot(e)
	if !ok {
		return false
	}
	a.sparse[int(e.id())-1] = -1
	a.dense = append(a.dense[:pos], a.dense[pos+1:]...)
	a.values = append(a.values[:pos], a.values[pos+1:]...)
	for i := pos; i < len(a.dense); i++ {
		a.sparse[int(a.dense[i].id())-1] = i
	}
	a.alloc.destroy(e)
	return true
}

// Retain keeps the values for which keep returns true and removes the rest in
// a single pass. The removed values are returned in their original order.
func (a *Arena[T]) Retain(keep func(Entity, *T) bool) []*T {
	if a == nil {
		return nil
	}
	var removed []*T
	n := 0
	for i, e := range a.dense {
		v := a.values[i]
		if keep(e, v) {
			a.dense[n] = e
			a.values[n] = v
			a.sparse[int(e.id())-1] = n
			n++
			continue
		}
		removed = append(removed, v)
		a.sparse[int(e.id())-1] = -1
		a.alloc.destroy(e)
	}
	clear(a.dense[n:])
	clear(a.values[n:])
	a.dense = a.dense[:n]
	a.values = a.values[:n]
	return removed
}

func (a *Arena[T]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.dense)
}

// All iterates over the values present when iteration starts. Values inserted
// during iteration are not visited. Removing values while iterating is not
// supported; use Retain.
func (a *Arena[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		if a == nil {
			return
		}
		n := len(a.dense)
		for i := 0; i < n && i < len(a.dense); i++ {
			if !yield(a.dense[i], a.values[i]) {
				return
			}
		}
	}
}

// Entities returns a copy of the handle list in iteration order.
func (a *Arena[T]) Entities() []Entity {
	if a == nil {
		return nil
	}
	return append([]Entity(nil), a.dense...)
}
