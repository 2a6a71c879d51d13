package ecs

// Allocator hands out entity handles and tracks which are alive. Several
// arenas may share one allocator so handles stay unique across collections.
type Allocator struct {
	gen  []generation
	free []entityID
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

func (s *Allocator) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gen = append(s.gen, 0)
		id = entityID(len(s.gen))
	}
	return makeEntity(id, s.gen[id-1])
}

// Create allocates a handle that is not stored in any arena, e.g. for the player.
func (s *Allocator) Create() Entity {
	return s.create()
}

func (s *Allocator) destroy(e Entity) bool {
	if !s.IsAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

// IsAlive reports whether a handle is still valid.
func (s *Allocator) IsAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.gen) {
		return false
	}
	return s.gen[e.id()-1] == e.generation()
}
