package component

// Stun is a nesting counter. Several sources may stun the same target; the
// target stays stunned until every source has released it.
type Stun struct {
	count int
}

func (s *Stun) Add() {
	s.count++
}

// Remove releases one stun. Releasing more stuns than were added is a bug in
// the caller and panics.
func (s *Stun) Remove() {
	if s.count <= 0 {
		panic("component: stun count would go negative")
	}
	s.count--
}

func (s *Stun) Active() bool {
	return s.count > 0
}

func (s *Stun) Count() int {
	return s.count
}
