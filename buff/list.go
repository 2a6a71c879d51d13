package buff

import "fmt"

// List holds the active buffs of one target.
type List[C any] struct {
	active []*Active[C]
}

// Apply adds effect for durationMs. If a buff of the same type is already
// active, its remaining duration is replaced instead and effect is dropped.
func (l *List[C]) Apply(effect Effect[C], durationMs int) {
	if durationMs < 0 {
		panic(fmt.Sprintf("buff: negative duration %d for %s", durationMs, effect.Type()))
	}
	l.apply(effect, durationMs, false)
}

// ApplyInfinite adds effect with no expiry. It ends only when cancelled.
func (l *List[C]) ApplyInfinite(effect Effect[C]) {
	l.apply(effect, 0, true)
}

func (l *List[C]) apply(effect Effect[C], durationMs int, infinite bool) {
	if a, ok := l.Get(effect.Type()); ok {
		a.remaining = durationMs
		a.infinite = infinite
		a.cancelled = false
		return
	}
	l.active = append(l.active, &Active[C]{effect: effect, remaining: durationMs, infinite: infinite})
}

// Get returns the active buff of type t.
func (l *List[C]) Get(t Type) (*Active[C], bool) {
	for _, a := range l.active {
		if a.effect.Type() == t {
			return a, true
		}
	}
	return nil, false
}

func (l *List[C]) Has(t Type) bool {
	_, ok := l.Get(t)
	return ok
}

func (l *List[C]) Len() int {
	return len(l.active)
}

// All returns a snapshot of the active buffs.
func (l *List[C]) All() []*Active[C] {
	return append([]*Active[C](nil), l.active...)
}

// Cancel marks the buff of type t to end on the next tick.
func (l *List[C]) Cancel(t Type) bool {
	a, ok := l.Get(t)
	if !ok {
		return false
	}
	a.cancelled = true
	return true
}

// HandleEvent lets every active buff react to ev.
func (l *List[C]) HandleEvent(ev Event) {
	for _, a := range l.All() {
		r := a.effect.HandleEvent(ev)
		switch r.Kind {
		case ReactionNone:
		case ReactionCancel:
			a.cancelled = true
		case ReactionExtend:
			if !a.infinite {
				a.remaining += r.ExtendMs
			}
		default:
			panic(fmt.Sprintf("buff: unknown reaction %d from %s", r.Kind, a.effect.Type()))
		}
	}
}

// Tick advances every buff by elapsedMs. Durations are decremented first;
// then pending buffs get their start hook, running buffs their middle hook,
// and expired or cancelled buffs are removed and get their end hook.
func (l *List[C]) Tick(ctx C, elapsedMs int) {
	for _, a := range l.active {
		if !a.infinite {
			a.remaining -= elapsedMs
		}
	}

	var started, middle, ended []*Active[C]
	for _, a := range l.active {
		switch {
		case !a.started:
			started = append(started, a)
		case a.expired():
			ended = append(ended, a)
		default:
			middle = append(middle, a)
		}
	}

	for _, a := range started {
		a.started = true
		a.effect.ApplyStart(ctx)
	}
	for _, a := range middle {
		if a.effect.ApplyMiddle(ctx, elapsedMs) {
			a.cancelled = true
		}
	}

	if len(ended) == 0 {
		return
	}
	remaining := l.active[:0]
	for _, a := range l.active {
		if !contains(ended, a) {
			remaining = append(remaining, a)
		}
	}
	clear(l.active[len(remaining):])
	l.active = remaining
	for _, a := range ended {
		a.effect.ApplyEnd(ctx)
	}
}

// Clear drops every buff without running end hooks. Used when the target
// itself is removed from the world.
func (l *List[C]) Clear() {
	l.active = nil
}

func contains[C any](list []*Active[C], a *Active[C]) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
