// Package buff runs timed status effects. A buff moves through
// pending-start, active and ended: its start hook runs exactly once on the
// first tick it is processed, its middle hook runs on every later tick while
// it is active, and its end hook runs exactly once after it leaves the list.
package buff

// Type identifies a kind of buff. At most one buff of a type is active per
// target.
type Type string

// EventKind names a gameplay event buffs can react to.
type EventKind int

const (
	EventPlayerDamaged EventKind = iota + 1
	EventPlayerUsedAbility
	EventPlayerDealtDamage
	EventEnemyDied
)

// Event is dispatched synchronously to every active buff of a target.
type Event struct {
	Kind    EventKind
	Ability string
	Amount  int
}

type ReactionKind int

const (
	ReactionNone ReactionKind = iota
	ReactionCancel
	ReactionExtend
)

// Reaction is a buff's answer to an event.
type Reaction struct {
	Kind     ReactionKind
	ExtendMs int
}

var NoReaction = Reaction{}

func Cancel() Reaction {
	return Reaction{Kind: ReactionCancel}
}

// Extend adds ms to the remaining duration. Negative values shorten it.
func Extend(ms int) Reaction {
	return Reaction{Kind: ReactionExtend, ExtendMs: ms}
}

// Effect is the behaviour of one buff instance. C is the context handed to
// the hooks, typically the game state plus the buffed target.
type Effect[C any] interface {
	Type() Type
	ApplyStart(ctx C)
	// ApplyMiddle runs every tick after the start tick. Returning true asks
	// for the buff to be cancelled; the cancellation is honoured on the next
	// tick.
	ApplyMiddle(ctx C, elapsedMs int) bool
	ApplyEnd(ctx C)
	HandleEvent(ev Event) Reaction
}

// Base supplies no-op hooks for effects that only need some of them.
type Base[C any] struct{}

func (Base[C]) ApplyStart(C)                {}
func (Base[C]) ApplyMiddle(C, int) bool     { return false }
func (Base[C]) ApplyEnd(C)                  {}
func (Base[C]) HandleEvent(Event) Reaction { return NoReaction }

// Active pairs an effect with its remaining duration and lifecycle flags.
type Active[C any] struct {
	effect    Effect[C]
	remaining int
	infinite  bool
	started   bool
	cancelled bool
}

func (a *Active[C]) Effect() Effect[C] { return a.effect }

// Remaining returns the milliseconds left; ok is false for infinite buffs.
func (a *Active[C]) Remaining() (ms int, ok bool) {
	return a.remaining, !a.infinite
}

func (a *Active[C]) Started() bool   { return a.started }
func (a *Active[C]) Cancelled() bool { return a.cancelled }

func (a *Active[C]) expired() bool {
	return a.cancelled || (!a.infinite && a.remaining <= 0)
}
