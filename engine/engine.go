// Package engine drives the simulation. Tick runs the fixed per-frame
// sequence over a GameState and the action methods translate player input
// into state changes.
package engine

import (
	"github.com/milk9111/ashvale/game"
)

// AnimationCycleMs is the length of one walk cycle.
const AnimationCycleMs = 600

// System is one step of the frame sequence.
type System interface {
	Update(s *game.GameState, elapsedMs int)
}

// SystemFunc adapts a function to System.
type SystemFunc func(s *game.GameState, elapsedMs int)

func (f SystemFunc) Update(s *game.GameState, elapsedMs int) {
	f(s, elapsedMs)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(state *game.GameState, elapsedMs int) {
	for _, system := range s.systems {
		system.Update(state, elapsedMs)
	}
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Status is the outcome of a tick.
type Status int

const (
	Running Status = iota
	PlayerDied
)

func (s Status) String() string {
	if s == PlayerDied {
		return "player died"
	}
	return "running"
}

// Engine owns the game state and advances it one tick at a time. It is not
// safe for concurrent use.
type Engine struct {
	State *game.GameState

	scheduler *Scheduler
	ticks     uint64
}

// New wraps a state that already has a player.
func New(s *game.GameState) *Engine {
	if s == nil || s.Player == nil {
		panic("engine: state has no player")
	}
	return &Engine{
		State: s,
		scheduler: NewScheduler(
			SystemFunc(runMinds),
			SystemFunc(ageProjectiles),
			SystemFunc(ageEffects),
			SystemFunc(decayShake),
			SystemFunc(reapDead),
			SystemFunc(removeExpired),
			SystemFunc(tickBuffs),
			SystemFunc(tickPassives),
			SystemFunc(regenerate),
			SystemFunc(animate),
			SystemFunc(move),
			SystemFunc(repositionEffects),
			SystemFunc(collide),
			SystemFunc(followCamera),
		),
	}
}

// Tick advances the world by elapsedMs and reports whether the player died.
func (e *Engine) Tick(elapsedMs int) Status {
	if elapsedMs < 0 {
		panic("engine: negative tick")
	}
	e.scheduler.Update(e.State, elapsedMs)
	e.ticks++
	if e.State.PlayerDead() {
		return PlayerDied
	}
	return Running
}

// Ticks returns how many ticks have run.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}
