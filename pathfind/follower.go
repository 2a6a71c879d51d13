package pathfind

import (
	"github.com/milk9111/ashvale/common"
)

const (
	DefaultRepathIntervalMs     = 800
	DefaultReevaluateIntervalMs = 1000
	DefaultClosenessMargin      = 50
	DefaultLookaheadMs          = 100
)

// FollowerConfig tunes how often a Follower re-plans and re-steers.
type FollowerConfig struct {
	RepathIntervalMs     int
	ReevaluateIntervalMs int
	ClosenessMargin      int
	LookaheadMs          int
}

// DefaultFollowerConfig returns the standard timings.
func DefaultFollowerConfig() FollowerConfig {
	return FollowerConfig{
		RepathIntervalMs:     DefaultRepathIntervalMs,
		ReevaluateIntervalMs: DefaultReevaluateIntervalMs,
		ClosenessMargin:      DefaultClosenessMargin,
		LookaheadMs:          DefaultLookaheadMs,
	}
}

func (c FollowerConfig) withDefaults() FollowerConfig {
	d := DefaultFollowerConfig()
	if c.RepathIntervalMs <= 0 {
		c.RepathIntervalMs = d.RepathIntervalMs
	}
	if c.ReevaluateIntervalMs <= 0 {
		c.ReevaluateIntervalMs = d.ReevaluateIntervalMs
	}
	if c.ClosenessMargin <= 0 {
		c.ClosenessMargin = d.ClosenessMargin
	}
	if c.LookaheadMs <= 0 {
		c.LookaheadMs = d.LookaheadMs
	}
	return c
}

// Agent is the moving entity a Follower steers.
type Agent interface {
	Rect() common.Rect
	// WouldCollide reports whether moving in dir for lookaheadMs would overlap
	// a wall or another entity.
	WouldCollide(dir common.Direction, lookaheadMs int) bool
}

// Follower turns a periodically refreshed path into one movement direction
// per tick.
type Follower struct {
	cfg FollowerConfig
	pf  *Pathfinder

	path        []common.Position
	repathTimer int
	reevalTimer int

	waypoint     common.Position
	hasWaypoint  bool
	direction    common.Direction
	hasDirection bool
}

func NewFollower(pf *Pathfinder, cfg FollowerConfig) *Follower {
	return &Follower{cfg: cfg.withDefaults(), pf: pf}
}

// SetPath replaces the current path.
func (f *Follower) SetPath(path []common.Position) {
	f.path = append(f.path[:0], path...)
	f.hasWaypoint = false
}

// Path returns the remaining waypoints.
func (f *Follower) Path() []common.Position {
	return f.path
}

// ForceRepath makes the next Update plan a new path.
func (f *Follower) ForceRepath() {
	f.repathTimer = 0
}

// Update advances the follower's timers and returns the direction the agent
// should move this tick. ok is false when the agent should stand still,
// including when no path to target exists.
func (f *Follower) Update(agent Agent, target common.Position, elapsedMs int) (common.Direction, bool) {
	f.repathTimer -= elapsedMs
	if f.repathTimer <= 0 {
		f.repathTimer = f.cfg.RepathIntervalMs
		if path, ok := f.pf.FindWorldPath(agent.Rect(), target); ok {
			f.SetPath(path)
		} else {
			f.path = f.path[:0]
			f.hasWaypoint = false
		}
	}

	wp, ok := f.NextWaypoint(agent.Rect().TopLeft())
	if !ok {
		f.hasWaypoint = false
		f.hasDirection = false
		return 0, false
	}

	f.reevalTimer -= elapsedMs
	stale := !f.hasWaypoint || wp != f.waypoint || f.reevalTimer <= 0 || !f.hasDirection ||
		agent.WouldCollide(f.direction, f.cfg.LookaheadMs)
	if stale {
		f.waypoint = wp
		f.hasWaypoint = true
		f.reevalTimer = f.cfg.ReevaluateIntervalMs
		f.direction, f.hasDirection = f.ChooseDirection(agent, wp)
	}
	return f.direction, f.hasDirection
}

// NextWaypoint pops waypoints the agent at pos no longer needs and returns
// the first remaining one. A waypoint is dropped when the agent is within the
// closeness margin of it, or when heading for it would mean turning around
// relative to the waypoint after it.
func (f *Follower) NextWaypoint(pos common.Position) (common.Position, bool) {
	for len(f.path) > 0 {
		first := f.path[0]
		if f.isClose(pos, first) {
			f.path = f.path[1:]
			continue
		}
		if len(f.path) >= 2 {
			d0, ok0 := primaryDirection(pos, first)
			d1, ok1 := primaryDirection(pos, f.path[1])
			if ok0 && ok1 && d0 == d1.Opposite() {
				f.path = f.path[1:]
				continue
			}
		}
		return first, true
	}
	return common.Position{}, false
}

func (f *Follower) isClose(a, b common.Position) bool {
	return common.Abs(a.X-b.X) < f.cfg.ClosenessMargin && common.Abs(a.Y-b.Y) < f.cfg.ClosenessMargin
}

// ChooseDirection tries the axis with the larger error toward waypoint, then
// the other axis, projecting a short move along each for collisions. It
// returns false when every candidate is blocked.
func (f *Follower) ChooseDirection(agent Agent, waypoint common.Position) (common.Direction, bool) {
	for _, d := range common.Toward(agent.Rect().TopLeft(), waypoint) {
		if !agent.WouldCollide(d, f.cfg.LookaheadMs) {
			return d, true
		}
	}
	return 0, false
}

func primaryDirection(from, to common.Position) (common.Direction, bool) {
	dirs := common.Toward(from, to)
	if len(dirs) == 0 {
		return 0, false
	}
	return dirs[0], true
}
