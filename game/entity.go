// Package game holds the authoritative world state: every live entity, the
// static geometry indexes, and the operations that mutate them while keeping
// those indexes consistent.
package game

import (
	"math"

	"github.com/milk9111/ashvale/common"
)

// WorldEntity is the physical presence of anything in the world. Its rect
// only changes through the setters below.
type WorldEntity struct {
	rect      common.Rect
	sprite    string
	direction common.Direction
	baseSpeed float64
	speedMul  float64
	moving    bool
	animation float64
	carry     float64
}

// NewWorldEntity places an entity with the given box and base speed in world
// units per second.
func NewWorldEntity(r common.Rect, sprite string, speed float64) WorldEntity {
	return WorldEntity{rect: r, sprite: sprite, direction: common.Down, baseSpeed: speed, speedMul: 1}
}

func (e *WorldEntity) Rect() common.Rect           { return e.rect }
func (e *WorldEntity) Position() common.Position   { return e.rect.TopLeft() }
func (e *WorldEntity) Sprite() string              { return e.sprite }
func (e *WorldEntity) Direction() common.Direction { return e.direction }
func (e *WorldEntity) Moving() bool                { return e.moving }
func (e *WorldEntity) Animation() float64          { return e.animation }

func (e *WorldEntity) SetPosition(p common.Position) {
	e.rect = e.rect.At(p)
}

// SetDirection turns the entity. Sub-unit movement carried over from earlier
// ticks is dropped when the direction changes.
func (e *WorldEntity) SetDirection(d common.Direction) {
	if d != e.direction {
		e.carry = 0
	}
	e.direction = d
}

func (e *WorldEntity) SetMoving(moving bool) {
	if !moving {
		e.carry = 0
	}
	e.moving = moving
}

// Face turns toward d and starts moving.
func (e *WorldEntity) Face(d common.Direction) {
	e.SetDirection(d)
	e.SetMoving(true)
}

func (e *WorldEntity) BaseSpeed() float64       { return e.baseSpeed }
func (e *WorldEntity) SetBaseSpeed(v float64)   { e.baseSpeed = v }
func (e *WorldEntity) SpeedMultiplier() float64 { return e.speedMul }

// AdjustSpeedMultiplier adds delta to the multiplier. Sources stack
// additively and undo themselves by passing the negated delta.
func (e *WorldEntity) AdjustSpeedMultiplier(delta float64) {
	e.speedMul += delta
}

// Speed is the effective speed in world units per second, never negative.
func (e *WorldEntity) Speed() float64 {
	return max(0, e.baseSpeed*e.speedMul)
}

// AdvanceAnimation moves the looping animation progress forward by one
// cycleMs-long cycle's share of elapsedMs. Progress stays in [0,1).
func (e *WorldEntity) AdvanceAnimation(elapsedMs, cycleMs int) {
	if cycleMs <= 0 {
		return
	}
	e.animation += float64(elapsedMs) / float64(cycleMs)
	e.animation -= math.Floor(e.animation)
}

// step returns how many whole units the entity travels this tick and the
// fraction to carry into the next one.
func (e *WorldEntity) step(elapsedMs int) (int, float64) {
	dist := e.carry + e.Speed()*float64(elapsedMs)/1000
	whole := math.Floor(dist)
	return int(whole), dist - whole
}

// DistanceIn returns how far the entity would travel in ms at its current
// speed, at least one unit.
func (e *WorldEntity) DistanceIn(ms int) int {
	return max(1, int(e.Speed()*float64(ms)/1000))
}
