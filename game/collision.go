package game

import (
	"fmt"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
)

// WouldCollide reports whether r overlaps any blocking entity other than
// self. Asking about a box outside the world is a caller bug.
func (s *GameState) WouldCollide(self ecs.Entity, r common.Rect) bool {
	if !s.Bounds().Contains(r) {
		panic(fmt.Sprintf("game: collision test for %v outside world %dx%d", r, s.Width, s.Height))
	}
	return s.collides(self, r)
}

// collides tests r against the player, every NPC, nearby walls, portals and
// chests.
func (s *GameState) collides(self ecs.Entity, r common.Rect) bool {
	if s.Player != nil && self != s.Player.ID && s.Player.Entity.Rect().Intersects(r) {
		return true
	}
	for id, npc := range s.NPCs.All() {
		if id != self && npc.Entity.Rect().Intersects(r) {
			return true
		}
	}
	for _, w := range s.WallsNear(r.TopLeft()) {
		if w.ID != self && w.Entity.Rect().Intersects(r) {
			return true
		}
	}
	for id, p := range s.Portals.All() {
		if id != self && p.Entity.Rect().Intersects(r) {
			return true
		}
	}
	for id, c := range s.Chests.All() {
		if id != self && c.Entity.Rect().Intersects(r) {
			return true
		}
	}
	return false
}

// MoveIfLegal clamps p into the world and moves the entity there if the new
// box overlaps nothing. It reports whether the move happened.
func (s *GameState) MoveIfLegal(self ecs.Entity, e *WorldEntity, p common.Position) bool {
	candidate := s.clampIntoWorld(e.Rect().At(p))
	if candidate == e.Rect() {
		return true
	}
	if s.collides(self, candidate) {
		return false
	}
	e.SetPosition(candidate.TopLeft())
	return true
}

// Advance moves a walking entity along its facing direction for elapsedMs.
// When the full step is blocked it closes the gap unit by unit. It returns
// false if the entity could not move at all.
func (s *GameState) Advance(self ecs.Entity, e *WorldEntity, elapsedMs int) bool {
	if !e.Moving() {
		return true
	}
	dist, carry := e.step(elapsedMs)
	if dist == 0 {
		e.carry = carry
		return true
	}
	dx, dy := e.Direction().Vector()
	start := e.Position()
	for d := dist; d > 0; d-- {
		if s.MoveIfLegal(self, e, start.Add(dx*d, dy*d)) {
			if d == dist {
				e.carry = carry
			} else {
				e.carry = 0
			}
			return e.Position() != start
		}
	}
	e.carry = 0
	return false
}

// AdvanceProjectile moves a projectile without any collision check.
func (s *GameState) AdvanceProjectile(p *Projectile, elapsedMs int) {
	dist, carry := p.Entity.step(elapsedMs)
	p.Entity.carry = carry
	if dist == 0 {
		return
	}
	dx, dy := p.Entity.Direction().Vector()
	p.Entity.SetPosition(p.Entity.Position().Add(dx*dist, dy*dist))
}
