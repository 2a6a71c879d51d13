package game

import "github.com/milk9111/ashvale/ecs"

// RemoveDeadNPCs drops every NPC at or below zero health and returns them in
// list order so the caller can award exp and loot.
func (s *GameState) RemoveDeadNPCs() []*NPC {
	dead := s.NPCs.Retain(func(_ ecs.Entity, npc *NPC) bool {
		return !npc.Dead()
	})
	for _, npc := range dead {
		npc.Buffs.Clear()
		s.Log.Debug("npc died", "id", npc.ID, "type", npc.Type)
	}
	return dead
}

// QueueRemoval marks an entity for removal by identity in the next
// RemoveQueued pass.
func (s *GameState) QueueRemoval(e ecs.Entity) {
	s.pending = append(s.pending, e)
}

// RemoveQueued removes every queued entity from whichever collection holds
// it. Handles that are already gone are ignored.
func (s *GameState) RemoveQueued() {
	pending := s.pending
	s.pending = nil
	for _, e := range pending {
		switch {
		case s.NPCs.Has(e):
			s.NPCs.MustGet(e).Buffs.Clear()
			s.NPCs.Remove(e)
		case s.Walls.Has(e):
			s.RemoveWall(e)
		case s.Projectiles.Remove(e),
			s.Loot.Remove(e),
			s.Chests.Remove(e),
			s.Portals.Remove(e),
			s.Decorations.Remove(e),
			s.Effects.Remove(e):
		}
	}
}

// RemoveExpired drops projectiles past their max age or outside the world,
// finished visual effects and opened chests.
func (s *GameState) RemoveExpired() {
	bounds := s.Bounds()
	s.Projectiles.Retain(func(_ ecs.Entity, p *Projectile) bool {
		return !p.Expired() && bounds.Intersects(p.Entity.Rect())
	})
	s.Effects.Retain(func(_ ecs.Entity, v *VisualEffect) bool {
		return !v.Expired()
	})
	s.Chests.Retain(func(_ ecs.Entity, c *Chest) bool {
		return !c.Opened
	})
}

// RemoveCollected drops picked-up loot and projectiles that hit something.
func (s *GameState) RemoveCollected() {
	s.Loot.Retain(func(_ ecs.Entity, l *LootPile) bool {
		return !l.Collected
	})
	s.Projectiles.Retain(func(_ ecs.Entity, p *Projectile) bool {
		return !p.Collided
	})
}
