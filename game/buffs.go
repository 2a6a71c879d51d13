package game

import (
	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/component"
	"github.com/milk9111/ashvale/ecs"
)

// BuffContext is handed to every buff hook. NPC is nil when the target is
// the player.
type BuffContext struct {
	State  *GameState
	Target ecs.Entity
	NPC    *NPC
}

type (
	BuffEffect = buff.Effect[*BuffContext]
	BuffList   = buff.List[*BuffContext]
	BuffBase   = buff.Base[*BuffContext]
)

func (c *BuffContext) IsPlayer() bool {
	return c.NPC == nil
}

func (c *BuffContext) Entity() *WorldEntity {
	if c.NPC != nil {
		return &c.NPC.Entity
	}
	return &c.State.Player.Entity
}

func (c *BuffContext) Stun() *component.Stun {
	if c.NPC != nil {
		return &c.NPC.Stun
	}
	return &c.State.Player.Stun
}

func (c *BuffContext) Health() *component.Resource {
	if c.NPC != nil {
		return c.NPC.Health
	}
	return c.State.Player.Health
}

// ApplyBuff adds effect to the buff list of target for durationMs.
func (s *GameState) ApplyBuff(target ecs.Entity, effect BuffEffect, durationMs int) bool {
	list, ok := s.buffsOf(target)
	if !ok {
		return false
	}
	list.Apply(effect, durationMs)
	return true
}

// ApplyInfiniteBuff adds an effect that lasts until cancelled.
func (s *GameState) ApplyInfiniteBuff(target ecs.Entity, effect BuffEffect) bool {
	list, ok := s.buffsOf(target)
	if !ok {
		return false
	}
	list.ApplyInfinite(effect)
	return true
}

func (s *GameState) buffsOf(target ecs.Entity) (*BuffList, bool) {
	if s.Player != nil && target == s.Player.ID {
		return &s.Player.Buffs, true
	}
	if npc, ok := s.NPCs.Get(target); ok {
		return &npc.Buffs, true
	}
	return nil, false
}

// TickBuffs advances the player's buffs and then every NPC's.
func (s *GameState) TickBuffs(elapsedMs int) {
	if s.Player != nil {
		s.Player.Buffs.Tick(&BuffContext{State: s, Target: s.Player.ID}, elapsedMs)
	}
	for id, npc := range s.NPCs.All() {
		npc.Buffs.Tick(&BuffContext{State: s, Target: id, NPC: npc}, elapsedMs)
	}
}

// NotifyEvent dispatches ev synchronously to every active buff.
func (s *GameState) NotifyEvent(ev buff.Event) {
	if s.Player != nil {
		s.Player.Buffs.HandleEvent(ev)
	}
	for _, npc := range s.NPCs.All() {
		npc.Buffs.HandleEvent(ev)
	}
}
