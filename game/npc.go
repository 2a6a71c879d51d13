package game

import (
	"fmt"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/component"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/pathfind"
)

// Mind drives one NPC. It runs once per tick while the NPC is near the camera
// and not stunned, and acts by mutating the NPC's movement state or by
// calling into the world.
type Mind interface {
	Control(s *GameState, npc *NPC, player *Player, playerInvisible bool, elapsedMs int)
}

// NPC is any non-player character: enemies, neutral critters and the
// player's summons.
type NPC struct {
	ID     ecs.Entity
	Type   string
	Spec   content.NPCSpec
	Entity WorldEntity
	Health *component.Resource
	Stun   component.Stun
	Buffs  BuffList
	Mind   Mind

	Enemy   bool
	Neutral bool
	Summon  bool

	Home  common.Position
	AgeMs int

	invulnerable int
}

func (n *NPC) Dead() bool {
	return n.Health.IsAtOrBelowZero()
}

func (n *NPC) Invulnerable() bool {
	return n.invulnerable > 0
}

// AddInvulnerability nests one more source of invulnerability.
func (n *NPC) AddInvulnerability() {
	n.invulnerable++
}

func (n *NPC) RemoveInvulnerability() {
	if n.invulnerable == 0 {
		panic(fmt.Sprintf("game: npc %s invulnerability count would go negative", n.ID))
	}
	n.invulnerable--
}

// CreateNPC builds an NPC of the registered type with its top-left at pos.
func (s *GameState) CreateNPC(typ string, pos common.Position) *NPC {
	spec := s.Registry.MustNPC(typ)
	npc := &NPC{
		Type:    typ,
		Spec:    spec,
		Entity:  NewWorldEntity(common.NewRect(pos.X, pos.Y, spec.Width, spec.Height), spec.Sprite, spec.Speed),
		Health:  component.NewResource(spec.MaxHealth, spec.HealthRegen),
		Enemy:   spec.Enemy,
		Neutral: spec.Neutral,
		Summon:  spec.Summon,
		Home:    pos,
	}
	if spec.Invulnerable {
		npc.AddInvulnerability()
	}
	npc.Mind = s.Registry.MustMind(spec.Mind)(s, spec)
	npc.ID = s.NPCs.Insert(npc)
	return npc
}

// SpawnNPC creates an NPC at pos only if the spot is free.
func (s *GameState) SpawnNPC(typ string, pos common.Position) (*NPC, bool) {
	spec := s.Registry.MustNPC(typ)
	r := common.NewRect(pos.X, pos.Y, spec.Width, spec.Height)
	if !s.Bounds().Contains(r) || s.WouldCollide(ecs.None, r) {
		return nil, false
	}
	return s.CreateNPC(typ, pos), true
}

// Agent adapts an NPC to the pathfinding follower.
func (s *GameState) Agent(npc *NPC) pathfind.Agent {
	return npcAgent{s: s, npc: npc}
}

type npcAgent struct {
	s   *GameState
	npc *NPC
}

func (a npcAgent) Rect() common.Rect {
	return a.npc.Entity.Rect()
}

func (a npcAgent) WouldCollide(dir common.Direction, lookaheadMs int) bool {
	dx, dy := dir.Vector()
	dist := a.npc.Entity.DistanceIn(lookaheadMs)
	r := a.npc.Entity.Rect()
	r = r.At(r.TopLeft().Add(dx*dist, dy*dist))
	if !a.s.Bounds().Contains(r) {
		return true
	}
	return a.s.WouldCollide(a.npc.ID, r)
}
