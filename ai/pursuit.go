// Package ai implements the NPC minds. Every mind steers through a shared
// pathfinder and acts on the world through the game package.
package ai

import (
	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
	"github.com/milk9111/ashvale/pathfind"
)

// StrayMs is how long a stray step lasts once rolled.
const StrayMs = 250

// pursuit wraps a path follower with the optional "stray from path" knob.
type pursuit struct {
	follower *pathfind.Follower
	stray    float64

	strayLeft int
	strayDir  common.Direction
}

func newPursuit(s *game.GameState, spec content.NPCSpec, stray float64) *pursuit {
	return &pursuit{
		follower: pathfind.NewFollower(s.Pathfinder, pathfind.FollowerConfig{RepathIntervalMs: spec.RepathMs}),
		stray:    stray,
	}
}

// moveToward sets the NPC walking toward target for this tick, or stops it
// when there is no usable direction.
func (p *pursuit) moveToward(s *game.GameState, npc *game.NPC, target common.Position, elapsedMs int) bool {
	agent := s.Agent(npc)
	dir, ok := p.follower.Update(agent, target, elapsedMs)
	if !ok {
		if dir, ok = closeIn(s, npc, target); !ok {
			npc.Entity.SetMoving(false)
			return false
		}
		npc.Entity.Face(dir)
		return true
	}

	if p.strayLeft > 0 {
		p.strayLeft -= elapsedMs
		if !agent.WouldCollide(p.strayDir, pathfind.DefaultLookaheadMs) {
			dir = p.strayDir
		}
	} else if p.stray > 0 && s.Rand.Float64() < p.stray {
		candidate := dir.Perpendicular()[s.Rand.Intn(2)]
		if !agent.WouldCollide(candidate, pathfind.DefaultLookaheadMs) {
			p.strayDir = candidate
			p.strayLeft = StrayMs
			dir = candidate
		}
	}
	npc.Entity.Face(dir)
	return true
}

// CloseInMargin is how near the target must be for an NPC whose path has run
// out to walk straight at it. The follower drops the target's own cell once
// it is within the closeness margin, and the cell may sit up to one cell
// off the target's corner.
const CloseInMargin = pathfind.DefaultClosenessMargin + common.CellWidth

// closeIn picks a direct heading toward a nearby target: the axis with the
// larger error first, skipping any axis where even a one-unit step is
// blocked.
func closeIn(s *game.GameState, npc *game.NPC, target common.Position) (common.Direction, bool) {
	pos := npc.Entity.Position()
	if common.Abs(target.X-pos.X) >= CloseInMargin || common.Abs(target.Y-pos.Y) >= CloseInMargin {
		return 0, false
	}
	bounds := s.Bounds()
	r := npc.Entity.Rect()
	for _, d := range common.Toward(pos, target) {
		dx, dy := d.Vector()
		next := r.At(pos.Add(dx, dy))
		if bounds.Contains(next) && !s.WouldCollide(npc.ID, next) {
			return d, true
		}
	}
	return 0, false
}

func (p *pursuit) stop(npc *game.NPC) {
	npc.Entity.SetMoving(false)
	p.follower.ForceRepath()
}

// cooldown counts down between attacks.
type cooldown struct {
	left int
}

func (c *cooldown) tick(elapsedMs int) {
	c.left = max(0, c.left-elapsedMs)
}

func (c *cooldown) ready() bool {
	return c.left <= 0
}

func (c *cooldown) start(ms int) {
	c.left = ms
}

// canSee reports whether the NPC notices the player.
func canSee(npc *game.NPC, player *game.Player, invisible bool) bool {
	if player == nil || invisible {
		return false
	}
	if npc.Spec.SightRange <= 0 {
		return true
	}
	return centerDistance(npc.Entity.Rect(), player.Entity.Rect()) <= float64(npc.Spec.SightRange)
}

func centerDistance(a, b common.Rect) float64 {
	return a.Center().Distance(b.Center())
}

// inReach reports whether a is within reach units of b, edge to edge.
func inReach(a, b common.Rect, reach int) bool {
	return a.Grow(reach).Intersects(b)
}

// strikePlayer performs a melee or bolt hit on the player and applies the
// NPC's on-hit buff when health was actually lost.
func strikePlayer(s *game.GameState, npc *game.NPC) {
	lost, _ := s.DealDamageToPlayer(npc.Spec.AttackDamage)
	if lost > 0 && npc.Spec.OnHitBuff != "" {
		s.ApplyBuff(s.Player.ID, s.Registry.NewBuff(buffType(npc.Spec.OnHitBuff)), npc.Spec.OnHitBuffMs)
	}
}

func buffType(name string) buff.Type {
	return buff.Type(name)
}
