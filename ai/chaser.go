package ai

import (
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

// Chaser walks toward a visible player and hits it in melee range.
type Chaser struct {
	pursuit *pursuit
	attack  cooldown
}

func NewChaser(s *game.GameState, spec content.NPCSpec, stray float64) *Chaser {
	return &Chaser{pursuit: newPursuit(s, spec, stray)}
}

func (c *Chaser) Control(s *game.GameState, npc *game.NPC, player *game.Player, invisible bool, elapsedMs int) {
	c.attack.tick(elapsedMs)
	if !canSee(npc, player, invisible) {
		c.pursuit.stop(npc)
		return
	}
	if inReach(npc.Entity.Rect(), player.Entity.Rect(), npc.Spec.AttackRange) {
		npc.Entity.SetMoving(false)
		if c.attack.ready() {
			c.attack.start(npc.Spec.CooldownMs)
			strikePlayer(s, npc)
		}
		return
	}
	c.pursuit.moveToward(s, npc, player.Entity.Position(), elapsedMs)
}
