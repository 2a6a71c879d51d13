package ai

import (
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

// FollowDistance is how close a summon stays to the player when idle.
const FollowDistance = 60

// Summon fights the nearest visible enemy for the player and otherwise
// trails behind it. It disappears once its lifetime runs out.
type Summon struct {
	pursuit *pursuit
	attack  cooldown
}

func NewSummon(s *game.GameState, spec content.NPCSpec) *Summon {
	return &Summon{pursuit: newPursuit(s, spec, 0)}
}

func (m *Summon) Control(s *game.GameState, npc *game.NPC, player *game.Player, _ bool, elapsedMs int) {
	npc.AgeMs += elapsedMs
	if npc.Spec.LifetimeMs > 0 && npc.AgeMs >= npc.Spec.LifetimeMs {
		npc.Entity.SetMoving(false)
		s.QueueRemoval(npc.ID)
		return
	}
	m.attack.tick(elapsedMs)

	if target := nearestEnemy(s, npc); target != nil {
		if inReach(npc.Entity.Rect(), target.Entity.Rect(), npc.Spec.AttackRange) {
			npc.Entity.SetMoving(false)
			if m.attack.ready() {
				m.attack.start(npc.Spec.CooldownMs)
				s.DamageNPC(target, float64(npc.Spec.AttackDamage))
			}
			return
		}
		m.pursuit.moveToward(s, npc, target.Entity.Position(), elapsedMs)
		return
	}

	if player == nil || centerDistance(npc.Entity.Rect(), player.Entity.Rect()) <= FollowDistance {
		m.pursuit.stop(npc)
		return
	}
	m.pursuit.moveToward(s, npc, player.Entity.Position(), elapsedMs)
}

func nearestEnemy(s *game.GameState, npc *game.NPC) *game.NPC {
	var best *game.NPC
	var bestDist float64
	for _, other := range s.NPCs.All() {
		if !other.Enemy || other.Dead() {
			continue
		}
		d := centerDistance(npc.Entity.Rect(), other.Entity.Rect())
		if npc.Spec.SightRange > 0 && d > float64(npc.Spec.SightRange) {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}
