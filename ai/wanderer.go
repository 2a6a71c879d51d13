package ai

import (
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

// Wanderer ambles around at random, pausing between walks. It ignores the
// player.
type Wanderer struct {
	leftMs  int
	walking bool
}

func NewWanderer(*game.GameState, content.NPCSpec) *Wanderer {
	return &Wanderer{}
}

func (w *Wanderer) Control(s *game.GameState, npc *game.NPC, _ *game.Player, _ bool, elapsedMs int) {
	w.leftMs -= elapsedMs
	agent := s.Agent(npc)
	if w.walking && agent.WouldCollide(npc.Entity.Direction(), 100) {
		w.leftMs = 0
	}
	if w.leftMs > 0 {
		return
	}

	if w.walking {
		w.walking = false
		npc.Entity.SetMoving(false)
		w.leftMs = 600 + s.Rand.Intn(800)
		return
	}

	var open []common.Direction
	for _, d := range common.Directions {
		if !agent.WouldCollide(d, 100) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		w.leftMs = 500
		return
	}
	w.walking = true
	npc.Entity.Face(open[s.Rand.Intn(len(open))])
	w.leftMs = 800 + s.Rand.Intn(800)
}
