package effects

import (
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

const VigorIntervalMs = 2000

// Vigor heals the player one point every VigorIntervalMs while equipped.
type Vigor struct {
	sinceMs int
}

func (v *Vigor) Tick(s *game.GameState, elapsedMs int) {
	v.sinceMs += elapsedMs
	for v.sinceMs >= VigorIntervalMs {
		v.sinceMs -= VigorIntervalMs
		if s.Player.Health.Gain(1) > 0 {
			s.SpawnFloatingText(s.Player.Entity.Rect(), "+1", game.StyleHeal)
		}
	}
}

func newVigor(content.ItemSpec) game.ItemEffect {
	return &Vigor{}
}
