package engine

import (
	"github.com/milk9111/ashvale/component"
	"github.com/milk9111/ashvale/game"
)

// GainExp adds exp to the player and applies every level threshold it
// crosses. Each level-up raises max health and mana to the level's values,
// on top of equipment bonuses, and refills both.
func GainExp(s *game.GameState, amount int) {
	if amount <= 0 {
		return
	}
	p := s.Player
	p.Exp += amount
	levels := s.Registry.Tables.Levels
	for p.Level < len(levels) && p.Exp >= levels[p.Level].Exp {
		prev, next := levels[p.Level-1], levels[p.Level]
		p.Level++
		adjustMax(p.Health, next.MaxHealth-prev.MaxHealth)
		adjustMax(p.Mana, next.MaxMana-prev.MaxMana)
		p.Health.GainToMax()
		p.Mana.GainToMax()
		s.SpawnFloatingText(p.Entity.Rect(), "level up!", game.StyleInfo)
		s.Feedback.Push(game.Feedback{Cue: game.CueLevelUp, At: p.Entity.Position()})
		s.Log.Info("level up", "level", p.Level, "exp", p.Exp)
	}
}

func adjustMax(r *component.Resource, delta int) {
	switch {
	case delta > 0:
		r.IncreaseMax(delta)
	case delta < 0:
		r.DecreaseMax(-delta)
	}
}

// ExpToNextLevel returns how much exp the player still needs, or false at
// the level cap.
func ExpToNextLevel(s *game.GameState) (int, bool) {
	p := s.Player
	levels := s.Registry.Tables.Levels
	if p.Level >= len(levels) {
		return 0, false
	}
	return levels[p.Level].Exp - p.Exp, true
}
