package game

import (
	"strconv"

	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/combat"
)

// DamageNPC removes amount health from npc without any player modifiers.
// It reports false and changes nothing when the NPC is invulnerable.
func (s *GameState) DamageNPC(npc *NPC, amount float64) (int, bool) {
	if npc.Invulnerable() {
		s.SpawnFloatingText(npc.Entity.Rect(), "immune", StyleBlocked)
		s.Feedback.Push(Feedback{Cue: CueBlocked, At: npc.Entity.Position()})
		return 0, false
	}
	lost := npc.Health.Lose(amount)
	s.SpawnFloatingText(npc.Entity.Rect(), strconv.Itoa(lost), StyleDamage)
	s.Feedback.Push(Feedback{Cue: CueHit, At: npc.Entity.Position()})
	return lost, true
}

// DealDamageToEnemy applies player-sourced damage scaled by the player's
// damage modifier and heals the player by its life steal. It reports whether
// damage was dealt, so callers only add secondary effects on a real hit.
func (s *GameState) DealDamageToEnemy(npc *NPC, base float64) bool {
	p := s.Player
	amount := combat.PlayerDamage(base, p.BaseDamageModifier, p.DamageModifierBonus)
	lost, ok := s.DamageNPC(npc, amount)
	if !ok {
		return false
	}
	if heal := p.Health.Gain(combat.LifeSteal(lost, p.LifeSteal)); heal > 0 {
		s.SpawnFloatingText(p.Entity.Rect(), "+"+strconv.Itoa(heal), StyleHeal)
	}
	s.NotifyEvent(buff.Event{Kind: buff.EventPlayerDealtDamage, Amount: lost})
	return true
}

// DealDamageToPlayer rolls armor mitigation against base and applies the
// result. A hit fully absorbed by armor is reported as blocked.
func (s *GameState) DealDamageToPlayer(base int) (lost int, blocked bool) {
	p := s.Player
	dmg, blocked := combat.MitigateArmor(s.Rand, base, p.Armor)
	if blocked {
		s.SpawnFloatingText(p.Entity.Rect(), "blocked", StyleBlocked)
		s.Feedback.Push(Feedback{Cue: CueBlocked, At: p.Entity.Position()})
		return 0, true
	}
	lost = p.Health.Lose(float64(dmg))
	s.SpawnFloatingText(p.Entity.Rect(), strconv.Itoa(lost), StylePlayerDamage)
	s.Feedback.Push(Feedback{Cue: CuePlayerHurt, At: p.Entity.Position()})
	s.Camera.Shake(float64(min(dmg, 8)))
	s.NotifyEvent(buff.Event{Kind: buff.EventPlayerDamaged, Amount: lost})
	return lost, false
}
