package effects

import (
	"errors"
	"strconv"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

const (
	ProjectileSpeed = 300
	ProjectileSize  = 10
	SlashMs         = 150
)

var ErrNoRoom = errors.New("no room to summon")

func projectileAge(rangeUnits int) int {
	return rangeUnits * 1000 / ProjectileSpeed
}

// MeleeSwing hits every enemy in a strip in front of the player.
func MeleeSwing(s *game.GameState, spec content.AbilitySpec) error {
	p := s.Player
	dir := p.Entity.Direction()
	r := p.Entity.Rect()
	w, h := spec.Range, r.H
	if dir == common.Up || dir == common.Down {
		w, h = r.W, spec.Range
	}
	area := game.LaunchRect(r, dir, w, h)
	for _, npc := range s.NPCs.All() {
		if npc.Enemy && npc.Entity.Rect().Intersects(area) {
			s.DealDamageToEnemy(npc, spec.Damage)
		}
	}
	off := area.TopLeft()
	s.AttachEffect(p.ID, "slash", common.Position{X: area.W, Y: area.H}, common.Position{X: off.X - r.X, Y: off.Y - r.Y}, SlashMs, true)
	return nil
}

func FireballAbility(s *game.GameState, spec content.AbilitySpec) error {
	p := s.Player
	dir := p.Entity.Direction()
	ctrl := Fireball{
		ProjectileBase: game.ProjectileBase{MaxAge: projectileAge(spec.Range)},
		Damage:         spec.Damage,
		BurnMs:         spec.DurationMs,
		BurnPerSec:     spec.Amount,
	}
	s.SpawnProjectile(p.ID, game.LaunchRect(p.Entity.Rect(), dir, ProjectileSize, ProjectileSize), "fireball", dir, ProjectileSpeed, ctrl)
	return nil
}

func ArrowAbility(s *game.GameState, spec content.AbilitySpec) error {
	p := s.Player
	dir := p.Entity.Direction()
	s.SpawnProjectile(p.ID, game.LaunchRect(p.Entity.Rect(), dir, ProjectileSize, ProjectileSize), "arrow", dir, ProjectileSpeed*1.5, NewArrow(projectileAge(spec.Range)*2/3, spec.Damage))
	return nil
}

func HealAbility(s *game.GameState, spec content.AbilitySpec) error {
	p := s.Player
	healed := p.Health.Gain(spec.Amount)
	s.SpawnFloatingText(p.Entity.Rect(), "+"+strconv.Itoa(healed), game.StyleHeal)
	return nil
}

func SneakAbility(s *game.GameState, spec content.AbilitySpec) error {
	s.ApplyBuff(s.Player.ID, &Sneak{}, spec.DurationMs)
	return nil
}

func ChargeAbility(s *game.GameState, spec content.AbilitySpec) error {
	s.ApplyBuff(s.Player.ID, Charging{Multiplier: spec.Amount, Damage: spec.Damage}, spec.DurationMs)
	return nil
}

func BloodlustAbility(s *game.GameState, spec content.AbilitySpec) error {
	s.ApplyBuff(s.Player.ID, Bloodlust{Bonus: spec.Amount}, spec.DurationMs)
	return nil
}

// SummonAbility places the summoned NPC on the first free side of the
// player, trying the facing direction first.
func SummonAbility(s *game.GameState, spec content.AbilitySpec) error {
	p := s.Player
	npcSpec := s.Registry.MustNPC(spec.Summon)
	facing := p.Entity.Direction()
	order := []common.Direction{facing, facing.Perpendicular()[0], facing.Perpendicular()[1], facing.Opposite()}
	for _, d := range order {
		r := game.LaunchRect(p.Entity.Rect(), d, npcSpec.Width, npcSpec.Height)
		if _, ok := s.SpawnNPC(spec.Summon, r.TopLeft()); ok {
			return nil
		}
	}
	return ErrNoRoom
}
