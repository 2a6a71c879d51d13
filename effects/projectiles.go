package effects

import (
	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/game"
)

// Fireball damages the first enemy it hits and sets it burning, but only if
// the hit did damage.
type Fireball struct {
	game.ProjectileBase
	Damage     float64
	BurnMs     int
	BurnPerSec float64
}

func (f Fireball) OnEnemyHit(s *game.GameState, _ *game.Projectile, npc *game.NPC) bool {
	if s.DealDamageToEnemy(npc, f.Damage) && f.BurnMs > 0 {
		s.ApplyBuff(npc.ID, &Burning{PerSecond: f.BurnPerSec}, f.BurnMs)
	}
	return true
}

// Arrow passes through enemies, damaging each one once.
type Arrow struct {
	game.ProjectileBase
	Damage float64

	hit map[ecs.Entity]bool
}

func NewArrow(maxAgeMs int, damage float64) *Arrow {
	return &Arrow{ProjectileBase: game.ProjectileBase{MaxAge: maxAgeMs}, Damage: damage, hit: map[ecs.Entity]bool{}}
}

func (a *Arrow) OnEnemyHit(s *game.GameState, _ *game.Projectile, npc *game.NPC) bool {
	if a.hit[npc.ID] {
		return false
	}
	a.hit[npc.ID] = true
	s.DealDamageToEnemy(npc, a.Damage)
	return false
}

// Hits returns how many distinct enemies the arrow has struck.
func (a *Arrow) Hits() int {
	return len(a.hit)
}

// EnemyBolt is fired by hostile NPCs. It hurts the player or a summon and
// can carry a debuff that lands only if the player actually lost health.
type EnemyBolt struct {
	game.ProjectileBase
	Damage int
	Buff   buff.Type
	BuffMs int
}

func (b EnemyBolt) OnPlayerHit(s *game.GameState, _ *game.Projectile, p *game.Player) bool {
	lost, _ := s.DealDamageToPlayer(b.Damage)
	if lost > 0 && b.Buff != "" {
		s.ApplyBuff(p.ID, s.Registry.NewBuff(b.Buff), b.BuffMs)
	}
	return true
}

func (b EnemyBolt) OnSummonHit(s *game.GameState, _ *game.Projectile, npc *game.NPC) bool {
	s.DamageNPC(npc, float64(b.Damage))
	return true
}
