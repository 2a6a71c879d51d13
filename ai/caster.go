package ai

import (
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/effects"
	"github.com/milk9111/ashvale/game"
)

const (
	BoltSpeed = 220
	BoltSize  = 8

	// alignSlack is how far off an axis the caster may be and still fire.
	alignSlack = 10
)

// Caster keeps its distance and fires bolts along whichever axis it shares
// with the player.
type Caster struct {
	pursuit *pursuit
	attack  cooldown
}

func NewCaster(s *game.GameState, spec content.NPCSpec, stray float64) *Caster {
	return &Caster{pursuit: newPursuit(s, spec, stray)}
}

func (c *Caster) Control(s *game.GameState, npc *game.NPC, player *game.Player, invisible bool, elapsedMs int) {
	c.attack.tick(elapsedMs)
	if !canSee(npc, player, invisible) {
		c.pursuit.stop(npc)
		return
	}
	me, them := npc.Entity.Rect().Center(), player.Entity.Rect().Center()
	if me.Distance(them) > float64(npc.Spec.AttackRange) {
		c.pursuit.moveToward(s, npc, player.Entity.Position(), elapsedMs)
		return
	}

	dx, dy := them.X-me.X, them.Y-me.Y
	if common.Abs(dx) > alignSlack && common.Abs(dy) > alignSlack {
		// step along the shorter axis to line up a shot
		var step common.Direction
		if common.Abs(dx) < common.Abs(dy) {
			step = common.Left
			if dx > 0 {
				step = common.Right
			}
		} else {
			step = common.Up
			if dy > 0 {
				step = common.Down
			}
		}
		if !s.Agent(npc).WouldCollide(step, 100) {
			npc.Entity.Face(step)
			return
		}
	}

	npc.Entity.SetMoving(false)
	dirs := common.Toward(me, them)
	if len(dirs) == 0 || !c.attack.ready() {
		return
	}
	npc.Entity.SetDirection(dirs[0])
	c.attack.start(npc.Spec.CooldownMs)
	FireBolt(s, npc, dirs[0])
}

// FireBolt launches an enemy bolt from npc in dir.
func FireBolt(s *game.GameState, npc *game.NPC, dir common.Direction) *game.Projectile {
	ctrl := effects.EnemyBolt{
		ProjectileBase: game.ProjectileBase{MaxAge: max(1, npc.Spec.AttackRange) * 1000 / BoltSpeed},
		Damage:         npc.Spec.AttackDamage,
		Buff:           buffType(npc.Spec.OnHitBuff),
		BuffMs:         npc.Spec.OnHitBuffMs,
	}
	r := game.LaunchRect(npc.Entity.Rect(), dir, BoltSize, BoltSize)
	return s.SpawnProjectile(npc.ID, r, "bolt", dir, BoltSpeed, ctrl)
}
