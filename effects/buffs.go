// Package effects gives behaviour to the names used in the content tables:
// buff effects, projectile controllers, ability functions and item passives.
package effects

import (
	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/game"
)

const (
	TypeStun         buff.Type = "stun"
	TypeSneak        buff.Type = "sneak"
	TypeBloodlust    buff.Type = "bloodlust"
	TypeBurning      buff.Type = "burning"
	TypeHaste        buff.Type = "haste"
	TypeSlow         buff.Type = "slow"
	TypeRegeneration buff.Type = "regeneration"
	TypeCharging     buff.Type = "charging"
	TypeInvulnerable buff.Type = "invulnerable"
)

// Stun blocks voluntary movement and actions while active. Stuns nest.
type Stun struct {
	game.BuffBase
}

func (Stun) Type() buff.Type { return TypeStun }

func (Stun) ApplyStart(ctx *game.BuffContext) {
	ctx.Stun().Add()
	if !charging(ctx) {
		ctx.Entity().SetMoving(false)
	}
}

func (Stun) ApplyEnd(ctx *game.BuffContext) {
	ctx.Stun().Remove()
}

func charging(ctx *game.BuffContext) bool {
	return ctx.IsPlayer() && ctx.State.Player.Buffs.Has(TypeCharging)
}

// Sneak makes the player invisible to NPC minds until it expires, the
// player takes damage, or the player uses another ability.
type Sneak struct {
	game.BuffBase
	fx ecs.Entity
}

func (*Sneak) Type() buff.Type { return TypeSneak }

func (s *Sneak) ApplyStart(ctx *game.BuffContext) {
	ctx.State.Player.AddInvisibility()
	s.fx = ctx.State.AttachEffect(ctx.Target, "shadow", common.Position{X: 24, Y: 24}, common.Position{}, 1<<30, true).ID
}

func (s *Sneak) ApplyEnd(ctx *game.BuffContext) {
	ctx.State.Player.RemoveInvisibility()
	ctx.State.QueueRemoval(s.fx)
}

func (*Sneak) HandleEvent(ev buff.Event) buff.Reaction {
	switch {
	case ev.Kind == buff.EventPlayerDamaged:
		return buff.Cancel()
	case ev.Kind == buff.EventPlayerUsedAbility && ev.Ability != "sneak":
		return buff.Cancel()
	}
	return buff.NoReaction
}

// BloodlustExtendMs is added to bloodlust for every enemy killed.
const BloodlustExtendMs = 1000

// Bloodlust raises the player's damage modifier and feeds on kills.
type Bloodlust struct {
	game.BuffBase
	Bonus float64
}

func (Bloodlust) Type() buff.Type { return TypeBloodlust }

func (b Bloodlust) ApplyStart(ctx *game.BuffContext) {
	ctx.State.Player.DamageModifierBonus += b.Bonus
}

func (b Bloodlust) ApplyEnd(ctx *game.BuffContext) {
	ctx.State.Player.DamageModifierBonus -= b.Bonus
}

func (Bloodlust) HandleEvent(ev buff.Event) buff.Reaction {
	if ev.Kind == buff.EventEnemyDied {
		return buff.Extend(BloodlustExtendMs)
	}
	return buff.NoReaction
}

// BurnIntervalMs is how often burning deals its damage.
const BurnIntervalMs = 500

// Burning deals damage over time. It stops early on an invulnerable NPC.
type Burning struct {
	game.BuffBase
	PerSecond float64

	sinceMs int
	fx      ecs.Entity
}

func (*Burning) Type() buff.Type { return TypeBurning }

func (b *Burning) ApplyStart(ctx *game.BuffContext) {
	b.fx = ctx.State.AttachEffect(ctx.Target, "flames", common.Position{X: 12, Y: 12}, common.Position{X: 4, Y: -8}, 1<<30, true).ID
}

func (b *Burning) ApplyMiddle(ctx *game.BuffContext, elapsedMs int) bool {
	b.sinceMs += elapsedMs
	for b.sinceMs >= BurnIntervalMs {
		b.sinceMs -= BurnIntervalMs
		amount := b.PerSecond * BurnIntervalMs / 1000
		if ctx.NPC != nil {
			if _, ok := ctx.State.DamageNPC(ctx.NPC, amount); !ok {
				return true
			}
		} else {
			ctx.Health().Lose(amount)
		}
	}
	return false
}

func (b *Burning) ApplyEnd(ctx *game.BuffContext) {
	ctx.State.QueueRemoval(b.fx)
}

// Speed changes the target's speed multiplier while active. Haste and slow
// are both Speed with different types and signs.
type Speed struct {
	game.BuffBase
	Kind  buff.Type
	Delta float64
}

func Haste(delta float64) Speed { return Speed{Kind: TypeHaste, Delta: delta} }
func Slow(delta float64) Speed  { return Speed{Kind: TypeSlow, Delta: -delta} }

func (s Speed) Type() buff.Type { return s.Kind }

func (s Speed) ApplyStart(ctx *game.BuffContext) {
	ctx.Entity().AdjustSpeedMultiplier(s.Delta)
}

func (s Speed) ApplyEnd(ctx *game.BuffContext) {
	ctx.Entity().AdjustSpeedMultiplier(-s.Delta)
}

// Regeneration adds to the target's health regeneration rate.
type Regeneration struct {
	game.BuffBase
	PerSecond float64
}

func (Regeneration) Type() buff.Type { return TypeRegeneration }

func (r Regeneration) ApplyStart(ctx *game.BuffContext) {
	ctx.Health().AdjustRegenBonus(r.PerSecond)
}

func (r Regeneration) ApplyEnd(ctx *game.BuffContext) {
	ctx.Health().AdjustRegenBonus(-r.PerSecond)
}

// Invulnerable shields an NPC from all damage.
type Invulnerable struct {
	game.BuffBase
}

func (Invulnerable) Type() buff.Type { return TypeInvulnerable }

func (Invulnerable) ApplyStart(ctx *game.BuffContext) {
	if ctx.NPC != nil {
		ctx.NPC.AddInvulnerability()
	}
}

func (Invulnerable) ApplyEnd(ctx *game.BuffContext) {
	if ctx.NPC != nil {
		ctx.NPC.RemoveInvulnerability()
	}
}

// ChargeStunMs is how long a charge stuns the enemy it runs into.
const ChargeStunMs = 1000

// Charging dashes the player forward. The dash keeps going through stuns and
// ends on the first collision, damaging and stunning an enemy in the way.
type Charging struct {
	game.BuffBase
	Multiplier float64
	Damage     float64
}

func (Charging) Type() buff.Type { return TypeCharging }

func (c Charging) ApplyStart(ctx *game.BuffContext) {
	e := ctx.Entity()
	e.AdjustSpeedMultiplier(c.Multiplier)
	e.SetMoving(true)
}

func (c Charging) ApplyMiddle(ctx *game.BuffContext, elapsedMs int) bool {
	s := ctx.State
	e := ctx.Entity()
	e.SetMoving(true)
	dx, dy := e.Direction().Vector()
	dist := e.DistanceIn(elapsedMs)
	ahead := e.Rect().At(e.Position().Add(dx*dist, dy*dist))
	if !s.Bounds().Contains(ahead) {
		return true
	}
	if !s.WouldCollide(ctx.Target, ahead) {
		return false
	}
	for _, npc := range s.NPCs.All() {
		if npc.Enemy && npc.Entity.Rect().Intersects(ahead) {
			if s.DealDamageToEnemy(npc, c.Damage) {
				s.ApplyBuff(npc.ID, Stun{}, ChargeStunMs)
			}
			break
		}
	}
	return true
}

func (c Charging) ApplyEnd(ctx *game.BuffContext) {
	e := ctx.Entity()
	e.AdjustSpeedMultiplier(-c.Multiplier)
	e.SetMoving(false)
}
