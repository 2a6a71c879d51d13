package effects

import (
	"github.com/milk9111/ashvale/game"
)

const (
	SlowAmount  = 0.4
	HasteAmount = 0.5
)

// Register binds every ability, data-referenced buff and item passive this
// package implements.
func Register(reg *game.ContentRegistry) {
	reg.RegisterAbility("melee_swing", MeleeSwing)
	reg.RegisterAbility("fireball", FireballAbility)
	reg.RegisterAbility("arrow", ArrowAbility)
	reg.RegisterAbility("heal", HealAbility)
	reg.RegisterAbility("sneak", SneakAbility)
	reg.RegisterAbility("charge", ChargeAbility)
	reg.RegisterAbility("bloodlust", BloodlustAbility)
	reg.RegisterAbility("summon_wolf", SummonAbility)

	reg.RegisterBuff(TypeStun, func() game.BuffEffect { return Stun{} })
	reg.RegisterBuff(TypeSlow, func() game.BuffEffect { return Slow(SlowAmount) })
	reg.RegisterBuff(TypeHaste, func() game.BuffEffect { return Haste(HasteAmount) })
	reg.RegisterBuff(TypeInvulnerable, func() game.BuffEffect { return Invulnerable{} })
	reg.RegisterBuff(TypeRegeneration, func() game.BuffEffect { return Regeneration{PerSecond: 2} })

	reg.RegisterPassive("vigor", newVigor)
}
