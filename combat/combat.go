// Package combat holds the damage formulas shared by abilities, projectiles
// and NPC attacks. It does not touch world state.
package combat

import "fmt"

// Roller is the slice of *rand.Rand the formulas need.
type Roller interface {
	Intn(n int) int
}

// PlayerDamage scales an ability's base amount by the player's damage
// modifier.
func PlayerDamage(base, baseModifier, bonus float64) float64 {
	return base * (baseModifier + bonus)
}

// MitigateArmor subtracts a uniform roll in [0, armor] from base, floored at
// zero. blocked is true when nothing gets through.
func MitigateArmor(rng Roller, base, armor int) (damage int, blocked bool) {
	if base < 0 {
		panic(fmt.Sprintf("combat: negative base damage %d", base))
	}
	if armor < 0 {
		armor = 0
	}
	roll := 0
	if armor > 0 {
		roll = rng.Intn(armor + 1)
	}
	damage = max(0, base-roll)
	return damage, damage == 0
}

// LifeSteal returns how much health the attacker regains for dealt damage.
func LifeSteal(dealt int, fraction float64) float64 {
	if dealt <= 0 || fraction <= 0 {
		return 0
	}
	return float64(dealt) * fraction
}
