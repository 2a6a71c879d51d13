package component

import "math"

// Resource is a float-backed, integer-displayed pool such as health or mana.
// The float accumulator lets fractional regeneration build up across frames;
// the displayed value is always the floor of the accumulator.
type Resource struct {
	value      float64
	max        int
	baseRegen  float64
	regenBonus float64
}

// NewResource creates a full resource. regen is in units per second.
func NewResource(max int, regen float64) *Resource {
	if max < 0 {
		panic("component: negative resource max")
	}
	return &Resource{value: float64(max), max: max, baseRegen: regen}
}

// Value returns the integer display value.
func (r *Resource) Value() int {
	return int(math.Floor(r.value))
}

// Exact returns the float accumulator.
func (r *Resource) Exact() float64 {
	return r.value
}

func (r *Resource) Max() int {
	return r.max
}

// Lose subtracts amount and returns how much the display value dropped.
func (r *Resource) Lose(amount float64) int {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	before := r.Value()
	r.value = math.Max(r.value-amount, 0)
	return before - r.Value()
}

// Gain adds amount, capped at max, and returns how much the display value rose.
func (r *Resource) Gain(amount float64) int {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	before := r.Value()
	r.value = math.Min(r.value+amount, float64(r.max))
	return r.Value() - before
}

// GainToMax refills the resource and returns the display gain.
func (r *Resource) GainToMax() int {
	before := r.Value()
	r.value = float64(r.max)
	return r.Value() - before
}

// SetMax changes the cap, clamping the current value if it now exceeds it.
func (r *Resource) SetMax(max int) {
	if max < 0 {
		panic("component: negative resource max")
	}
	r.max = max
	if r.value > float64(max) {
		r.value = float64(max)
	}
}

// IncreaseMax raises the cap and the current value by the same amount.
func (r *Resource) IncreaseMax(amount int) {
	r.SetMax(r.max + amount)
	if amount > 0 {
		r.Gain(float64(amount))
	}
}

// DecreaseMax lowers the cap, clamping the current value.
func (r *Resource) DecreaseMax(amount int) {
	r.SetMax(max(r.max-amount, 0))
}

// IsAtOrBelowZero reports whether the accumulator is exhausted.
func (r *Resource) IsAtOrBelowZero() bool {
	return r.value <= 0
}

func (r *Resource) IsAtMax() bool {
	return r.value >= float64(r.max)
}

// Regen returns the current regeneration rate in units per second.
func (r *Resource) Regen() float64 {
	return r.baseRegen + r.regenBonus
}

// AdjustRegenBonus adds delta to the regeneration bonus. Buffs and items call
// it symmetrically on start and end.
func (r *Resource) AdjustRegenBonus(delta float64) {
	r.regenBonus += delta
}

// Regenerate accumulates rate/1000 * elapsedMs and returns the display gain.
func (r *Resource) Regenerate(elapsedMs int) int {
	rate := r.Regen()
	if rate <= 0 || elapsedMs <= 0 {
		return 0
	}
	return r.Gain(rate / 1000 * float64(elapsedMs))
}
