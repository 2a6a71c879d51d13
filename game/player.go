package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/component"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/ecs"
)

var (
	ErrInventoryFull = errors.New("no inventory space")
	ErrWrongSlot     = errors.New("item is not equippable in that slot")
	ErrSlotEmpty     = errors.New("nothing equipped in that slot")
	ErrNoSuchItem    = errors.New("no item in that inventory slot")
	ErrNotUsable     = errors.New("item cannot be used")
)

// ItemEffect is a passive effect of an equipped item, ticked every frame.
type ItemEffect interface {
	Tick(s *GameState, elapsedMs int)
}

type Item struct {
	Type    string
	Spec    content.ItemSpec
	Passive ItemEffect
}

// AbilitySlot is one ability the player can use, with its remaining cooldown.
type AbilitySlot struct {
	Name       string
	Spec       content.AbilitySpec
	CooldownMs int
}

func (a *AbilitySlot) Ready() bool {
	return a.CooldownMs <= 0
}

// Recharge counts the cooldown down by elapsedMs.
func (a *AbilitySlot) Recharge(elapsedMs int) {
	a.CooldownMs = max(0, a.CooldownMs-elapsedMs)
}

type Player struct {
	ID     ecs.Entity
	Entity WorldEntity
	Health *component.Resource
	Mana   *component.Resource
	Stun   component.Stun
	Buffs  BuffList

	Level int
	Exp   int
	Money int

	Armor               int
	BaseDamageModifier  float64
	DamageModifierBonus float64
	LifeSteal           float64

	Abilities     []*AbilitySlot
	Inventory     []*Item
	InventorySize int
	Equipment     map[content.ItemCategory]*Item

	invisible int
}

// SpawnPlayer creates the player from the player table with its top-left at
// pos and points the camera at it.
func (s *GameState) SpawnPlayer(pos common.Position) *Player {
	if s.Player != nil {
		panic("game: player already spawned")
	}
	spec := s.Registry.Tables.Player
	p := &Player{
		ID:                 s.alloc.Create(),
		Entity:             NewWorldEntity(common.NewRect(pos.X, pos.Y, spec.Width, spec.Height), spec.Sprite, spec.Speed),
		Health:             component.NewResource(spec.MaxHealth, spec.HealthRegen),
		Mana:               component.NewResource(spec.MaxMana, spec.ManaRegen),
		Level:              1,
		Armor:              spec.Armor,
		BaseDamageModifier: spec.DamageModifier,
		InventorySize:      spec.InventorySize,
		Equipment:          make(map[content.ItemCategory]*Item),
	}
	for _, name := range spec.Abilities {
		p.Abilities = append(p.Abilities, &AbilitySlot{Name: name, Spec: s.Registry.MustAbilitySpec(name)})
	}
	s.Player = p
	c := p.Entity.Rect().Center()
	s.Camera.SnapTo(float64(c.X), float64(c.Y))
	return p
}

func (p *Player) Invisible() bool {
	return p.invisible > 0
}

func (p *Player) AddInvisibility() {
	p.invisible++
}

func (p *Player) RemoveInvisibility() {
	if p.invisible == 0 {
		panic("game: player invisibility count would go negative")
	}
	p.invisible--
}

// DamageModifier is the total multiplier applied to player damage.
func (p *Player) DamageModifier() float64 {
	return p.BaseDamageModifier + p.DamageModifierBonus
}

// Ability returns the slot holding the named ability.
func (p *Player) Ability(name string) (*AbilitySlot, bool) {
	for _, a := range p.Abilities {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// AddItem puts item into the first free inventory slot.
func (p *Player) AddItem(item *Item) error {
	if len(p.Inventory) >= p.InventorySize {
		return ErrInventoryFull
	}
	p.Inventory = append(p.Inventory, item)
	return nil
}

func (p *Player) takeItem(index int) (*Item, error) {
	if index < 0 || index >= len(p.Inventory) {
		return nil, ErrNoSuchItem
	}
	item := p.Inventory[index]
	p.Inventory = slices.Delete(p.Inventory, index, index+1)
	return item, nil
}

// Equip moves the inventory item at index into slot. An item already in the
// slot swaps back into the inventory.
func (p *Player) Equip(index int, slot content.ItemCategory) error {
	if index < 0 || index >= len(p.Inventory) {
		return ErrNoSuchItem
	}
	item := p.Inventory[index]
	if !slot.Equippable() || item.Spec.Category != slot {
		return ErrWrongSlot
	}
	if _, err := p.takeItem(index); err != nil {
		return err
	}
	if old, ok := p.Equipment[slot]; ok {
		p.removeModifiers(old)
		p.Inventory = slices.Insert(p.Inventory, index, old)
	}
	p.Equipment[slot] = item
	p.applyModifiers(item)
	return nil
}

// Unequip moves the item in slot back into the inventory.
func (p *Player) Unequip(slot content.ItemCategory) error {
	item, ok := p.Equipment[slot]
	if !ok {
		return ErrSlotEmpty
	}
	if err := p.AddItem(item); err != nil {
		return err
	}
	delete(p.Equipment, slot)
	p.removeModifiers(item)
	return nil
}

// UseItem consumes the consumable at index.
func (p *Player) UseItem(index int) error {
	if index < 0 || index >= len(p.Inventory) {
		return ErrNoSuchItem
	}
	item := p.Inventory[index]
	if item.Spec.Category != content.CategoryConsumable {
		return ErrNotUsable
	}
	if _, err := p.takeItem(index); err != nil {
		return err
	}
	p.Health.Gain(float64(item.Spec.Heal))
	p.Mana.Gain(float64(item.Spec.Mana))
	return nil
}

func (p *Player) applyModifiers(item *Item) {
	p.Armor += item.Spec.Armor
	p.DamageModifierBonus += item.Spec.DamageBonus
	p.LifeSteal += item.Spec.LifeSteal
	p.Entity.AdjustSpeedMultiplier(item.Spec.Speed)
	if item.Spec.MaxHealth > 0 {
		p.Health.IncreaseMax(item.Spec.MaxHealth)
	}
}

func (p *Player) removeModifiers(item *Item) {
	p.Armor -= item.Spec.Armor
	p.DamageModifierBonus -= item.Spec.DamageBonus
	p.LifeSteal -= item.Spec.LifeSteal
	p.Entity.AdjustSpeedMultiplier(-item.Spec.Speed)
	if item.Spec.MaxHealth > 0 {
		p.Health.DecreaseMax(item.Spec.MaxHealth)
	}
}

// EquippedPassives returns the passive effects of equipped items in slot
// order.
func (p *Player) EquippedPassives() []ItemEffect {
	var out []ItemEffect
	for _, slot := range []content.ItemCategory{content.CategoryWeapon, content.CategoryArmor, content.CategoryRing} {
		if item, ok := p.Equipment[slot]; ok && item.Passive != nil {
			out = append(out, item.Passive)
		}
	}
	return out
}

// NewItem builds an item of the registered type.
func (s *GameState) NewItem(typ string) *Item {
	spec, ok := s.Registry.Tables.Items[typ]
	if !ok {
		panic(fmt.Sprintf("game: unknown item type %q", typ))
	}
	item := &Item{Type: typ, Spec: spec}
	if spec.Passive != "" {
		item.Passive = s.Registry.NewPassive(spec.Passive, spec)
	}
	return item
}
