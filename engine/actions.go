package engine

import (
	"fmt"
	"strconv"

	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/effects"
	"github.com/milk9111/ashvale/game"
)

// InteractReach is how far from the player pickups, portals and chests can
// be used.
const InteractReach = 6

const (
	MsgStunned    = "you are stunned"
	MsgNoMana     = "not enough mana"
	MsgCooldown   = "ability on cooldown"
	MsgNoAbility  = "you do not know that ability"
	MsgNothing    = "there is nothing here to pick up"
	MsgNoPortal   = "there is no portal nearby"
	MsgExitBlock  = "the portal exit is blocked"
	MsgNoChest    = "there is no chest nearby"
	MsgChestEmpty = "the chest is empty"
)

// Result reports whether a player action took effect. A failed action
// leaves the state unchanged and carries the message to show.
type Result struct {
	OK      bool
	Message string
}

func success(msg string) Result {
	return Result{OK: true, Message: msg}
}

func (e *Engine) deny(msg string) Result {
	p := e.State.Player
	e.State.Feedback.Push(game.Feedback{Cue: game.CueDenied, Message: msg, At: p.Entity.Position()})
	return Result{Message: msg}
}

func (e *Engine) charging() bool {
	return e.State.Player.Buffs.Has(effects.TypeCharging)
}

// MoveInDirection starts the player walking in dir. Stuns block new
// movement; a charge keeps its own heading.
func (e *Engine) MoveInDirection(dir common.Direction) Result {
	p := e.State.Player
	if p.Stun.Active() {
		return e.deny(MsgStunned)
	}
	if e.charging() {
		return Result{}
	}
	p.Entity.Face(dir)
	return success("")
}

func (e *Engine) StopMoving() Result {
	if e.charging() {
		return Result{}
	}
	e.State.Player.Entity.SetMoving(false)
	return success("")
}

// UseAbility spends mana and starts the cooldown only if the ability's
// effect succeeded.
func (e *Engine) UseAbility(name string) Result {
	s := e.State
	p := s.Player
	slot, ok := p.Ability(name)
	if !ok {
		return e.deny(MsgNoAbility)
	}
	if p.Stun.Active() {
		return e.deny(MsgStunned)
	}
	if !slot.Ready() {
		return e.deny(MsgCooldown)
	}
	if p.Mana.Value() < slot.Spec.ManaCost {
		return e.deny(MsgNoMana)
	}
	if err := s.Registry.MustAbility(name)(s, slot.Spec); err != nil {
		return e.deny(err.Error())
	}
	p.Mana.Lose(float64(slot.Spec.ManaCost))
	slot.CooldownMs = slot.Spec.CooldownMs
	s.Feedback.Push(game.Feedback{Cue: game.CueCast, At: p.Entity.Position()})
	s.NotifyEvent(buff.Event{Kind: buff.EventPlayerUsedAbility, Ability: name})
	return success("")
}

func (e *Engine) reach() common.Rect {
	return e.State.Player.Entity.Rect().Grow(InteractReach)
}

// PickUp moves the first item pile within reach into the inventory.
func (e *Engine) PickUp() Result {
	s := e.State
	reach := e.reach()
	for _, l := range s.Loot.All() {
		if l.Collected || l.Kind != game.LootItem || !l.Entity.Rect().Intersects(reach) {
			continue
		}
		item := s.NewItem(l.Item)
		if err := s.Player.AddItem(item); err != nil {
			return e.deny(err.Error())
		}
		l.Collected = true
		s.Feedback.Push(game.Feedback{Cue: game.CuePickup, Message: item.Type, At: l.Entity.Position()})
		return success(fmt.Sprintf("picked up %s", item.Type))
	}
	return e.deny(MsgNothing)
}

func (e *Engine) Equip(index int, slot content.ItemCategory) Result {
	if err := e.State.Player.Equip(index, slot); err != nil {
		return e.deny(err.Error())
	}
	return success("")
}

func (e *Engine) Unequip(slot content.ItemCategory) Result {
	if err := e.State.Player.Unequip(slot); err != nil {
		return e.deny(err.Error())
	}
	return success("")
}

// UseItem drinks the consumable at index.
func (e *Engine) UseItem(index int) Result {
	s := e.State
	p := s.Player
	before, mana := p.Health.Value(), p.Mana.Value()
	if err := p.UseItem(index); err != nil {
		return e.deny(err.Error())
	}
	if healed := p.Health.Value() - before; healed > 0 {
		s.SpawnFloatingText(p.Entity.Rect(), "+"+strconv.Itoa(healed), game.StyleHeal)
	}
	if gained := p.Mana.Value() - mana; gained > 0 {
		s.SpawnFloatingText(p.Entity.Rect(), "+"+strconv.Itoa(gained), game.StyleMana)
	}
	return success("")
}

// UsePortal teleports the player through an adjacent portal.
func (e *Engine) UsePortal() Result {
	s := e.State
	p := s.Player
	reach := e.reach()
	for _, portal := range s.Portals.All() {
		if !portal.Entity.Rect().Intersects(reach) {
			continue
		}
		dest := p.Entity.Rect().At(portal.Dest)
		if !s.Bounds().Contains(dest) || s.WouldCollide(p.ID, dest) {
			return e.deny(MsgExitBlock)
		}
		p.Entity.SetPosition(portal.Dest)
		p.Entity.SetMoving(false)
		c := p.Entity.Rect().Center()
		s.Camera.SnapTo(float64(c.X), float64(c.Y))
		s.Feedback.Push(game.Feedback{Cue: game.CuePortal, At: portal.Dest})
		return success("")
	}
	return e.deny(MsgNoPortal)
}

// OpenChest opens an adjacent chest and spills its loot where it stood. The
// chest itself is removed on the next tick.
func (e *Engine) OpenChest() Result {
	s := e.State
	reach := e.reach()
	for _, c := range s.Chests.All() {
		if c.Opened || !c.Entity.Rect().Intersects(reach) {
			continue
		}
		c.Opened = true
		piles := s.DropLoot(c.LootTable, c.Entity.Position())
		s.Feedback.Push(game.Feedback{Cue: game.CuePickup, At: c.Entity.Position()})
		if len(piles) == 0 {
			return success(MsgChestEmpty)
		}
		return success("")
	}
	return e.deny(MsgNoChest)
}
