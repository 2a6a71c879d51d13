package engine

import (
	"strconv"

	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/game"
)

// runMinds lets every awake NPC near the camera decide what to do.
func runMinds(s *game.GameState, elapsedMs int) {
	p := s.Player
	invisible := p != nil && p.Invisible()
	for _, npc := range s.NPCs.All() {
		if npc.Stun.Active() || !s.NearCamera(npc.Entity.Rect()) {
			continue
		}
		npc.Mind.Control(s, npc, p, invisible, elapsedMs)
	}
}

func ageProjectiles(s *game.GameState, elapsedMs int) {
	for _, proj := range s.Projectiles.All() {
		proj.AgeMs += elapsedMs
		proj.Controller.OnTick(s, proj, elapsedMs)
	}
}

func ageEffects(s *game.GameState, elapsedMs int) {
	s.TickEffects(elapsedMs)
}

func decayShake(s *game.GameState, elapsedMs int) {
	s.Camera.DecayShake(elapsedMs)
}

// reapDead removes dead NPCs. Enemies pay out exp and loot at the spot they
// died before they leave the list.
func reapDead(s *game.GameState, _ int) {
	for _, npc := range s.RemoveDeadNPCs() {
		at := npc.Entity.Position()
		s.Feedback.Push(game.Feedback{Cue: game.CueDeath, At: at})
		if !npc.Enemy {
			continue
		}
		if npc.Spec.LootTable != "" {
			s.DropLoot(npc.Spec.LootTable, at)
		}
		GainExp(s, npc.Spec.ExpReward)
		s.NotifyEvent(buff.Event{Kind: buff.EventEnemyDied})
	}
}

func removeExpired(s *game.GameState, _ int) {
	s.RemoveQueued()
	s.RemoveExpired()
}

func tickBuffs(s *game.GameState, elapsedMs int) {
	s.TickBuffs(elapsedMs)
}

func tickPassives(s *game.GameState, elapsedMs int) {
	for _, passive := range s.Player.EquippedPassives() {
		passive.Tick(s, elapsedMs)
	}
}

func regenerate(s *game.GameState, elapsedMs int) {
	p := s.Player
	if !p.Health.IsAtOrBelowZero() {
		p.Health.Regenerate(elapsedMs)
	}
	p.Mana.Regenerate(elapsedMs)
	for _, slot := range p.Abilities {
		slot.Recharge(elapsedMs)
	}
	for _, npc := range s.NPCs.All() {
		if !npc.Dead() {
			npc.Health.Regenerate(elapsedMs)
		}
	}
}

func animate(s *game.GameState, elapsedMs int) {
	s.Player.Entity.AdvanceAnimation(elapsedMs, AnimationCycleMs)
	for _, npc := range s.NPCs.All() {
		npc.Entity.AdvanceAnimation(elapsedMs, AnimationCycleMs)
	}
	for _, proj := range s.Projectiles.All() {
		proj.Entity.AdvanceAnimation(elapsedMs, AnimationCycleMs)
	}
}

// move resolves NPC movement, then the player's, then projectiles'. Stunned
// NPCs and those far from the camera stay put. The player always moves so
// an in-flight charge carries through a stun.
func move(s *game.GameState, elapsedMs int) {
	for id, npc := range s.NPCs.All() {
		if npc.Stun.Active() || !s.NearCamera(npc.Entity.Rect()) {
			continue
		}
		s.Advance(id, &npc.Entity, elapsedMs)
	}
	s.Advance(s.Player.ID, &s.Player.Entity, elapsedMs)
	for _, proj := range s.Projectiles.All() {
		s.AdvanceProjectile(proj, elapsedMs)
	}
}

func repositionEffects(s *game.GameState, _ int) {
	s.RepositionAttachedEffects()
}

// collide resolves pickups and projectile hits. Projectiles that hit
// something are only flagged here and all leave together at the end.
func collide(s *game.GameState, _ int) {
	p := s.Player
	pr := p.Entity.Rect()

	for _, l := range s.Loot.All() {
		if l.Collected || l.Kind != game.LootMoney || !l.Entity.Rect().Intersects(pr) {
			continue
		}
		l.Collected = true
		p.Money += l.Money
		s.SpawnFloatingText(pr, "+"+strconv.Itoa(l.Money)+"g", game.StyleInfo)
		s.Feedback.Push(game.Feedback{Cue: game.CueCoins, At: l.Entity.Position()})
	}

	projectiles := s.Projectiles.All()
	fromPlayer := func(proj *game.Projectile) bool {
		return proj.Owner == p.ID
	}

	for _, proj := range projectiles {
		if proj.Collided || !fromPlayer(proj) {
			continue
		}
		for _, npc := range s.NPCs.All() {
			if !npc.Enemy || npc.Dead() || !npc.Entity.Rect().Intersects(proj.Entity.Rect()) {
				continue
			}
			if proj.Controller.OnEnemyHit(s, proj, npc) {
				proj.Collided = true
				break
			}
		}
	}

	for _, proj := range projectiles {
		if proj.Collided || fromPlayer(proj) {
			continue
		}
		for _, npc := range s.NPCs.All() {
			if !npc.Summon || npc.Dead() || !npc.Entity.Rect().Intersects(proj.Entity.Rect()) {
				continue
			}
			if proj.Controller.OnSummonHit(s, proj, npc) {
				proj.Collided = true
				break
			}
		}
	}

	for _, proj := range projectiles {
		if proj.Collided || fromPlayer(proj) || !proj.Entity.Rect().Intersects(pr) {
			continue
		}
		if proj.Controller.OnPlayerHit(s, proj, p) {
			proj.Collided = true
		}
	}

	for _, proj := range projectiles {
		if proj.Collided {
			continue
		}
		for _, w := range s.WallsInRange(proj.Entity.Rect()) {
			if !w.Entity.Rect().Intersects(proj.Entity.Rect()) {
				continue
			}
			if proj.Controller.OnWallHit(s, proj) {
				proj.Collided = true
			}
			break
		}
	}

	s.RemoveCollected()
}

func followCamera(s *game.GameState, _ int) {
	c := s.Player.Entity.Rect().Center()
	s.Camera.Update(float64(c.X), float64(c.Y))
}
