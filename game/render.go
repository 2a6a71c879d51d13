package game

import (
	"slices"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
)

type Kind int

const (
	KindWall Kind = iota
	KindPortal
	KindChest
	KindLoot
	KindNPC
	KindPlayer
	KindProjectile
	KindEffect
	KindDecoration
)

// Renderable is everything the presentation layer needs to draw one entity.
type Renderable struct {
	Entity    ecs.Entity
	Kind      Kind
	Rect      common.Rect
	Sprite    string
	Animation float64
	Direction common.Direction
	Text      string
	Style     TextStyle
	Health    float64
}

func renderable(id ecs.Entity, kind Kind, e *WorldEntity) Renderable {
	return Renderable{
		Entity:    id,
		Kind:      kind,
		Rect:      e.Rect(),
		Sprite:    e.Sprite(),
		Animation: e.Animation(),
		Direction: e.Direction(),
	}
}

// RenderList returns every world entity to draw, back to front. Effects are
// always last.
func (s *GameState) RenderList() []Renderable {
	var out []Renderable
	for id, v := range s.Walls.All() {
		out = append(out, renderable(id, KindWall, &v.Entity))
	}
	for id, v := range s.Portals.All() {
		out = append(out, renderable(id, KindPortal, &v.Entity))
	}
	for id, v := range s.Chests.All() {
		out = append(out, renderable(id, KindChest, &v.Entity))
	}
	for id, v := range s.Loot.All() {
		out = append(out, renderable(id, KindLoot, &v.Entity))
	}
	for id, v := range s.NPCs.All() {
		r := renderable(id, KindNPC, &v.Entity)
		if m := v.Health.Max(); m > 0 {
			r.Health = v.Health.Exact() / float64(m)
		}
		out = append(out, r)
	}
	if s.Player != nil {
		r := renderable(s.Player.ID, KindPlayer, &s.Player.Entity)
		r.Health = s.Player.Health.Exact() / float64(max(1, s.Player.Health.Max()))
		out = append(out, r)
	}
	for id, v := range s.Projectiles.All() {
		out = append(out, renderable(id, KindProjectile, &v.Entity))
	}
	slices.SortStableFunc(out, func(a, b Renderable) int {
		return (a.Rect.Y + a.Rect.H) - (b.Rect.Y + b.Rect.H)
	})
	for id, v := range s.Effects.All() {
		out = append(out, Renderable{
			Entity:    id,
			Kind:      KindEffect,
			Rect:      v.Rect,
			Sprite:    v.Sprite,
			Animation: v.Progress(),
			Text:      v.Text,
			Style:     v.Style,
		})
	}
	return out
}

// DecorationRenderList returns the decorations, drawn beneath everything
// else.
func (s *GameState) DecorationRenderList() []Renderable {
	out := make([]Renderable, 0, s.Decorations.Len())
	for id, v := range s.Decorations.All() {
		out = append(out, renderable(id, KindDecoration, &v.Entity))
	}
	return out
}
