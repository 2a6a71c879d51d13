package game

import (
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
)

// TextStyle tells the renderer how to colour floating text.
type TextStyle int

const (
	StyleDamage TextStyle = iota
	StylePlayerDamage
	StyleHeal
	StyleMana
	StyleBlocked
	StyleInfo
)

const (
	FloatingTextMs    = 800
	FloatingTextSpeed = 30
)

// VisualEffect is a short-lived cosmetic entity. Anchored effects follow the
// anchor entity until it disappears.
type VisualEffect struct {
	ID         ecs.Entity
	Rect       common.Rect
	Sprite     string
	Text       string
	Style      TextStyle
	AgeMs      int
	DurationMs int
	RiseSpeed  float64

	Anchor           ecs.Entity
	Offset           common.Position
	ExpireWithAnchor bool

	rise float64
}

func (v *VisualEffect) Expired() bool {
	return v.AgeMs >= v.DurationMs
}

// Progress is the share of the lifetime already elapsed, in [0,1].
func (v *VisualEffect) Progress() float64 {
	if v.DurationMs <= 0 {
		return 1
	}
	return common.Clamp(float64(v.AgeMs)/float64(v.DurationMs), 0, 1)
}

// SpawnFloatingText shows text rising above r.
func (s *GameState) SpawnFloatingText(r common.Rect, text string, style TextStyle) *VisualEffect {
	c := r.Center()
	v := &VisualEffect{
		Rect:       common.NewRect(c.X, r.Y-4, 0, 0),
		Text:       text,
		Style:      style,
		DurationMs: FloatingTextMs,
		RiseSpeed:  FloatingTextSpeed,
	}
	v.ID = s.Effects.Insert(v)
	return v
}

// AttachEffect shows a sprite effect that follows anchor at offset.
func (s *GameState) AttachEffect(anchor ecs.Entity, sprite string, size common.Position, offset common.Position, durationMs int, expireWithAnchor bool) *VisualEffect {
	v := &VisualEffect{
		Sprite:           sprite,
		DurationMs:       durationMs,
		Anchor:           anchor,
		Offset:           offset,
		ExpireWithAnchor: expireWithAnchor,
	}
	v.Rect = common.NewRect(0, 0, size.X, size.Y)
	if e, ok := s.WorldEntityOf(anchor); ok {
		v.Rect = v.Rect.At(e.Position().Add(offset.X, offset.Y))
	}
	v.ID = s.Effects.Insert(v)
	return v
}

// TickEffects ages every visual effect and drifts floating text upward.
func (s *GameState) TickEffects(elapsedMs int) {
	for _, v := range s.Effects.All() {
		v.AgeMs += elapsedMs
		if v.RiseSpeed > 0 {
			v.rise += v.RiseSpeed * float64(elapsedMs) / 1000
			whole := int(v.rise)
			v.rise -= float64(whole)
			v.Rect.Y -= whole
		}
	}
}

// RepositionAttachedEffects moves anchored effects onto their anchors.
// Effects whose anchor is gone either expire or stay where they are.
func (s *GameState) RepositionAttachedEffects() {
	for _, v := range s.Effects.All() {
		if !v.Anchor.Valid() {
			continue
		}
		e, ok := s.WorldEntityOf(v.Anchor)
		if !ok {
			v.Anchor = ecs.None
			if v.ExpireWithAnchor {
				v.AgeMs = v.DurationMs
			}
			continue
		}
		v.Rect = v.Rect.At(e.Position().Add(v.Offset.X, v.Offset.Y))
	}
}
