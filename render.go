package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/engine"
	"github.com/milk9111/ashvale/game"
)

var kindColors = map[game.Kind]color.RGBA{
	game.KindWall:       colornames.Dimgray,
	game.KindPortal:     colornames.Mediumpurple,
	game.KindChest:      colornames.Saddlebrown,
	game.KindLoot:       colornames.Gold,
	game.KindNPC:        colornames.Indianred,
	game.KindPlayer:     colornames.Steelblue,
	game.KindProjectile: colornames.Orange,
	game.KindEffect:     colornames.White,
	game.KindDecoration: colornames.Darkolivegreen,
}

var styleColors = map[game.TextStyle]color.RGBA{
	game.StyleDamage:       colornames.White,
	game.StylePlayerDamage: colornames.Red,
	game.StyleHeal:         colornames.Lime,
	game.StyleMana:         colornames.Deepskyblue,
	game.StyleBlocked:      colornames.Lightgray,
	game.StyleInfo:         colornames.Yellow,
}

// view converts world coordinates to screen coordinates.
type view struct {
	ox, oy float64
}

func (v view) rect(r common.Rect) (float32, float32, float32, float32) {
	return float32(float64(r.X) - v.ox), float32(float64(r.Y) - v.oy), float32(r.W), float32(r.H)
}

func drawWorld(screen *ebiten.Image, g *Game) {
	s := g.ss.engine.State
	screen.Fill(colornames.Darkslategray)

	vr := s.Camera.ViewRect()
	sx, sy := s.Camera.ShakeOffset(g.clockMs)
	v := view{ox: float64(vr.X) - sx, oy: float64(vr.Y) - sy}

	for _, r := range s.DecorationRenderList() {
		drawRenderable(screen, g, v, r)
	}
	if g.debug {
		drawGrid(screen, s, v)
	}
	for _, r := range s.RenderList() {
		drawRenderable(screen, g, v, r)
	}
	if g.debug {
		drawSearches(screen, g, v)
	}
}

func drawRenderable(screen *ebiten.Image, g *Game, v view, r game.Renderable) {
	x, y, w, h := v.rect(r.Rect)
	if r.Kind == game.KindEffect {
		if r.Text != "" {
			drawText(screen, g, r.Text, float64(x), float64(y)-float64(r.Animation)*12, styleColors[r.Style])
			return
		}
		vector.StrokeRect(screen, x, y, w, h, 1, colornames.White, false)
		return
	}

	vector.FillRect(screen, x, y, w, h, kindColors[r.Kind], false)
	if r.Kind == game.KindPlayer || r.Kind == game.KindNPC {
		drawFacing(screen, x, y, w, h, r.Direction)
	}
	if r.Health > 0 && r.Health < 1 {
		vector.FillRect(screen, x, y-4, w, 2, colornames.Darkred, false)
		vector.FillRect(screen, x, y-4, w*float32(r.Health), 2, colornames.Lime, false)
	}
}

// drawFacing marks the edge the entity is facing.
func drawFacing(screen *ebiten.Image, x, y, w, h float32, d common.Direction) {
	const t = 3
	switch d {
	case common.Up:
		vector.FillRect(screen, x, y, w, t, colornames.Black, false)
	case common.Down:
		vector.FillRect(screen, x, y+h-t, w, t, colornames.Black, false)
	case common.Left:
		vector.FillRect(screen, x, y, t, h, colornames.Black, false)
	case common.Right:
		vector.FillRect(screen, x+w-t, y, t, h, colornames.Black, false)
	}
}

func drawGrid(screen *ebiten.Image, s *game.GameState, v view) {
	grid := s.Grid()
	cell := float32(common.CellWidth)
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if !grid.IsBlocked(x, y) {
				continue
			}
			px := float32(float64(x*common.CellWidth) - v.ox)
			py := float32(float64(y*common.CellWidth) - v.oy)
			vector.FillRect(screen, px, py, cell, cell, color.RGBA{R: 255, A: 48}, false)
			vector.StrokeRect(screen, px, py, cell, cell, 1, color.RGBA{R: 255, A: 200}, false)
		}
	}
}

func drawSearches(screen *ebiten.Image, g *Game, v view) {
	half := float32(common.CellWidth) / 2
	for _, search := range g.searches {
		clr := colornames.Cyan
		if !search.Found {
			clr = colornames.Magenta
		}
		for _, c := range search.Path {
			p := c.WorldPos()
			px := float32(float64(p.X)-v.ox) + half
			py := float32(float64(p.Y)-v.oy) + half
			vector.FillRect(screen, px-2, py-2, 4, 4, clr, false)
		}
	}
}

func drawText(screen *ebiten.Image, g *Game, str string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, str, g.face, op)
}

func drawHUD(screen *ebiten.Image, g *Game) {
	s := g.ss.engine.State
	p := s.Player

	lines := []string{
		fmt.Sprintf("HP %d/%d  MP %d/%d  LV %d  %s  %dg",
			p.Health.Value(), p.Health.Max(), p.Mana.Value(), p.Mana.Max(), p.Level, expLine(s), p.Money),
		abilityLine(p),
	}
	if len(p.Inventory) > 0 {
		names := make([]string, 0, len(p.Inventory))
		for _, item := range p.Inventory {
			names = append(names, item.Type)
		}
		lines = append(lines, "bag: "+strings.Join(names, ", "))
	}
	if g.debug {
		lines = append(lines, fmt.Sprintf("tps %.0f  fps %.0f  tick %d  npcs %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.ss.engine.Ticks(), s.NPCs.Len()))
	}
	for i, line := range lines {
		drawText(screen, g, line, 8, 6+float64(i)*14, colornames.White)
	}

	if g.messageT > 0 && g.message != "" {
		h := screen.Bounds().Dy()
		drawText(screen, g, g.message, 8, float64(h-20), colornames.Yellow)
	}
}

func expLine(s *game.GameState) string {
	need, ok := engine.ExpToNextLevel(s)
	if !ok {
		return fmt.Sprintf("XP %d (max)", s.Player.Exp)
	}
	return fmt.Sprintf("XP %d (+%d)", s.Player.Exp, need)
}

func abilityLine(p *game.Player) string {
	parts := make([]string, 0, len(p.Abilities))
	for i, slot := range p.Abilities {
		if slot.Ready() {
			parts = append(parts, fmt.Sprintf("%d:%s", i+1, slot.Name))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%s(%.1f)", i+1, slot.Name, float64(slot.CooldownMs)/1000))
	}
	return strings.Join(parts, " ")
}
