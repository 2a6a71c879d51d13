package game

import (
	"fmt"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/spatial"
)

const (
	PortalSize = 30
	ChestSize  = 24
	LootSize   = 12
)

// Wall is a static obstacle tile.
type Wall struct {
	ID     ecs.Entity
	Entity WorldEntity
}

// Portal teleports the player to Dest.
type Portal struct {
	ID     ecs.Entity
	Entity WorldEntity
	Dest   common.Position
}

type Decoration struct {
	ID     ecs.Entity
	Entity WorldEntity
}

// Chest opens into loot and is removed after opening.
type Chest struct {
	ID        ecs.Entity
	Entity    WorldEntity
	LootTable string
	Opened    bool
}

type LootKind int

const (
	LootMoney LootKind = iota
	LootItem
)

type LootPile struct {
	ID        ecs.Entity
	Entity    WorldEntity
	Kind      LootKind
	Money     int
	Item      string
	Collected bool
}

// AddWall places a wall tile and updates the occupancy grid, the wall
// buckets and the pathfinder memo together.
func (s *GameState) AddWall(r common.Rect) *Wall {
	if !s.Bounds().Contains(r) {
		panic(fmt.Sprintf("game: wall %v outside world", r))
	}
	w := &Wall{Entity: NewWorldEntity(r, "wall", 0)}
	w.ID = s.Walls.Insert(w)
	s.grid.MarkWall(r.TopLeft())
	s.wallBuckets.Add(w.ID, r.TopLeft())
	s.Pathfinder.WallChanged(spatial.CellOf(r.TopLeft()))
	return w
}

// RemoveWall undoes AddWall.
func (s *GameState) RemoveWall(id ecs.Entity) bool {
	w, ok := s.Walls.Get(id)
	if !ok {
		return false
	}
	tl := w.Entity.Position()
	s.Walls.Remove(id)
	s.grid.UnmarkWall(tl)
	if !s.wallBuckets.Remove(id, tl) {
		panic(fmt.Sprintf("game: wall %s missing from its bucket", id))
	}
	s.Pathfinder.WallChanged(spatial.CellOf(tl))
	return true
}

func (s *GameState) AddPortal(pos, dest common.Position) *Portal {
	p := &Portal{Entity: NewWorldEntity(common.NewRect(pos.X, pos.Y, PortalSize, PortalSize), "portal", 0), Dest: dest}
	p.ID = s.Portals.Insert(p)
	return p
}

func (s *GameState) AddDecoration(r common.Rect, sprite string) *Decoration {
	d := &Decoration{Entity: NewWorldEntity(r, sprite, 0)}
	d.ID = s.Decorations.Insert(d)
	return d
}

func (s *GameState) AddChest(pos common.Position, lootTable string) *Chest {
	if _, ok := s.Registry.Tables.Loot[lootTable]; !ok {
		panic(fmt.Sprintf("game: unknown loot table %q", lootTable))
	}
	c := &Chest{Entity: NewWorldEntity(common.NewRect(pos.X, pos.Y, ChestSize, ChestSize), "chest", 0), LootTable: lootTable}
	c.ID = s.Chests.Insert(c)
	return c
}

// AddLoot drops a pile at pos, clamped into the world.
func (s *GameState) AddLoot(pos common.Position, kind LootKind, money int, item string) *LootPile {
	sprite := "coins"
	if kind == LootItem {
		spec, ok := s.Registry.Tables.Items[item]
		if !ok {
			panic(fmt.Sprintf("game: unknown item type %q", item))
		}
		sprite = spec.Sprite
	}
	r := s.clampIntoWorld(common.NewRect(pos.X, pos.Y, LootSize, LootSize))
	l := &LootPile{Entity: NewWorldEntity(r, sprite, 0), Kind: kind, Money: money, Item: item}
	l.ID = s.Loot.Insert(l)
	return l
}

// LootOffset separates piles dropped by the same source.
const LootOffset = 14

// DropLoot rolls the loot table and places the result at pos, each extra
// pile offset so they do not stack.
func (s *GameState) DropLoot(table string, pos common.Position) []*LootPile {
	spec, ok := s.Registry.Tables.Loot[table]
	if !ok {
		panic(fmt.Sprintf("game: unknown loot table %q", table))
	}
	var piles []*LootPile
	place := func() common.Position {
		i := len(piles)
		return pos.Add((i%4)*LootOffset, (i/4)*LootOffset)
	}
	if spec.MoneyMax > 0 {
		amount := spec.MoneyMin + s.Rand.Intn(spec.MoneyMax-spec.MoneyMin+1)
		if amount > 0 {
			piles = append(piles, s.AddLoot(place(), LootMoney, amount, ""))
		}
	}
	for _, e := range spec.Entries {
		if s.Rand.Float64() < e.Chance {
			piles = append(piles, s.AddLoot(place(), LootItem, 0, e.Item))
		}
	}
	return piles
}

// LoadMap populates an empty world from a map description.
func (s *GameState) LoadMap(m *content.MapSpec) error {
	for _, w := range m.Walls {
		for _, tl := range w.Tiles() {
			s.AddWall(common.NewRect(tl.X, tl.Y, content.WallTileSize, content.WallTileSize))
		}
	}
	for _, p := range m.Portals {
		s.AddPortal(common.Position{X: p.X, Y: p.Y}, p.Dest.Position())
	}
	for _, c := range m.Chests {
		s.AddChest(common.Position{X: c.X, Y: c.Y}, c.LootTable)
	}
	for _, d := range m.Decorations {
		s.AddDecoration(common.NewRect(d.X, d.Y, d.W, d.H), d.Sprite)
	}
	p := s.SpawnPlayer(m.Player.Position())
	if s.collides(p.ID, p.Entity.Rect()) {
		return fmt.Errorf("game: player spawn %s is blocked", m.Player.Position())
	}
	for _, n := range m.NPCs {
		if _, ok := s.SpawnNPC(n.Type, common.Position{X: n.X, Y: n.Y}); !ok {
			s.Log.Warn("npc spawn blocked", "type", n.Type, "x", n.X, "y", n.Y)
		}
	}
	return nil
}
