package content

import (
	"errors"
	"fmt"

	"github.com/milk9111/ashvale/common"
)

// WallTileSize is the side of one wall tile. Walls are always aligned to the
// pathfinding grid.
const WallTileSize = common.CellWidth

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p PointSpec) Position() common.Position {
	return common.Position{X: p.X, Y: p.Y}
}

// WallSpec is a block of Cols x Rows wall tiles with its top-left at X,Y.
type WallSpec struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Tiles expands the block into tile top-left positions.
func (w WallSpec) Tiles() []common.Position {
	cols, rows := max(w.Cols, 1), max(w.Rows, 1)
	out := make([]common.Position, 0, cols*rows)
	for r := range rows {
		for c := range cols {
			out = append(out, common.Position{X: w.X + c*WallTileSize, Y: w.Y + r*WallTileSize})
		}
	}
	return out
}

type SpawnSpec struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

type PortalSpec struct {
	X    int       `yaml:"x"`
	Y    int       `yaml:"y"`
	Dest PointSpec `yaml:"dest"`
}

type DecorationSpec struct {
	Sprite string `yaml:"sprite"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	W      int    `yaml:"w"`
	H      int    `yaml:"h"`
}

type ChestSpec struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	LootTable string `yaml:"loot_table"`
}

// MapSpec describes the initial contents of a world.
type MapSpec struct {
	Name        string           `yaml:"name"`
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Player      PointSpec        `yaml:"player"`
	Walls       []WallSpec       `yaml:"walls"`
	NPCs        []SpawnSpec      `yaml:"npcs"`
	Portals     []PortalSpec     `yaml:"portals"`
	Decorations []DecorationSpec `yaml:"decorations"`
	Chests      []ChestSpec      `yaml:"chests"`
}

// LoadMap reads maps/<name>.yaml and checks it against t.
func LoadMap(src Source, name string, t *Tables) (*MapSpec, error) {
	file := "maps/" + name + ".yaml"
	m, err := loadYAML[MapSpec](src, file)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = name
	}
	if err := m.Validate(t); err != nil {
		return nil, fmt.Errorf("content: map %s: %w", name, err)
	}
	return &m, nil
}

func (m *MapSpec) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Validate checks bounds, wall alignment and type references.
func (m *MapSpec) Validate(t *Tables) error {
	var errs []error
	if m.Width <= 0 || m.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", m.Width, m.Height))
	}
	if !m.inside(m.Player.X, m.Player.Y) {
		errs = append(errs, fmt.Errorf("player spawn %s outside map", m.Player.Position()))
	}
	for i, w := range m.Walls {
		if w.X%WallTileSize != 0 || w.Y%WallTileSize != 0 {
			errs = append(errs, fmt.Errorf("wall %d at (%d,%d) not aligned to %d", i, w.X, w.Y, WallTileSize))
		}
		for _, p := range w.Tiles() {
			if !m.inside(p.X, p.Y) {
				errs = append(errs, fmt.Errorf("wall %d tile %s outside map", i, p))
				break
			}
		}
	}
	for i, n := range m.NPCs {
		if t != nil {
			if _, ok := t.NPCs[n.Type]; !ok {
				errs = append(errs, fmt.Errorf("npc %d: unknown type %q", i, n.Type))
			}
		}
		if !m.inside(n.X, n.Y) {
			errs = append(errs, fmt.Errorf("npc %d outside map", i))
		}
	}
	for i, p := range m.Portals {
		if !m.inside(p.X, p.Y) || !m.inside(p.Dest.X, p.Dest.Y) {
			errs = append(errs, fmt.Errorf("portal %d outside map", i))
		}
	}
	for i, c := range m.Chests {
		if t != nil {
			if _, ok := t.Loot[c.LootTable]; !ok {
				errs = append(errs, fmt.Errorf("chest %d: unknown loot table %q", i, c.LootTable))
			}
		}
		if !m.inside(c.X, c.Y) {
			errs = append(errs, fmt.Errorf("chest %d outside map", i))
		}
	}
	return errors.Join(errs...)
}
