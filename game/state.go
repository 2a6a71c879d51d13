package game

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/pathfind"
	"github.com/milk9111/ashvale/spatial"
)

const (
	DefaultViewWidth  = 640
	DefaultViewHeight = 480
)

// Options configures a new GameState. Zero values select defaults.
type Options struct {
	Logger     *log.Logger
	Rand       *rand.Rand
	ViewWidth  int
	ViewHeight int
}

// GameState owns every live entity. It is not safe for concurrent use; the
// engine mutates it from a single goroutine.
type GameState struct {
	Log      *log.Logger
	Rand     *rand.Rand
	Registry *ContentRegistry

	Width  int
	Height int

	Player      *Player
	NPCs        *ecs.Arena[NPC]
	Projectiles *ecs.Arena[Projectile]
	Loot        *ecs.Arena[LootPile]
	Walls       *ecs.Arena[Wall]
	Portals     *ecs.Arena[Portal]
	Decorations *ecs.Arena[Decoration]
	Chests      *ecs.Arena[Chest]
	Effects     *ecs.Arena[VisualEffect]

	Pathfinder *pathfind.Pathfinder
	Camera     *Camera
	Feedback   FeedbackQueue

	alloc       *ecs.Allocator
	grid        *spatial.OccupancyGrid
	wallBuckets *spatial.Buckets[ecs.Entity]
	pending     []ecs.Entity
}

// New creates an empty world of the given size.
func New(reg *ContentRegistry, width, height int, opts Options) *GameState {
	if reg == nil {
		panic("game: nil content registry")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.ViewWidth <= 0 {
		opts.ViewWidth = DefaultViewWidth
	}
	if opts.ViewHeight <= 0 {
		opts.ViewHeight = DefaultViewHeight
	}

	alloc := ecs.NewAllocator()
	grid := spatial.NewOccupancyGrid(width, height)
	s := &GameState{
		Log:         opts.Logger,
		Rand:        opts.Rand,
		Registry:    reg,
		Width:       width,
		Height:      height,
		NPCs:        ecs.NewArena[NPC](alloc),
		Projectiles: ecs.NewArena[Projectile](alloc),
		Loot:        ecs.NewArena[LootPile](alloc),
		Walls:       ecs.NewArena[Wall](alloc),
		Portals:     ecs.NewArena[Portal](alloc),
		Decorations: ecs.NewArena[Decoration](alloc),
		Chests:      ecs.NewArena[Chest](alloc),
		Effects:     ecs.NewArena[VisualEffect](alloc),
		Pathfinder:  pathfind.New(grid),
		Camera:      NewCamera(opts.ViewWidth, opts.ViewHeight),
		alloc:       alloc,
		grid:        grid,
		wallBuckets: spatial.NewBuckets[ecs.Entity](common.BucketWidth, common.BucketHeight),
	}
	s.Camera.SetWorldBounds(width, height)
	return s
}

// Bounds is the world rectangle.
func (s *GameState) Bounds() common.Rect {
	return common.NewRect(0, 0, s.Width, s.Height)
}

// Grid exposes the occupancy grid for debug drawing.
func (s *GameState) Grid() *spatial.OccupancyGrid {
	return s.grid
}

// WallsNear returns the walls in the 3x3 bucket neighbourhood of p.
func (s *GameState) WallsNear(p common.Position) []*Wall {
	ids := s.wallBuckets.Near(p)
	out := make([]*Wall, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.Walls.MustGet(id))
	}
	return out
}

// WallsInRange returns the walls whose buckets overlap r, widened by one
// bucket on every side.
func (s *GameState) WallsInRange(r common.Rect) []*Wall {
	ids := s.wallBuckets.InRange(r)
	out := make([]*Wall, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.Walls.MustGet(id))
	}
	return out
}

// WorldEntityOf finds the physical entity behind any handle.
func (s *GameState) WorldEntityOf(e ecs.Entity) (*WorldEntity, bool) {
	if s.Player != nil && e == s.Player.ID {
		return &s.Player.Entity, true
	}
	if v, ok := s.NPCs.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Projectiles.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Loot.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Chests.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Portals.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Walls.Get(e); ok {
		return &v.Entity, true
	}
	if v, ok := s.Decorations.Get(e); ok {
		return &v.Entity, true
	}
	return nil, false
}

// NearCamera reports whether r is inside the camera view widened by
// NearCameraMargin.
func (s *GameState) NearCamera(r common.Rect) bool {
	return s.Camera.Near(r)
}

func (s *GameState) clampIntoWorld(r common.Rect) common.Rect {
	x := common.Clamp(r.X, 0, max(0, s.Width-r.W))
	y := common.Clamp(r.Y, 0, max(0, s.Height-r.H))
	return r.At(common.Position{X: x, Y: y})
}

// PlayerDead reports the terminal condition.
func (s *GameState) PlayerDead() bool {
	return s.Player != nil && s.Player.Health.IsAtOrBelowZero()
}
