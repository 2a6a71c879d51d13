package pathfind

import (
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/spatial"
)

// MaxDistanceFromStart bounds the search window, in cells, around the start.
const MaxDistanceFromStart = 20

// Search describes one completed path query. It is handed to the Observer.
type Search struct {
	Footprint Footprint
	Start     spatial.Cell
	Goal      spatial.Cell
	Path      []spatial.Cell
	Found     bool
	Expanded  int
}

// Observer receives every search the pathfinder runs. It exists for debug
// visualisation and must not mutate the path.
type Observer func(Search)

// Pathfinder keeps one Searcher per footprint over a shared grid.
type Pathfinder struct {
	grid      Grid
	searchers map[Footprint]*Searcher
	observer  Observer
}

func New(grid Grid) *Pathfinder {
	return &Pathfinder{grid: grid, searchers: make(map[Footprint]*Searcher)}
}

// SetObserver installs a debug observer; nil removes it.
func (p *Pathfinder) SetObserver(o Observer) {
	p.observer = o
}

func (p *Pathfinder) searcher(fp Footprint) *Searcher {
	s, ok := p.searchers[fp]
	if !ok {
		s = newSearcher(p.grid, fp)
		p.searchers[fp] = s
	}
	return s
}

// FootprintOf converts an agent size in world units to cells. The extra cell
// covers agents whose position is not aligned to the grid.
func FootprintOf(w, h int) Footprint {
	return Footprint{W: w/common.CellWidth + 1, H: h/common.CellWidth + 1}
}

// FindPath searches from start to goal. When the goal cannot be reached the
// cell above it and then the cell left of it are tried, since the literal
// goal is often covered by the target's own body.
func (p *Pathfinder) FindPath(fp Footprint, start, goal spatial.Cell) ([]spatial.Cell, bool) {
	s := p.searcher(fp)
	candidates := [...]spatial.Cell{
		goal,
		{X: goal.X, Y: goal.Y - 1},
		{X: goal.X - 1, Y: goal.Y},
	}
	for _, c := range candidates {
		path, ok := s.Search(start, c, MaxDistanceFromStart)
		if p.observer != nil {
			p.observer(Search{Footprint: fp, Start: start, Goal: c, Path: path, Found: ok, Expanded: s.expanded})
		}
		if ok {
			return path, true
		}
	}
	return nil, false
}

// FindWorldPath plans for an agent occupying rect toward a world target and
// returns the waypoints as cell-aligned world positions.
func (p *Pathfinder) FindWorldPath(agent common.Rect, target common.Position) ([]common.Position, bool) {
	fp := FootprintOf(agent.W, agent.H)
	cells, ok := p.FindPath(fp, spatial.CellOf(agent.TopLeft()), spatial.CellOf(target))
	if !ok {
		return nil, false
	}
	out := make([]common.Position, len(cells))
	for i, c := range cells {
		out[i] = c.WorldPos()
	}
	return out, true
}

// WallChanged drops memoized free-cell results that a wall anchored in c
// could have affected.
func (p *Pathfinder) WallChanged(c spatial.Cell) {
	for _, s := range p.searchers {
		s.invalidate(c)
	}
}
