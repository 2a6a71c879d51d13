// Package pathfind computes grid paths for agents of any footprint and turns
// them into per-tick steering directions.
package pathfind

import (
	"container/heap"

	"github.com/milk9111/ashvale/spatial"
)

// Grid is the occupancy information the search needs. Out-of-bounds cells
// must report blocked.
type Grid interface {
	IsBlocked(x, y int) bool
}

// Footprint is an agent's size in grid cells.
type Footprint struct {
	W int
	H int
}

var neighborOffsets = [...]spatial.Cell{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Searcher runs A* for one footprint size. Free-cell results are memoized by
// cell, which is why one searcher is shared by every agent of that size.
type Searcher struct {
	grid      Grid
	footprint Footprint
	free      map[spatial.Cell]bool
	expanded  int
}

func newSearcher(grid Grid, fp Footprint) *Searcher {
	return &Searcher{grid: grid, footprint: fp, free: make(map[spatial.Cell]bool)}
}

// IsFree reports whether an agent whose top-left is at c has every footprint
// cell unblocked.
func (s *Searcher) IsFree(c spatial.Cell) bool {
	if free, ok := s.free[c]; ok {
		return free
	}
	free := true
	for y := c.Y; y < c.Y+s.footprint.H && free; y++ {
		for x := c.X; x < c.X+s.footprint.W; x++ {
			if s.grid.IsBlocked(x, y) {
				free = false
				break
			}
		}
	}
	s.free[c] = free
	return free
}

// invalidate forgets memoized results that depend on cell c.
func (s *Searcher) invalidate(c spatial.Cell) {
	for y := c.Y - s.footprint.H + 1; y <= c.Y; y++ {
		for x := c.X - s.footprint.W + 1; x <= c.X; x++ {
			delete(s.free, spatial.Cell{X: x, Y: y})
		}
	}
}

// Search finds a shortest 4-connected path from start to goal that stays
// within maxDistance cells of start on both axes. The returned path includes
// both endpoints. The start cell itself is not required to be free.
func (s *Searcher) Search(start, goal spatial.Cell, maxDistance int) ([]spatial.Cell, bool) {
	s.expanded = 0
	if !withinWindow(start, goal, maxDistance) || !s.IsFree(goal) {
		return nil, false
	}
	if start == goal {
		return []spatial.Cell{start}, true
	}

	open := &openSet{}
	heap.Init(open)
	cameFrom := make(map[spatial.Cell]spatial.Cell, 64)
	gScore := map[spatial.Cell]int{start: 0}
	closed := make(map[spatial.Cell]bool, 64)
	seq := 0

	heap.Push(open, &openItem{cell: start, g: 0, h: manhattan(start, goal), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if closed[current.cell] {
			continue
		}
		if current.cell == goal {
			return reconstructPath(cameFrom, start, goal), true
		}
		closed[current.cell] = true
		s.expanded++

		for _, d := range neighborOffsets {
			n := spatial.Cell{X: current.cell.X + d.X, Y: current.cell.Y + d.Y}
			if closed[n] || !withinWindow(start, n, maxDistance) || !s.IsFree(n) {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[n]; ok && tentative >= prev {
				continue
			}
			gScore[n] = tentative
			cameFrom[n] = current.cell
			seq++
			heap.Push(open, &openItem{cell: n, g: tentative, h: manhattan(n, goal), seq: seq})
		}
	}
	return nil, false
}

func withinWindow(start, c spatial.Cell, maxDistance int) bool {
	dx := c.X - start.X
	dy := c.Y - start.Y
	return dx >= -maxDistance && dx <= maxDistance && dy >= -maxDistance && dy <= maxDistance
}

func reconstructPath(cameFrom map[spatial.Cell]spatial.Cell, start, goal spatial.Cell) []spatial.Cell {
	path := make([]spatial.Cell, 0, 32)
	cur := goal
	for {
		path = append(path, cur)
		if cur == start {
			break
		}
		cur = cameFrom[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b spatial.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

type openItem struct {
	cell  spatial.Cell
	g     int
	h     int
	seq   int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Less orders by f, then by h so nodes nearer the goal win ties, then by
// insertion order so the search is deterministic.
func (o openSet) Less(i, j int) bool {
	fi, fj := o[i].g+o[i].h, o[j].g+o[j].h
	if fi != fj {
		return fi < fj
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}
