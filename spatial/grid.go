// Package spatial holds the two static-geometry indexes the simulation keeps:
// a fine occupancy grid for pathfinding and coarse buckets for collision.
package spatial

import (
	"fmt"

	"github.com/milk9111/ashvale/common"
)

// Cell is a coordinate on the occupancy grid.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// CellOf returns the grid cell containing a world position.
func CellOf(p common.Position) Cell {
	return Cell{X: floorDiv(p.X, common.CellWidth), Y: floorDiv(p.Y, common.CellWidth)}
}

// WorldPos returns the top-left world position of a cell.
func (c Cell) WorldPos() common.Position {
	return common.Position{X: c.X * common.CellWidth, Y: c.Y * common.CellWidth}
}

// OccupancyGrid marks cells that hold the top-left corner of a wall. Each cell
// counts the walls anchored in it so removing one of two stacked walls keeps
// the cell blocked.
type OccupancyGrid struct {
	cols  int
	rows  int
	walls []int
}

// NewOccupancyGrid sizes the grid for a world of the given dimensions.
func NewOccupancyGrid(worldW, worldH int) *OccupancyGrid {
	if worldW < 0 || worldH < 0 {
		panic(fmt.Sprintf("spatial: invalid world size %dx%d", worldW, worldH))
	}
	cols := worldW/common.CellWidth + 1
	rows := worldH/common.CellWidth + 1
	return &OccupancyGrid{cols: cols, rows: rows, walls: make([]int, cols*rows)}
}

func (g *OccupancyGrid) Cols() int { return g.cols }
func (g *OccupancyGrid) Rows() int { return g.rows }

func (g *OccupancyGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// IsBlocked reports whether the cell holds a wall. Cells outside the grid are
// always blocked.
func (g *OccupancyGrid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.walls[y*g.cols+x] > 0
}

// MarkWall records a wall whose top-left corner is at p.
func (g *OccupancyGrid) MarkWall(p common.Position) {
	c := CellOf(p)
	if !g.InBounds(c.X, c.Y) {
		panic(fmt.Sprintf("spatial: wall at %s outside grid", p))
	}
	g.walls[c.Y*g.cols+c.X]++
}

// UnmarkWall releases a wall previously recorded with MarkWall.
func (g *OccupancyGrid) UnmarkWall(p common.Position) {
	c := CellOf(p)
	if !g.InBounds(c.X, c.Y) {
		panic(fmt.Sprintf("spatial: wall at %s outside grid", p))
	}
	idx := c.Y*g.cols + c.X
	if g.walls[idx] == 0 {
		panic(fmt.Sprintf("spatial: no wall recorded in cell %s", c))
	}
	g.walls[idx]--
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
