package game

import (
	"testing"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
	"github.com/milk9111/ashvale/pathfind"
	"github.com/milk9111/ashvale/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallIndexesStayConsistent(t *testing.T) {
	s := newTestState(t, 400, 400)
	w := s.AddWall(common.NewRect(125, 150, 25, 25))

	assert.True(t, s.Grid().IsBlocked(5, 6))
	assert.Len(t, s.WallsNear(pos(110, 110)), 1)
	assert.Empty(t, s.WallsNear(pos(390, 390)))

	require.True(t, s.RemoveWall(w.ID))
	assert.False(t, s.Grid().IsBlocked(5, 6))
	assert.Empty(t, s.WallsNear(pos(110, 110)))
	assert.Zero(t, s.Walls.Len())
	assert.False(t, s.RemoveWall(w.ID), "stale handle")
}

func TestWallChangesReachPathfinder(t *testing.T) {
	s := newTestState(t, 200, 100)
	fp := pathfind.FootprintOf(10, 10)
	start, goal := spatial.Cell{X: 0, Y: 0}, spatial.Cell{X: 4, Y: 0}

	path, ok := s.Pathfinder.FindPath(fp, start, goal)
	require.True(t, ok)
	assert.Len(t, path, 5)

	wall := s.AddWall(common.NewRect(50, 0, 25, 25))
	path, ok = s.Pathfinder.FindPath(fp, start, goal)
	require.True(t, ok)
	assert.Len(t, path, 7, "detours below the new wall")

	s.RemoveWall(wall.ID)
	path, ok = s.Pathfinder.FindPath(fp, start, goal)
	require.True(t, ok)
	assert.Len(t, path, 5)
}

func TestWallOutsideWorldPanics(t *testing.T) {
	s := newTestState(t, 100, 100)
	assert.Panics(t, func() { s.AddWall(common.NewRect(90, 0, 25, 25)) })
}

func TestMoveIfLegal(t *testing.T) {
	s := newTestState(t, 300, 300)
	p := s.SpawnPlayer(pos(10, 10))
	s.AddWall(common.NewRect(50, 0, 25, 25))
	npc := s.CreateNPC("dummy", pos(10, 100))

	tests := []struct {
		name  string
		to    common.Position
		moved bool
		want  common.Position
	}{
		{"free", pos(20, 10), true, pos(20, 10)},
		{"into wall", pos(40, 10), false, pos(20, 10)},
		{"touching wall edge", pos(30, 10), true, pos(30, 10)},
		{"into npc", pos(15, 85), false, pos(30, 10)},
		{"clamped at border", pos(-50, 40), true, pos(0, 40)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.moved, s.MoveIfLegal(p.ID, &p.Entity, tc.to))
			assert.Equal(t, tc.want, p.Entity.Position())
		})
	}
	assert.Equal(t, pos(10, 100), npc.Entity.Position())
}

func TestWouldCollide(t *testing.T) {
	s := newTestState(t, 200, 200)
	p := s.SpawnPlayer(pos(10, 10))
	npc := s.CreateNPC("dummy", pos(100, 100))

	assert.False(t, s.WouldCollide(p.ID, p.Entity.Rect()), "ignores itself")
	assert.True(t, s.WouldCollide(npc.ID, p.Entity.Rect()))
	assert.True(t, s.WouldCollide(ecs.None, common.NewRect(110, 110, 5, 5)))
	assert.Panics(t, func() { s.WouldCollide(p.ID, common.NewRect(190, 0, 20, 20)) })
}

func TestAdvanceStopsFlushAgainstWall(t *testing.T) {
	s := newTestState(t, 300, 100)
	p := s.SpawnPlayer(pos(0, 25))
	s.AddWall(common.NewRect(50, 25, 25, 25))
	p.Entity.Face(common.Right)

	// 100 units/s for 100 ms is 10 units per tick.
	assert.True(t, s.Advance(p.ID, &p.Entity, 100))
	assert.Equal(t, pos(10, 25), p.Entity.Position())
	s.Advance(p.ID, &p.Entity, 100)
	s.Advance(p.ID, &p.Entity, 100)
	assert.Equal(t, pos(30, 25), p.Entity.Position(), "flush with the wall")
	assert.False(t, s.Advance(p.ID, &p.Entity, 100))
	assert.Equal(t, pos(30, 25), p.Entity.Position())
}

func TestAdvanceCarriesFractions(t *testing.T) {
	s := newTestState(t, 300, 100)
	p := s.SpawnPlayer(pos(0, 0))
	p.Entity.Face(common.Right)
	for range 10 {
		s.Advance(p.ID, &p.Entity, 5) // half a unit each
	}
	assert.Equal(t, 5, p.Entity.Position().X)
}

func TestAgentLookahead(t *testing.T) {
	s := newTestState(t, 200, 200)
	npc := s.CreateNPC("dummy", pos(3, 50))
	s.AddWall(common.NewRect(25, 50, 25, 25))
	a := s.Agent(npc)

	assert.True(t, a.WouldCollide(common.Right, 100))
	assert.False(t, a.WouldCollide(common.Down, 100))
	assert.True(t, a.WouldCollide(common.Left, 100), "leaving the world counts as blocked")
}

func TestWorldEntityOf(t *testing.T) {
	s := newTestState(t, 200, 200)
	p := s.SpawnPlayer(pos(0, 0))
	npc := s.CreateNPC("dummy", pos(100, 100))
	wall := s.AddWall(common.NewRect(150, 150, 25, 25))

	for _, id := range []ecs.Entity{p.ID, npc.ID, wall.ID} {
		_, ok := s.WorldEntityOf(id)
		assert.True(t, ok, id.String())
	}
	s.NPCs.Remove(npc.ID)
	_, ok := s.WorldEntityOf(npc.ID)
	assert.False(t, ok)
}
