package game

import (
	"testing"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDeadNPCs(t *testing.T) {
	s := newTestState(t, 300, 300)
	a := s.CreateNPC("dummy", pos(0, 0))
	b := s.CreateNPC("dummy", pos(50, 0))
	c := s.CreateNPC("dummy", pos(100, 0))
	a.Health.Lose(100)
	c.Health.Lose(6)

	dead := s.RemoveDeadNPCs()
	require.Len(t, dead, 2)
	assert.Same(t, a, dead[0])
	assert.Same(t, c, dead[1])
	assert.Equal(t, []ecs.Entity{b.ID}, s.NPCs.Entities())
	assert.Empty(t, s.RemoveDeadNPCs())
}

func TestRemoveQueued(t *testing.T) {
	s := newTestState(t, 300, 300)
	npc := s.CreateNPC("dummy", pos(0, 0))
	wall := s.AddWall(common.NewRect(100, 100, 25, 25))
	loot := s.AddLoot(pos(50, 50), LootMoney, 3, "")

	s.QueueRemoval(npc.ID)
	s.QueueRemoval(wall.ID)
	s.QueueRemoval(loot.ID)
	s.QueueRemoval(loot.ID)
	s.RemoveQueued()

	assert.Zero(t, s.NPCs.Len())
	assert.Zero(t, s.Walls.Len())
	assert.Zero(t, s.Loot.Len())
	assert.False(t, s.Grid().IsBlocked(4, 4))
}

type ageOnly struct {
	ProjectileBase
}

func TestRemoveExpiredAndCollected(t *testing.T) {
	s := newTestState(t, 300, 300)
	old := s.SpawnProjectile(ecs.None, common.NewRect(10, 10, 4, 4), "bolt", common.Right, 0, ageOnly{ProjectileBase{MaxAge: 100}})
	young := s.SpawnProjectile(ecs.None, common.NewRect(20, 10, 4, 4), "bolt", common.Right, 0, ageOnly{ProjectileBase{MaxAge: 100}})
	gone := s.SpawnProjectile(ecs.None, common.NewRect(20, 10, 4, 4), "bolt", common.Right, 0, ageOnly{ProjectileBase{MaxAge: 100}})
	hit := s.SpawnProjectile(ecs.None, common.NewRect(30, 10, 4, 4), "bolt", common.Right, 0, ageOnly{ProjectileBase{MaxAge: 100}})
	old.AgeMs = 100
	gone.Entity.SetPosition(pos(400, 10))
	hit.Collided = true

	s.AddChest(pos(200, 200), "dummy").Opened = true
	s.SpawnFloatingText(common.NewRect(0, 0, 10, 10), "1", StyleDamage).AgeMs = FloatingTextMs

	s.RemoveExpired()
	assert.Equal(t, []ecs.Entity{young.ID, hit.ID}, s.Projectiles.Entities())
	assert.Zero(t, s.Chests.Len())
	assert.Zero(t, s.Effects.Len())

	s.RemoveCollected()
	assert.Equal(t, []ecs.Entity{young.ID}, s.Projectiles.Entities())
}
