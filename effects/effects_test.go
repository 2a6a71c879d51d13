package effects

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleMind struct{}

func (idleMind) Control(*game.GameState, *game.NPC, *game.Player, bool, int) {}

func newTestState(t *testing.T, w, h int) *game.GameState {
	t.Helper()
	tables := &content.Tables{
		Player: content.PlayerSpec{
			Sprite:         "hero",
			Width:          20,
			Height:         20,
			MaxHealth:      30,
			MaxMana:        20,
			Speed:          100,
			DamageModifier: 1,
			InventorySize:  4,
		},
		NPCs: map[string]content.NPCSpec{
			"grunt": {Name: "grunt", Width: 20, Height: 20, MaxHealth: 10, Speed: 50, Enemy: true, Mind: "idle"},
			"stone": {Name: "stone", Width: 20, Height: 20, MaxHealth: 10, Enemy: true, Invulnerable: true, Mind: "idle"},
			"pup":   {Name: "pup", Width: 20, Height: 20, MaxHealth: 8, Speed: 80, Summon: true, Mind: "idle"},
		},
	}
	reg := game.NewContentRegistry(tables)
	reg.RegisterMind("idle", func(*game.GameState, content.NPCSpec) game.Mind { return idleMind{} })
	Register(reg)
	return game.New(reg, w, h, game.Options{
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(11)),
	})
}

func TestStun(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Entity.Face(common.Right)

	s.ApplyBuff(p.ID, Stun{}, 100)
	s.TickBuffs(0)
	assert.True(t, p.Stun.Active())
	assert.False(t, p.Entity.Moving())

	s.TickBuffs(100)
	assert.False(t, p.Stun.Active())
	assert.False(t, p.Buffs.Has(TypeStun))
}

func TestStunDoesNotInterruptCharge(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Entity.SetDirection(common.Right)

	s.ApplyBuff(p.ID, Charging{Multiplier: 2, Damage: 3}, 1000)
	s.TickBuffs(0)
	s.ApplyBuff(p.ID, Stun{}, 500)
	s.TickBuffs(0)

	assert.True(t, p.Stun.Active())
	assert.True(t, p.Entity.Moving())
}

func TestCharging(t *testing.T) {
	t.Run("ends on the first enemy and stuns it", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		p := s.SpawnPlayer(common.Position{X: 50, Y: 50})
		p.Entity.SetDirection(common.Right)
		grunt := s.CreateNPC("grunt", common.Position{X: 72, Y: 50})

		s.ApplyBuff(p.ID, Charging{Multiplier: 2, Damage: 3}, 1000)
		s.TickBuffs(0)
		assert.InDelta(t, 3.0, p.Entity.SpeedMultiplier(), 1e-9)
		assert.True(t, p.Entity.Moving())

		s.TickBuffs(16)
		assert.Equal(t, 7, grunt.Health.Value())

		s.TickBuffs(16)
		assert.False(t, p.Buffs.Has(TypeCharging))
		assert.InDelta(t, 1.0, p.Entity.SpeedMultiplier(), 1e-9)
		assert.False(t, p.Entity.Moving())
		assert.True(t, grunt.Stun.Active())
	})

	t.Run("ends at the world edge", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		p := s.SpawnPlayer(common.Position{X: 380, Y: 50})
		p.Entity.SetDirection(common.Right)

		s.ApplyBuff(p.ID, Charging{Multiplier: 2}, 1000)
		s.TickBuffs(0)
		s.TickBuffs(16)
		s.TickBuffs(16)

		assert.False(t, p.Buffs.Has(TypeCharging))
	})

	t.Run("keeps going in the open", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		p := s.SpawnPlayer(common.Position{X: 50, Y: 50})
		p.Entity.SetDirection(common.Down)

		s.ApplyBuff(p.ID, Charging{Multiplier: 2}, 1000)
		s.TickBuffs(0)
		s.TickBuffs(16)
		s.TickBuffs(16)

		assert.True(t, p.Buffs.Has(TypeCharging))
	})
}

func TestSneak(t *testing.T) {
	tests := []struct {
		name   string
		event  buff.Event
		cancel bool
	}{
		{"own ability keeps it", buff.Event{Kind: buff.EventPlayerUsedAbility, Ability: "sneak"}, false},
		{"other ability cancels", buff.Event{Kind: buff.EventPlayerUsedAbility, Ability: "fireball"}, true},
		{"damage cancels", buff.Event{Kind: buff.EventPlayerDamaged, Amount: 1}, true},
		{"kills are ignored", buff.Event{Kind: buff.EventEnemyDied}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, 400, 300)
			p := s.SpawnPlayer(common.Position{X: 100, Y: 100})

			require.NoError(t, SneakAbility(s, content.AbilitySpec{Name: "sneak", DurationMs: 5000}))
			s.TickBuffs(0)
			require.True(t, p.Invisible())
			require.Equal(t, 1, s.Effects.Len())

			s.NotifyEvent(tt.event)
			s.TickBuffs(16)
			s.RemoveQueued()

			assert.Equal(t, !tt.cancel, p.Invisible())
			assert.Equal(t, !tt.cancel, p.Buffs.Has(TypeSneak))
			if tt.cancel {
				assert.Equal(t, 0, s.Effects.Len())
			}
		})
	}
}

func TestBloodlust(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})

	require.NoError(t, BloodlustAbility(s, content.AbilitySpec{Amount: 0.5, DurationMs: 1000}))
	s.TickBuffs(0)
	assert.InDelta(t, 1.5, p.DamageModifier(), 1e-9)

	s.NotifyEvent(buff.Event{Kind: buff.EventEnemyDied})
	active, ok := p.Buffs.Get(TypeBloodlust)
	require.True(t, ok)
	left, finite := active.Remaining()
	assert.True(t, finite)
	assert.Equal(t, 2000, left)

	s.TickBuffs(2000)
	assert.False(t, p.Buffs.Has(TypeBloodlust))
	assert.InDelta(t, 1.0, p.DamageModifier(), 1e-9)
}

func TestBurning(t *testing.T) {
	t.Run("damages every interval", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		grunt := s.CreateNPC("grunt", common.Position{X: 50, Y: 50})

		s.ApplyBuff(grunt.ID, &Burning{PerSecond: 4}, 2000)
		s.TickBuffs(0)
		assert.Equal(t, 1, s.Effects.Len())

		s.TickBuffs(300)
		assert.Equal(t, 10, grunt.Health.Value())
		s.TickBuffs(300)
		assert.Equal(t, 8, grunt.Health.Value())
	})

	t.Run("stops on an invulnerable target", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		stone := s.CreateNPC("stone", common.Position{X: 50, Y: 50})

		s.ApplyBuff(stone.ID, &Burning{PerSecond: 4}, 2000)
		s.TickBuffs(0)
		s.TickBuffs(500)
		s.TickBuffs(0)

		assert.False(t, stone.Buffs.Has(TypeBurning))
		assert.Equal(t, 10, stone.Health.Value())
	})
}

func TestSpeedBuffs(t *testing.T) {
	s := newTestState(t, 400, 300)
	grunt := s.CreateNPC("grunt", common.Position{X: 50, Y: 50})

	s.ApplyBuff(grunt.ID, s.Registry.NewBuff(TypeSlow), 500)
	s.TickBuffs(0)
	assert.InDelta(t, 1-SlowAmount, grunt.Entity.SpeedMultiplier(), 1e-9)
	assert.InDelta(t, 30.0, grunt.Entity.Speed(), 1e-9)

	s.ApplyBuff(grunt.ID, s.Registry.NewBuff(TypeHaste), 500)
	s.TickBuffs(0)
	assert.InDelta(t, 1-SlowAmount+HasteAmount, grunt.Entity.SpeedMultiplier(), 1e-9)

	s.TickBuffs(500)
	assert.InDelta(t, 1.0, grunt.Entity.SpeedMultiplier(), 1e-9)
}

func TestInvulnerableBuff(t *testing.T) {
	s := newTestState(t, 400, 300)
	grunt := s.CreateNPC("grunt", common.Position{X: 50, Y: 50})

	s.ApplyBuff(grunt.ID, Invulnerable{}, 100)
	s.TickBuffs(0)
	_, ok := s.DamageNPC(grunt, 5)
	assert.False(t, ok)

	s.TickBuffs(100)
	assert.False(t, grunt.Invulnerable())
}

func TestFireball(t *testing.T) {
	s := newTestState(t, 400, 300)
	s.SpawnPlayer(common.Position{X: 300, Y: 200})
	grunt := s.CreateNPC("grunt", common.Position{X: 50, Y: 50})
	stone := s.CreateNPC("stone", common.Position{X: 100, Y: 50})
	fb := Fireball{Damage: 4, BurnMs: 1000, BurnPerSec: 2}

	assert.True(t, fb.OnEnemyHit(s, nil, grunt))
	assert.Equal(t, 6, grunt.Health.Value())
	assert.True(t, grunt.Buffs.Has(TypeBurning))

	assert.True(t, fb.OnEnemyHit(s, nil, stone))
	assert.False(t, stone.Buffs.Has(TypeBurning))
}

func TestArrowPiercesOncePerEnemy(t *testing.T) {
	s := newTestState(t, 400, 300)
	s.SpawnPlayer(common.Position{X: 300, Y: 200})
	a := s.CreateNPC("grunt", common.Position{X: 50, Y: 50})
	b := s.CreateNPC("grunt", common.Position{X: 100, Y: 50})
	arrow := NewArrow(1000, 3)

	assert.False(t, arrow.OnEnemyHit(s, nil, a))
	assert.False(t, arrow.OnEnemyHit(s, nil, a))
	assert.False(t, arrow.OnEnemyHit(s, nil, b))

	assert.Equal(t, 2, arrow.Hits())
	assert.Equal(t, 7, a.Health.Value())
	assert.Equal(t, 7, b.Health.Value())
}

func TestEnemyBolt(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 300, Y: 200})
	pup := s.CreateNPC("pup", common.Position{X: 50, Y: 50})
	bolt := EnemyBolt{Damage: 2, Buff: TypeSlow, BuffMs: 1000}

	assert.True(t, bolt.OnPlayerHit(s, nil, p))
	assert.Equal(t, 28, p.Health.Value())
	assert.True(t, p.Buffs.Has(TypeSlow))

	assert.True(t, bolt.OnSummonHit(s, nil, pup))
	assert.Equal(t, 6, pup.Health.Value())

	assert.False(t, bolt.OnEnemyHit(s, nil, pup))
}

func TestMeleeSwing(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Entity.SetDirection(common.Right)
	front := s.CreateNPC("grunt", common.Position{X: 125, Y: 100})
	behind := s.CreateNPC("grunt", common.Position{X: 60, Y: 100})

	require.NoError(t, MeleeSwing(s, content.AbilitySpec{Damage: 2, Range: 20}))

	assert.Equal(t, 8, front.Health.Value())
	assert.Equal(t, 10, behind.Health.Value())

	var slashes int
	for _, fx := range s.Effects.All() {
		if fx.Sprite == "slash" {
			slashes++
			assert.Equal(t, p.ID, fx.Anchor)
		}
	}
	assert.Equal(t, 1, slashes)
}

func TestProjectileAbilities(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Entity.SetDirection(common.Left)

	require.NoError(t, FireballAbility(s, content.AbilitySpec{Damage: 4, Range: 300}))
	require.NoError(t, ArrowAbility(s, content.AbilitySpec{Damage: 3, Range: 450}))

	require.Equal(t, 2, s.Projectiles.Len())
	for _, proj := range s.Projectiles.All() {
		assert.Equal(t, p.ID, proj.Owner)
		assert.Equal(t, common.Left, proj.Entity.Direction())
		assert.LessOrEqual(t, proj.Entity.Rect().X+proj.Entity.Rect().W, p.Entity.Rect().X)
	}
}

func TestHealAbility(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Health.Lose(10)

	require.NoError(t, HealAbility(s, content.AbilitySpec{Amount: 5}))
	assert.Equal(t, 25, p.Health.Value())

	require.NoError(t, HealAbility(s, content.AbilitySpec{Amount: 50}))
	assert.Equal(t, 30, p.Health.Value())
}

func TestSummonAbility(t *testing.T) {
	spec := content.AbilitySpec{Name: "call_pup", Summon: "pup"}

	t.Run("facing side first", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
		p.Entity.SetDirection(common.Right)

		require.NoError(t, SummonAbility(s, spec))
		require.Equal(t, 1, s.NPCs.Len())
		for _, npc := range s.NPCs.All() {
			assert.True(t, npc.Summon)
			assert.Equal(t, 120, npc.Entity.Position().X)
		}
	})

	t.Run("falls back when blocked", func(t *testing.T) {
		s := newTestState(t, 400, 300)
		p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
		p.Entity.SetDirection(common.Right)
		s.AddWall(common.NewRect(125, 100, 25, 25))

		require.NoError(t, SummonAbility(s, spec))
		for _, npc := range s.NPCs.All() {
			assert.Less(t, npc.Entity.Position().X, 120)
		}
	})

	t.Run("no room", func(t *testing.T) {
		s := newTestState(t, 40, 40)
		s.SpawnPlayer(common.Position{X: 10, Y: 10})

		assert.ErrorIs(t, SummonAbility(s, spec), ErrNoRoom)
		assert.Equal(t, 0, s.NPCs.Len())
	})
}

func TestVigor(t *testing.T) {
	s := newTestState(t, 400, 300)
	p := s.SpawnPlayer(common.Position{X: 100, Y: 100})
	p.Health.Lose(5)
	v := s.Registry.NewPassive("vigor", content.ItemSpec{})

	v.Tick(s, VigorIntervalMs-1)
	assert.Equal(t, 25, p.Health.Value())
	v.Tick(s, 1)
	assert.Equal(t, 26, p.Health.Value())
	v.Tick(s, 2*VigorIntervalMs)
	assert.Equal(t, 28, p.Health.Value())
}
