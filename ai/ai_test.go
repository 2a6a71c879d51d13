package ai

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/effects"
	"github.com/milk9111/ashvale/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() *content.Tables {
	return &content.Tables{
		Player: content.PlayerSpec{
			Sprite:         "hero",
			Width:          20,
			Height:         20,
			MaxHealth:      30,
			MaxMana:        10,
			Speed:          100,
			DamageModifier: 1,
			InventorySize:  4,
		},
		NPCs: map[string]content.NPCSpec{
			"brute":  {Name: "brute", Width: 20, Height: 20, MaxHealth: 10, Speed: 60, Enemy: true, Mind: "chaser", AttackRange: 5, AttackDamage: 4, CooldownMs: 500},
			"mage":   {Name: "mage", Width: 20, Height: 20, MaxHealth: 10, Speed: 60, Enemy: true, Mind: "caster", AttackRange: 300, AttackDamage: 2, CooldownMs: 1000},
			"mouse":  {Name: "mouse", Width: 10, Height: 10, MaxHealth: 2, Speed: 40, Neutral: true, Mind: "wanderer"},
			"hound":  {Name: "hound", Width: 20, Height: 20, MaxHealth: 10, Speed: 80, Summon: true, Mind: "summon", AttackRange: 5, AttackDamage: 2, CooldownMs: 400, LifetimeMs: 1000},
			"target": {Name: "target", Width: 20, Height: 20, MaxHealth: 6, Enemy: true, Mind: "wanderer"},
			"warden": {Name: "warden", Width: 20, Height: 20, MaxHealth: 10, Speed: 60, Enemy: true, Mind: "script", Script: "warden", AttackRange: 300, AttackDamage: 1, CooldownMs: 500},
		},
	}
}

func newTestState(t *testing.T, scripts *ScriptCache) *game.GameState {
	t.Helper()
	reg := game.NewContentRegistry(testTables())
	Register(reg, Options{Scripts: scripts})
	s := game.New(reg, 400, 300, game.Options{
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(5)),
	})
	return s
}

// walk runs the mind and movement together until done reports true or ticks
// run out, and returns how many ticks it took.
func walk(s *game.GameState, npc *game.NPC, player *game.Player, ticks int, done func() bool) int {
	for i := 1; i <= ticks; i++ {
		npc.Mind.Control(s, npc, player, false, 16)
		s.Advance(npc.ID, &npc.Entity, 16)
		if done() {
			return i
		}
	}
	return ticks + 1
}

func TestChaserApproachesAndStrikes(t *testing.T) {
	tests := []struct {
		name  string
		start common.Position
		dir   common.Direction
	}{
		{"from the left", common.Position{X: 50, Y: 50}, common.Right},
		{"from the right", common.Position{X: 350, Y: 50}, common.Left},
		{"from below", common.Position{X: 200, Y: 200}, common.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, nil)
			player := s.SpawnPlayer(common.Position{X: 200, Y: 50})
			npc := s.CreateNPC("brute", tt.start)

			npc.Mind.Control(s, npc, player, false, 16)
			assert.True(t, npc.Entity.Moving())
			assert.Equal(t, tt.dir, npc.Entity.Direction())

			ticks := walk(s, npc, player, 600, func() bool { return player.Health.Value() < 30 })
			require.LessOrEqual(t, ticks, 600, "stalled at %v", npc.Entity.Position())
			assert.Equal(t, 26, player.Health.Value())
			assert.False(t, npc.Entity.Moving())
			assert.True(t, npc.Entity.Rect().Grow(5).Intersects(player.Entity.Rect()))
		})
	}

	t.Run("cooldown holds the next strike", func(t *testing.T) {
		s := newTestState(t, nil)
		player := s.SpawnPlayer(common.Position{X: 200, Y: 50})
		npc := s.CreateNPC("brute", common.Position{X: 178, Y: 50})

		npc.Mind.Control(s, npc, player, false, 16)
		assert.False(t, npc.Entity.Moving())
		assert.Equal(t, 26, player.Health.Value())

		npc.Mind.Control(s, npc, player, false, 100)
		assert.Equal(t, 26, player.Health.Value())

		npc.Mind.Control(s, npc, player, false, 400)
		assert.Equal(t, 22, player.Health.Value())
	})
}

func TestChaserIgnoresInvisiblePlayer(t *testing.T) {
	s := newTestState(t, nil)
	player := s.SpawnPlayer(common.Position{X: 200, Y: 50})
	npc := s.CreateNPC("brute", common.Position{X: 178, Y: 50})

	player.AddInvisibility()
	npc.Mind.Control(s, npc, player, player.Invisible(), 16)

	assert.False(t, npc.Entity.Moving())
	assert.Equal(t, 30, player.Health.Value())
}

func TestStrayOverride(t *testing.T) {
	always := 1.0
	reg := game.NewContentRegistry(testTables())
	Register(reg, Options{StrayOverride: &always})
	s := game.New(reg, 400, 300, game.Options{Logger: log.New(io.Discard), Rand: rand.New(rand.NewSource(5))})
	player := s.SpawnPlayer(common.Position{X: 300, Y: 150})
	npc := s.CreateNPC("brute", common.Position{X: 50, Y: 150})

	npc.Mind.Control(s, npc, player, false, 16)

	assert.True(t, npc.Entity.Moving())
	assert.Contains(t, []common.Direction{common.Up, common.Down}, npc.Entity.Direction())
}

func TestCasterFiresAlongSharedAxis(t *testing.T) {
	s := newTestState(t, nil)
	player := s.SpawnPlayer(common.Position{X: 200, Y: 52})
	npc := s.CreateNPC("mage", common.Position{X: 50, Y: 50})

	npc.Mind.Control(s, npc, player, false, 16)

	require.Equal(t, 1, s.Projectiles.Len())
	for _, p := range s.Projectiles.All() {
		assert.Equal(t, npc.ID, p.Owner)
		assert.Equal(t, common.Right, p.Entity.Direction())
		assert.Equal(t, 300*1000/BoltSpeed, p.Controller.MaxAgeMs())
	}
	assert.Equal(t, common.Right, npc.Entity.Direction())

	npc.Mind.Control(s, npc, player, false, 16)
	assert.Equal(t, 1, s.Projectiles.Len(), "cooldown")
}

func TestCasterLinesUpBeforeFiring(t *testing.T) {
	s := newTestState(t, nil)
	player := s.SpawnPlayer(common.Position{X: 200, Y: 150})
	npc := s.CreateNPC("mage", common.Position{X: 50, Y: 50})

	npc.Mind.Control(s, npc, player, false, 16)

	assert.Equal(t, 0, s.Projectiles.Len())
	assert.True(t, npc.Entity.Moving())
	assert.Equal(t, common.Down, npc.Entity.Direction())
}

func TestWandererWalksThenPauses(t *testing.T) {
	s := newTestState(t, nil)
	npc := s.CreateNPC("mouse", common.Position{X: 200, Y: 150})

	npc.Mind.Control(s, npc, nil, false, 0)
	assert.True(t, npc.Entity.Moving())

	npc.Mind.Control(s, npc, nil, false, 2000)
	assert.False(t, npc.Entity.Moving())
}

func TestSummon(t *testing.T) {
	t.Run("attacks nearby enemy", func(t *testing.T) {
		s := newTestState(t, nil)
		player := s.SpawnPlayer(common.Position{X: 300, Y: 200})
		enemy := s.CreateNPC("target", common.Position{X: 72, Y: 50})
		hound := s.CreateNPC("hound", common.Position{X: 50, Y: 50})

		hound.Mind.Control(s, hound, player, false, 16)

		assert.Equal(t, 4, enemy.Health.Value())
		assert.False(t, hound.Entity.Moving())
	})

	t.Run("walks up to an enemy and bites", func(t *testing.T) {
		s := newTestState(t, nil)
		player := s.SpawnPlayer(common.Position{X: 300, Y: 50})
		enemy := s.CreateNPC("target", common.Position{X: 200, Y: 150})
		hound := s.CreateNPC("hound", common.Position{X: 120, Y: 150})

		ticks := walk(s, hound, player, 60, func() bool { return enemy.Health.Value() < 6 })
		require.LessOrEqual(t, ticks, 60, "stalled at %v", hound.Entity.Position())
		assert.Equal(t, 4, enemy.Health.Value())
	})

	t.Run("follows the player when idle", func(t *testing.T) {
		s := newTestState(t, nil)
		player := s.SpawnPlayer(common.Position{X: 300, Y: 50})
		hound := s.CreateNPC("hound", common.Position{X: 50, Y: 50})

		hound.Mind.Control(s, hound, player, false, 16)

		assert.True(t, hound.Entity.Moving())
		assert.Equal(t, common.Right, hound.Entity.Direction())
	})

	t.Run("expires after its lifetime", func(t *testing.T) {
		s := newTestState(t, nil)
		player := s.SpawnPlayer(common.Position{X: 300, Y: 50})
		hound := s.CreateNPC("hound", common.Position{X: 50, Y: 50})

		hound.Mind.Control(s, hound, player, false, 1000)
		s.RemoveQueued()

		assert.False(t, s.NPCs.Has(hound.ID))
	})
}

const wardenScript = `
update := func(engine, state) {
	state.calls = is_undefined(state.calls) ? 1 : state.calls + 1
	if engine.player_visible() {
		engine.shoot()
	}
}
`

func TestScriptMind(t *testing.T) {
	cache := NewScriptCache(content.Source{})
	require.NoError(t, cache.Compile("warden", []byte(wardenScript)))
	s := newTestState(t, cache)
	player := s.SpawnPlayer(common.Position{X: 250, Y: 50})
	npc := s.CreateNPC("warden", common.Position{X: 50, Y: 50})
	mind, ok := npc.Mind.(*ScriptMind)
	require.True(t, ok)

	mind.Control(s, npc, player, false, 16)
	mind.Control(s, npc, player, true, 16)

	calls, ok := mind.State()["calls"].(*tengo.Int)
	require.True(t, ok)
	assert.EqualValues(t, 2, calls.Value)
	assert.Equal(t, 1, s.Projectiles.Len())

	t.Run("recompile is picked up", func(t *testing.T) {
		require.NoError(t, cache.Compile("warden", []byte(`
update := func(engine, state) {
	state.calls = 100
	engine.stand_still()
}
`)))
		mind.Control(s, npc, player, false, 16)

		calls := mind.State()["calls"].(*tengo.Int)
		assert.EqualValues(t, 100, calls.Value)
	})

	t.Run("runtime error stops the npc", func(t *testing.T) {
		require.NoError(t, cache.Compile("warden", []byte(`
update := func(engine, state) {
	engine.no_such_function()
}
`)))
		npc.Entity.Face(common.Left)
		mind.Control(s, npc, player, false, 16)
		assert.False(t, npc.Entity.Moving())
		assert.True(t, mind.failed)
	})
}

func TestScriptCacheRejectsBadScripts(t *testing.T) {
	cache := NewScriptCache(content.Source{})

	assert.Error(t, cache.Compile("broken", []byte("update := func(")))
	assert.Error(t, cache.Compile("empty", []byte("x := 1")))
	assert.Error(t, cache.Reload("missing"))
}

func TestMissingScriptFallsBackToIdle(t *testing.T) {
	s := newTestState(t, NewScriptCache(content.Source{}))
	npc := s.CreateNPC("warden", common.Position{X: 50, Y: 50})

	_, ok := npc.Mind.(idle)
	assert.True(t, ok)
}

func TestEmbeddedContentIsFullyRegistered(t *testing.T) {
	tables, err := content.LoadTables(content.Source{})
	require.NoError(t, err)

	reg := game.NewContentRegistry(tables)
	effects.Register(reg)
	Register(reg, Options{})

	assert.NoError(t, reg.Check())
}

func TestSentryScriptCompiles(t *testing.T) {
	cache := NewScriptCache(content.Source{})
	require.NoError(t, cache.Reload("sentry"))
}
