package game

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
)

type idleMind struct{}

func (idleMind) Control(*GameState, *NPC, *Player, bool, int) {}

func testTables() *content.Tables {
	return &content.Tables{
		Player: content.PlayerSpec{
			Sprite:         "hero",
			Width:          20,
			Height:         20,
			MaxHealth:      30,
			MaxMana:        20,
			Speed:          100,
			DamageModifier: 1,
			InventorySize:  2,
		},
		NPCs: map[string]content.NPCSpec{
			"dummy": {Name: "dummy", Width: 20, Height: 20, MaxHealth: 6, Speed: 50, Enemy: true, Mind: "idle", ExpReward: 5, LootTable: "dummy"},
			"idol":  {Name: "idol", Width: 20, Height: 20, MaxHealth: 6, Enemy: true, Invulnerable: true, Mind: "idle"},
		},
		Items: map[string]content.ItemSpec{
			"sword":  {Name: "sword", Sprite: "sword", Category: content.CategoryWeapon, DamageBonus: 0.5},
			"plate":  {Name: "plate", Sprite: "armor", Category: content.CategoryArmor, Armor: 3, MaxHealth: 10},
			"potion": {Name: "potion", Sprite: "potion", Category: content.CategoryConsumable, Heal: 5},
		},
		Loot: map[string]content.LootTableSpec{
			"dummy": {MoneyMin: 3, MoneyMax: 3, Entries: []content.LootEntry{{Item: "sword", Chance: 1}, {Item: "potion", Chance: 1}}},
		},
	}
}

func newTestState(t *testing.T, w, h int) *GameState {
	t.Helper()
	reg := NewContentRegistry(testTables())
	reg.RegisterMind("idle", func(*GameState, content.NPCSpec) Mind { return idleMind{} })
	return New(reg, w, h, Options{
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(3)),
	})
}

func pos(x, y int) common.Position {
	return common.Position{X: x, Y: y}
}
