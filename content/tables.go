package content

import (
	"errors"
	"fmt"
	"sort"
)

// NPCSpec is the static data for one NPC type.
type NPCSpec struct {
	Name         string  `yaml:"name"`
	Sprite       string  `yaml:"sprite"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	MaxHealth    int     `yaml:"max_health"`
	HealthRegen  float64 `yaml:"health_regen"`
	Speed        float64 `yaml:"speed"`
	Enemy        bool    `yaml:"enemy"`
	Neutral      bool    `yaml:"neutral"`
	Summon       bool    `yaml:"summon"`
	Invulnerable bool    `yaml:"invulnerable"`
	Mind         string  `yaml:"mind"`
	Script       string  `yaml:"script"`
	RepathMs     int     `yaml:"repath_ms"`
	StrayChance  float64 `yaml:"stray_chance"`
	SightRange   int     `yaml:"sight_range"`
	AttackRange  int     `yaml:"attack_range"`
	AttackDamage int     `yaml:"attack_damage"`
	CooldownMs   int     `yaml:"cooldown_ms"`
	OnHitBuff    string  `yaml:"on_hit_buff"`
	OnHitBuffMs  int     `yaml:"on_hit_buff_ms"`
	LifetimeMs   int     `yaml:"lifetime_ms"`
	ExpReward    int     `yaml:"exp_reward"`
	LootTable    string  `yaml:"loot_table"`
}

// AbilitySpec is the static data for one player ability.
type AbilitySpec struct {
	Name       string  `yaml:"name"`
	ManaCost   int     `yaml:"mana_cost"`
	CooldownMs int     `yaml:"cooldown_ms"`
	Damage     float64 `yaml:"damage"`
	Range      int     `yaml:"range"`
	DurationMs int     `yaml:"duration_ms"`
	Amount     float64 `yaml:"amount"`
	Summon     string  `yaml:"summon"`
}

// ItemCategory is the equipment slot an item occupies.
type ItemCategory string

const (
	CategoryWeapon     ItemCategory = "weapon"
	CategoryArmor      ItemCategory = "armor"
	CategoryRing       ItemCategory = "ring"
	CategoryConsumable ItemCategory = "consumable"
)

// Equippable reports whether items of the category go in a slot.
func (c ItemCategory) Equippable() bool {
	return c == CategoryWeapon || c == CategoryArmor || c == CategoryRing
}

// ItemSpec is the static data for one item type.
type ItemSpec struct {
	Name        string       `yaml:"name"`
	Sprite      string       `yaml:"sprite"`
	Category    ItemCategory `yaml:"category"`
	Armor       int          `yaml:"armor"`
	DamageBonus float64      `yaml:"damage_bonus"`
	MaxHealth   int          `yaml:"max_health"`
	LifeSteal   float64      `yaml:"life_steal"`
	Speed       float64      `yaml:"speed"`
	Passive     string       `yaml:"passive"`
	Heal        int          `yaml:"heal"`
	Mana        int          `yaml:"mana"`
}

// LootEntry drops Item with probability Chance in [0,1].
type LootEntry struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
}

type LootTableSpec struct {
	MoneyMin int         `yaml:"money_min"`
	MoneyMax int         `yaml:"money_max"`
	Entries  []LootEntry `yaml:"entries"`
}

// LevelSpec is reached once the player's total exp is at least Exp.
type LevelSpec struct {
	Exp       int `yaml:"exp"`
	MaxHealth int `yaml:"max_health"`
	MaxMana   int `yaml:"max_mana"`
}

// PlayerSpec holds the starting stats of the hero.
type PlayerSpec struct {
	Sprite         string   `yaml:"sprite"`
	Width          int      `yaml:"width"`
	Height         int      `yaml:"height"`
	MaxHealth      int      `yaml:"max_health"`
	MaxMana        int      `yaml:"max_mana"`
	HealthRegen    float64  `yaml:"health_regen"`
	ManaRegen      float64  `yaml:"mana_regen"`
	Speed          float64  `yaml:"speed"`
	Armor          int      `yaml:"armor"`
	DamageModifier float64  `yaml:"damage_modifier"`
	InventorySize  int      `yaml:"inventory_size"`
	Abilities      []string `yaml:"abilities"`
}

// Tables is every static data table the simulation reads.
type Tables struct {
	Player    PlayerSpec
	Levels    []LevelSpec
	NPCs      map[string]NPCSpec
	Abilities map[string]AbilitySpec
	Items     map[string]ItemSpec
	Loot      map[string]LootTableSpec
}

// LoadTables reads and validates the data/*.yaml tables.
func LoadTables(src Source) (*Tables, error) {
	player, err := loadYAML[PlayerSpec](src, "data/player.yaml")
	if err != nil {
		return nil, err
	}
	levels, err := loadYAML[[]LevelSpec](src, "data/levels.yaml")
	if err != nil {
		return nil, err
	}
	npcs, err := loadYAML[map[string]NPCSpec](src, "data/npcs.yaml")
	if err != nil {
		return nil, err
	}
	abilities, err := loadYAML[map[string]AbilitySpec](src, "data/abilities.yaml")
	if err != nil {
		return nil, err
	}
	items, err := loadYAML[map[string]ItemSpec](src, "data/items.yaml")
	if err != nil {
		return nil, err
	}
	loot, err := loadYAML[map[string]LootTableSpec](src, "data/loot.yaml")
	if err != nil {
		return nil, err
	}

	t := &Tables{
		Player:    player,
		Levels:    levels,
		NPCs:      npcs,
		Abilities: abilities,
		Items:     items,
		Loot:      loot,
	}
	for name, spec := range t.NPCs {
		spec.Name = name
		t.NPCs[name] = spec
	}
	for name, spec := range t.Abilities {
		spec.Name = name
		t.Abilities[name] = spec
	}
	for name, spec := range t.Items {
		spec.Name = name
		t.Items[name] = spec
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks cross references and value ranges.
func (t *Tables) Validate() error {
	var errs []error
	if t.Player.MaxHealth <= 0 {
		errs = append(errs, errors.New("player: max_health must be positive"))
	}
	if t.Player.Width <= 0 || t.Player.Height <= 0 {
		errs = append(errs, errors.New("player: size must be positive"))
	}
	for _, a := range t.Player.Abilities {
		if _, ok := t.Abilities[a]; !ok {
			errs = append(errs, fmt.Errorf("player: unknown ability %q", a))
		}
	}
	for i := 1; i < len(t.Levels); i++ {
		if t.Levels[i].Exp <= t.Levels[i-1].Exp {
			errs = append(errs, fmt.Errorf("levels: exp must increase at level %d", i+1))
		}
	}
	for _, name := range sortedKeys(t.NPCs) {
		spec := t.NPCs[name]
		if spec.MaxHealth <= 0 {
			errs = append(errs, fmt.Errorf("npc %s: max_health must be positive", name))
		}
		if spec.Width <= 0 || spec.Height <= 0 {
			errs = append(errs, fmt.Errorf("npc %s: size must be positive", name))
		}
		if spec.Mind == "" {
			errs = append(errs, fmt.Errorf("npc %s: missing mind", name))
		}
		if spec.LootTable != "" {
			if _, ok := t.Loot[spec.LootTable]; !ok {
				errs = append(errs, fmt.Errorf("npc %s: unknown loot table %q", name, spec.LootTable))
			}
		}
	}
	for _, name := range sortedKeys(t.Abilities) {
		spec := t.Abilities[name]
		if spec.ManaCost < 0 || spec.CooldownMs < 0 {
			errs = append(errs, fmt.Errorf("ability %s: negative cost or cooldown", name))
		}
		if spec.Summon != "" {
			if _, ok := t.NPCs[spec.Summon]; !ok {
				errs = append(errs, fmt.Errorf("ability %s: unknown summon %q", name, spec.Summon))
			}
		}
	}
	for _, name := range sortedKeys(t.Items) {
		switch t.Items[name].Category {
		case CategoryWeapon, CategoryArmor, CategoryRing, CategoryConsumable:
		default:
			errs = append(errs, fmt.Errorf("item %s: unknown category %q", name, t.Items[name].Category))
		}
	}
	for _, name := range sortedKeys(t.Loot) {
		table := t.Loot[name]
		if table.MoneyMin < 0 || table.MoneyMax < table.MoneyMin {
			errs = append(errs, fmt.Errorf("loot %s: invalid money range", name))
		}
		for _, e := range table.Entries {
			if _, ok := t.Items[e.Item]; !ok {
				errs = append(errs, fmt.Errorf("loot %s: unknown item %q", name, e.Item))
			}
			if e.Chance < 0 || e.Chance > 1 {
				errs = append(errs, fmt.Errorf("loot %s: chance %v out of range", name, e.Chance))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("content: invalid tables: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
