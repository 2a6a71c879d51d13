package game

import (
	"fmt"
	"sort"

	"github.com/milk9111/ashvale/buff"
	"github.com/milk9111/ashvale/content"
)

// MindFactory builds the mind for one NPC of the given type.
type MindFactory func(s *GameState, spec content.NPCSpec) Mind

// AbilityFunc performs an ability for the player. A returned error is a
// user-facing failure; the engine refunds nothing because nothing was spent.
type AbilityFunc func(s *GameState, spec content.AbilitySpec) error

// BuffFactory builds a buff effect referenced by name from data tables.
type BuffFactory func() BuffEffect

// PassiveFactory builds the passive effect of an item.
type PassiveFactory func(spec content.ItemSpec) ItemEffect

// ContentRegistry binds the static data tables to the code that gives them
// behaviour. It is built once at startup and passed to New.
type ContentRegistry struct {
	Tables *content.Tables

	minds     map[string]MindFactory
	abilities map[string]AbilityFunc
	buffs     map[buff.Type]BuffFactory
	passives  map[string]PassiveFactory
}

func NewContentRegistry(tables *content.Tables) *ContentRegistry {
	if tables == nil {
		tables = &content.Tables{}
	}
	if tables.NPCs == nil {
		tables.NPCs = map[string]content.NPCSpec{}
	}
	if tables.Abilities == nil {
		tables.Abilities = map[string]content.AbilitySpec{}
	}
	if tables.Items == nil {
		tables.Items = map[string]content.ItemSpec{}
	}
	if tables.Loot == nil {
		tables.Loot = map[string]content.LootTableSpec{}
	}
	return &ContentRegistry{
		Tables:    tables,
		minds:     map[string]MindFactory{},
		abilities: map[string]AbilityFunc{},
		buffs:     map[buff.Type]BuffFactory{},
		passives:  map[string]PassiveFactory{},
	}
}

func (r *ContentRegistry) RegisterMind(name string, f MindFactory) {
	if _, ok := r.minds[name]; ok {
		panic(fmt.Sprintf("game: mind %q registered twice", name))
	}
	r.minds[name] = f
}

func (r *ContentRegistry) RegisterAbility(name string, f AbilityFunc) {
	if _, ok := r.abilities[name]; ok {
		panic(fmt.Sprintf("game: ability %q registered twice", name))
	}
	r.abilities[name] = f
}

func (r *ContentRegistry) RegisterBuff(t buff.Type, f BuffFactory) {
	if _, ok := r.buffs[t]; ok {
		panic(fmt.Sprintf("game: buff %q registered twice", t))
	}
	r.buffs[t] = f
}

func (r *ContentRegistry) RegisterPassive(name string, f PassiveFactory) {
	if _, ok := r.passives[name]; ok {
		panic(fmt.Sprintf("game: passive %q registered twice", name))
	}
	r.passives[name] = f
}

func (r *ContentRegistry) MustNPC(typ string) content.NPCSpec {
	spec, ok := r.Tables.NPCs[typ]
	if !ok {
		panic(fmt.Sprintf("game: unknown npc type %q", typ))
	}
	return spec
}

func (r *ContentRegistry) MustMind(name string) MindFactory {
	f, ok := r.minds[name]
	if !ok {
		panic(fmt.Sprintf("game: no mind registered for %q", name))
	}
	return f
}

func (r *ContentRegistry) MustAbilitySpec(name string) content.AbilitySpec {
	spec, ok := r.Tables.Abilities[name]
	if !ok {
		panic(fmt.Sprintf("game: unknown ability %q", name))
	}
	return spec
}

func (r *ContentRegistry) MustAbility(name string) AbilityFunc {
	f, ok := r.abilities[name]
	if !ok {
		panic(fmt.Sprintf("game: no effect registered for ability %q", name))
	}
	return f
}

// NewBuff builds the registered effect for t.
func (r *ContentRegistry) NewBuff(t buff.Type) BuffEffect {
	f, ok := r.buffs[t]
	if !ok {
		panic(fmt.Sprintf("game: no effect registered for buff %q", t))
	}
	return f()
}

func (r *ContentRegistry) NewPassive(name string, spec content.ItemSpec) ItemEffect {
	f, ok := r.passives[name]
	if !ok {
		panic(fmt.Sprintf("game: no passive registered for %q", name))
	}
	return f(spec)
}

// Check verifies every name the tables reference has registered behaviour.
func (r *ContentRegistry) Check() error {
	var missing []string
	for name, spec := range r.Tables.NPCs {
		if _, ok := r.minds[spec.Mind]; !ok {
			missing = append(missing, fmt.Sprintf("npc %s: mind %q", name, spec.Mind))
		}
		if spec.OnHitBuff != "" {
			if _, ok := r.buffs[buff.Type(spec.OnHitBuff)]; !ok {
				missing = append(missing, fmt.Sprintf("npc %s: buff %q", name, spec.OnHitBuff))
			}
		}
	}
	for name := range r.Tables.Abilities {
		if _, ok := r.abilities[name]; !ok {
			missing = append(missing, fmt.Sprintf("ability %s", name))
		}
	}
	for name, spec := range r.Tables.Items {
		if spec.Passive != "" {
			if _, ok := r.passives[spec.Passive]; !ok {
				missing = append(missing, fmt.Sprintf("item %s: passive %q", name, spec.Passive))
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("game: unregistered content: %v", missing)
}
