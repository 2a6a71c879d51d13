package ai

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

const scriptDispatch = `
if __phase == "update" {
	update(__engine, __state)
}
`

// HomeRadius is how close return_home has to get before the NPC stops.
const HomeRadius = 5

// ScriptCache compiles mind scripts once and hands out clones. Reload drops
// a compiled script so minds pick up the new version on their next tick.
type ScriptCache struct {
	src content.Source

	mu       sync.Mutex
	compiled map[string]*tengo.Compiled
	versions map[string]int
}

func NewScriptCache(src content.Source) *ScriptCache {
	return &ScriptCache{src: src, compiled: map[string]*tengo.Compiled{}, versions: map[string]int{}}
}

// Compile registers a script from source text under name, replacing any
// earlier version.
func (c *ScriptCache) Compile(name string, src []byte) error {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+scriptDispatch)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("ai: compile script %s: %w", name, err)
	}
	// Top-level statements run once so the globals, update included, exist
	// before the first clone.
	if err := compiled.Set("__phase", "noop"); err != nil {
		return err
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("ai: run script %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return fmt.Errorf("ai: script %s does not define update", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.compiled[name] = compiled
	c.versions[name]++
	return nil
}

// Reload recompiles name from the content source.
func (c *ScriptCache) Reload(name string) error {
	data, err := c.src.LoadScript(name)
	if err != nil {
		return fmt.Errorf("ai: load script %s: %w", name, err)
	}
	return c.Compile(name, data)
}

func (c *ScriptCache) get(name string) (*tengo.Compiled, int, error) {
	c.mu.Lock()
	compiled, ok := c.compiled[name]
	version := c.versions[name]
	c.mu.Unlock()
	if ok {
		return compiled.Clone(), version, nil
	}
	if err := c.Reload(name); err != nil {
		return nil, 0, err
	}
	return c.get(name)
}

func (c *ScriptCache) version(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[name]
}

// ScriptMind runs a tengo script's update function every tick. The script
// sees an engine map of functions and a state map that persists between
// ticks and across reloads.
type ScriptMind struct {
	name    string
	cache   *ScriptCache
	run     *tengo.Compiled
	version int
	state   *tengo.Map
	pursuit *pursuit
	failed  bool
}

func NewScriptMind(s *game.GameState, spec content.NPCSpec, cache *ScriptCache, stray float64) (*ScriptMind, error) {
	compiled, version, err := cache.get(spec.Script)
	if err != nil {
		return nil, err
	}
	return &ScriptMind{
		name:    spec.Script,
		cache:   cache,
		run:     compiled,
		version: version,
		state:   &tengo.Map{Value: map[string]tengo.Object{}},
		pursuit: newPursuit(s, spec, stray),
	}, nil
}

// State exposes the script's persistent state map.
func (m *ScriptMind) State() map[string]tengo.Object {
	return m.state.Value
}

func (m *ScriptMind) Control(s *game.GameState, npc *game.NPC, player *game.Player, invisible bool, elapsedMs int) {
	if v := m.cache.version(m.name); v != m.version {
		if compiled, version, err := m.cache.get(m.name); err == nil {
			m.run, m.version, m.failed = compiled, version, false
		}
	}
	if m.failed {
		npc.Entity.SetMoving(false)
		return
	}

	engine := m.engine(s, npc, player, invisible, elapsedMs)
	if err := m.runUpdate(engine); err != nil {
		s.Log.Warn("script mind failed", "npc", npc.ID, "script", m.name, "err", err)
		m.failed = true
		npc.Entity.SetMoving(false)
	}
}

func (m *ScriptMind) runUpdate(engine *tengo.ImmutableMap) error {
	if err := m.run.Set("__phase", "update"); err != nil {
		return err
	}
	if err := m.run.Set("__engine", engine); err != nil {
		return err
	}
	if err := m.run.Set("__state", m.state); err != nil {
		return err
	}
	return m.run.Run()
}

func (m *ScriptMind) engine(s *game.GameState, npc *game.NPC, player *game.Player, invisible bool, elapsedMs int) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}
	boolean := func(b bool) tengo.Object {
		if b {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}
	point := func(p common.Position) tengo.Object {
		return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(p.X)}, &tengo.Int{Value: int64(p.Y)}}}
	}

	fn("elapsed", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(elapsedMs)}, nil
	})
	fn("attack_range", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(npc.Spec.AttackRange)}, nil
	})
	fn("cooldown", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(npc.Spec.CooldownMs)}, nil
	})
	fn("player_visible", func(...tengo.Object) (tengo.Object, error) {
		return boolean(canSee(npc, player, invisible)), nil
	})
	fn("distance_to_player", func(...tengo.Object) (tengo.Object, error) {
		if player == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: centerDistance(npc.Entity.Rect(), player.Entity.Rect())}, nil
	})
	fn("position", func(...tengo.Object) (tengo.Object, error) {
		return point(npc.Entity.Position()), nil
	})
	fn("player_position", func(...tengo.Object) (tengo.Object, error) {
		if player == nil {
			return point(common.Position{}), nil
		}
		return point(player.Entity.Position()), nil
	})
	fn("random", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Rand.Float64()}, nil
	})
	fn("follow_player", func(...tengo.Object) (tengo.Object, error) {
		if player == nil {
			return tengo.FalseValue, nil
		}
		return boolean(m.pursuit.moveToward(s, npc, player.Entity.Position(), elapsedMs)), nil
	})
	fn("return_home", func(...tengo.Object) (tengo.Object, error) {
		if npc.Entity.Position().Manhattan(npc.Home) <= HomeRadius {
			m.pursuit.stop(npc)
			return tengo.FalseValue, nil
		}
		return boolean(m.pursuit.moveToward(s, npc, npc.Home, elapsedMs)), nil
	})
	fn("stand_still", func(...tengo.Object) (tengo.Object, error) {
		npc.Entity.SetMoving(false)
		return tengo.TrueValue, nil
	})
	fn("shoot", func(...tengo.Object) (tengo.Object, error) {
		if player == nil {
			return tengo.FalseValue, nil
		}
		dirs := common.Toward(npc.Entity.Rect().Center(), player.Entity.Rect().Center())
		if len(dirs) == 0 {
			return tengo.FalseValue, nil
		}
		npc.Entity.SetDirection(dirs[0])
		FireBolt(s, npc, dirs[0])
		return tengo.TrueValue, nil
	})
	fn("melee", func(...tengo.Object) (tengo.Object, error) {
		if player == nil || !inReach(npc.Entity.Rect(), player.Entity.Rect(), npc.Spec.AttackRange) {
			return tengo.FalseValue, nil
		}
		strikePlayer(s, npc)
		return tengo.TrueValue, nil
	})
	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.Log.Debug("script", "npc", npc.ID, "msg", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
