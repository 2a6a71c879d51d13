package ai

import (
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/game"
)

// Options tunes the minds at registration time.
type Options struct {
	// StrayOverride, when set, replaces every NPC's stray chance.
	StrayOverride *float64
	Scripts       *ScriptCache
}

// idle stands still. Script minds fall back to it when their script cannot
// be loaded.
type idle struct{}

func (idle) Control(_ *game.GameState, npc *game.NPC, _ *game.Player, _ bool, _ int) {
	npc.Entity.SetMoving(false)
}

// Register binds every mind name to its factory.
func Register(reg *game.ContentRegistry, opts Options) {
	if opts.Scripts == nil {
		opts.Scripts = NewScriptCache(content.Source{})
	}
	stray := func(spec content.NPCSpec) float64 {
		if opts.StrayOverride != nil {
			return *opts.StrayOverride
		}
		return spec.StrayChance
	}

	reg.RegisterMind("chaser", func(s *game.GameState, spec content.NPCSpec) game.Mind {
		return NewChaser(s, spec, stray(spec))
	})
	reg.RegisterMind("caster", func(s *game.GameState, spec content.NPCSpec) game.Mind {
		return NewCaster(s, spec, stray(spec))
	})
	reg.RegisterMind("wanderer", func(s *game.GameState, spec content.NPCSpec) game.Mind {
		return NewWanderer(s, spec)
	})
	reg.RegisterMind("summon", func(s *game.GameState, spec content.NPCSpec) game.Mind {
		return NewSummon(s, spec)
	})
	reg.RegisterMind("script", func(s *game.GameState, spec content.NPCSpec) game.Mind {
		m, err := NewScriptMind(s, spec, opts.Scripts, stray(spec))
		if err != nil {
			s.Log.Warn("script mind unavailable", "npc", spec.Name, "script", spec.Script, "err", err)
			return idle{}
		}
		return m
	})
}
