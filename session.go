package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/milk9111/ashvale/ai"
	"github.com/milk9111/ashvale/config"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/effects"
	"github.com/milk9111/ashvale/engine"
	"github.com/milk9111/ashvale/game"
)

// session is one loaded map with its engine. Content reloads replace the
// whole session; script edits are recompiled in place.
type session struct {
	cfg     config.Config
	log     *log.Logger
	src     content.Source
	scripts *ai.ScriptCache
	engine  *engine.Engine
}

func newSession(cfg config.Config, logger *log.Logger) (*session, error) {
	src := content.NewSource(cfg.Content.Dir)
	scripts := ai.NewScriptCache(src)
	eng, err := buildEngine(cfg, logger, src, scripts)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: logger, src: src, scripts: scripts, engine: eng}, nil
}

func buildEngine(cfg config.Config, logger *log.Logger, src content.Source, scripts *ai.ScriptCache) (*engine.Engine, error) {
	tables, err := content.LoadTables(src)
	if err != nil {
		return nil, err
	}

	reg := game.NewContentRegistry(tables)
	effects.Register(reg)
	ai.Register(reg, ai.Options{StrayOverride: cfg.AI.StrayOverride, Scripts: scripts})
	if err := reg.Check(); err != nil {
		return nil, err
	}

	m, err := content.LoadMap(src, cfg.Sim.Map, tables)
	if err != nil {
		return nil, err
	}

	s := game.New(reg, m.Width, m.Height, game.Options{
		Logger:     logger,
		Rand:       rand.New(rand.NewSource(cfg.Sim.Seed)),
		ViewWidth:  cfg.View.Width,
		ViewHeight: cfg.View.Height,
	})
	if err := s.LoadMap(m); err != nil {
		return nil, fmt.Errorf("load map %s: %w", cfg.Sim.Map, err)
	}
	logger.Info("map loaded", "map", m.Name, "npcs", s.NPCs.Len(), "walls", s.Walls.Len())
	return engine.New(s), nil
}

// restart rebuilds the session from the current content.
func (ss *session) restart() error {
	eng, err := buildEngine(ss.cfg, ss.log, ss.src, ss.scripts)
	if err != nil {
		return err
	}
	ss.engine = eng
	return nil
}

// contentChanged reacts to a file reported by the content watcher.
func (ss *session) contentChanged(c content.Change) {
	switch c.Kind {
	case content.ChangeScript:
		if err := ss.scripts.Reload(c.Name); err != nil {
			ss.log.Warn("script reload failed", "script", c.Name, "err", err)
			return
		}
		ss.log.Info("script reloaded", "script", c.Name)
		return
	case content.ChangeMap:
		if c.Name != ss.cfg.Sim.Map {
			ss.log.Debug("ignoring change to inactive map", "map", c.Name)
			return
		}
	}
	if err := ss.restart(); err != nil {
		ss.log.Warn("content reload failed, keeping current world", "kind", c.Kind, "file", c.Path, "err", err)
		return
	}
	ss.log.Info("content reloaded", "kind", c.Kind, "file", c.Path)
}
