package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/engine"
	"github.com/milk9111/ashvale/game"
)

var flagTicks int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the simulation without a window. The player is driven by a simple
autopilot that walks to the nearest enemy and attacks it. A summary is
logged when the run ends.`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to run")
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	ss, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	sum := simulate(ss.engine, flagTicks, cfg.Sim.TickMs())
	logger.Info("sim finished",
		"ticks", sum.Ticks,
		"status", sum.Status,
		"kills", sum.Kills,
		"level", sum.Level,
		"exp", sum.Exp,
		"money", sum.Money,
		"enemies_left", sum.EnemiesLeft,
	)
	return nil
}

type simSummary struct {
	Ticks       int
	Status      engine.Status
	Kills       int
	Level       int
	Exp         int
	Money       int
	EnemiesLeft int
}

// simulate runs the autopilot for up to ticks steps or until the player dies.
func simulate(eng *engine.Engine, ticks, tickMs int) simSummary {
	var sum simSummary
	pilot := autopilot{}
	for sum.Ticks < ticks {
		pilot.act(eng)
		sum.Status = eng.Tick(tickMs)
		sum.Ticks++
		for _, f := range eng.State.Feedback.Drain() {
			if f.Cue == game.CueDeath {
				sum.Kills++
			}
			if f.Message != "" {
				eng.State.Log.Debug("feedback", "cue", f.Cue, "msg", f.Message)
			}
		}
		if sum.Status == engine.PlayerDied {
			break
		}
	}

	p := eng.State.Player
	sum.Level = p.Level
	sum.Exp = p.Exp
	sum.Money = p.Money
	for _, npc := range eng.State.NPCs.All() {
		if npc.Enemy {
			sum.EnemiesLeft++
		}
	}
	return sum
}

// autopilot walks toward the nearest enemy, swings when adjacent and picks
// up whatever it stands on.
type autopilot struct{}

const meleeAbility = "melee_swing"

func (a *autopilot) act(eng *engine.Engine) {
	s := eng.State
	p := s.Player
	if p.Stun.Active() {
		return
	}
	me := p.Entity.Rect()
	if itemInReach(s, me.Grow(engine.InteractReach)) {
		eng.PickUp()
	}

	target, ok := nearestEnemy(s, me.Center())
	if !ok {
		eng.StopMoving()
		return
	}

	tr := target.Entity.Rect()
	dirs := common.Toward(me.Center(), tr.Center())
	if len(dirs) == 0 {
		eng.StopMoving()
		return
	}

	reach := meleeReach(s)
	if gapBetween(me, tr) <= reach {
		eng.StopMoving()
		p.Entity.SetDirection(dirs[0])
		if res := eng.UseAbility(meleeAbility); !res.OK && res.Message != engine.MsgCooldown {
			s.Log.Debug("autopilot swing failed", "msg", res.Message)
		}
		return
	}
	if res := eng.MoveInDirection(dirs[0]); !res.OK && res.Message != "" {
		s.Log.Debug("autopilot move failed", "msg", res.Message)
	}
}

func nearestEnemy(s *game.GameState, from common.Position) (*game.NPC, bool) {
	var best *game.NPC
	bestDist := math.MaxFloat64
	for _, npc := range s.NPCs.All() {
		if !npc.Enemy || npc.Dead() {
			continue
		}
		if d := from.Distance(npc.Entity.Rect().Center()); d < bestDist {
			best, bestDist = npc, d
		}
	}
	return best, best != nil
}

func meleeReach(s *game.GameState) int {
	for _, slot := range s.Player.Abilities {
		if slot.Name == meleeAbility {
			return slot.Spec.Range
		}
	}
	return 0
}

// gapBetween is the larger of the horizontal and vertical gaps between two
// boxes, zero when they overlap.
func gapBetween(a, b common.Rect) int {
	gx := max(b.X-(a.X+a.W), a.X-(b.X+b.W), 0)
	gy := max(b.Y-(a.Y+a.H), a.Y-(b.Y+b.H), 0)
	return max(gx, gy)
}

func itemInReach(s *game.GameState, reach common.Rect) bool {
	for _, l := range s.Loot.All() {
		if !l.Collected && l.Kind == game.LootItem && l.Entity.Rect().Intersects(reach) {
			return true
		}
	}
	return false
}
