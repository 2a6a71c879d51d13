package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/config"
	"github.com/milk9111/ashvale/content"
	"github.com/milk9111/ashvale/engine"
	"github.com/milk9111/ashvale/game"
	"github.com/milk9111/ashvale/pathfind"
)

const (
	messageMs    = 2500
	maxDebugPath = 32
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a window and play",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload content from --content when files change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagWatch {
		cfg.Content.Watch = true
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ss, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	g := NewGame(cfg, logger, ss)
	if cfg.Content.Watch {
		if cfg.Content.Dir == "" {
			return errors.New("--watch needs a content directory")
		}
		dirs := []string{
			filepath.Join(cfg.Content.Dir, "data"),
			filepath.Join(cfg.Content.Dir, "maps"),
			filepath.Join(cfg.Content.Dir, "scripts"),
		}
		w, err := content.NewWatcher(dirs...)
		if err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		defer w.Close()
		g.watcher = w
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Sim.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Game adapts a session to ebiten. Every simulation step happens inside
// Update so the world is only touched from ebiten's update goroutine.
type Game struct {
	cfg     config.Config
	log     *log.Logger
	ss      *session
	watcher *content.Watcher

	face     ebtext.Face
	facing   common.Direction
	debug    bool
	dead     bool
	frames   int
	clockMs  int
	message  string
	messageT int

	observed *engine.Engine
	searches []pathfind.Search
}

func NewGame(cfg config.Config, logger *log.Logger, ss *session) *Game {
	g := &Game{
		cfg:    cfg,
		log:    logger,
		ss:     ss,
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		facing: common.Down,
		debug:  cfg.Debug,
	}
	g.observe()
	return g
}

// observe hooks the debug overlay into the current engine's pathfinder.
func (g *Game) observe() {
	eng := g.ss.engine
	if g.observed == eng {
		return
	}
	g.observed = eng
	g.searches = nil
	eng.State.Pathfinder.SetObserver(func(s pathfind.Search) {
		if !g.debug {
			return
		}
		g.searches = append(g.searches, s)
		if len(g.searches) > maxDebugPath {
			g.searches = g.searches[len(g.searches)-maxDebugPath:]
		}
	})
}

func (g *Game) Update() error {
	g.frames++
	tickMs := g.cfg.Sim.TickMs()
	g.clockMs += tickMs

	g.pollWatcher()
	g.observe()

	in := pollInput(g.facing)
	if in.Quit {
		return ebiten.Termination
	}
	if in.ToggleDebug {
		g.debug = !g.debug
		g.searches = nil
	}

	if g.dead {
		if in.PickUp {
			g.restart()
		}
		return nil
	}

	g.apply(in)
	if g.ss.engine.Tick(tickMs) == engine.PlayerDied {
		g.dead = true
		g.say("you died. press E to start over")
	}
	g.drainFeedback()

	if g.messageT > 0 {
		g.messageT = max(0, g.messageT-tickMs)
	}
	return nil
}

func (g *Game) apply(in Input) {
	eng := g.ss.engine
	var res engine.Result
	switch {
	case in.Moving:
		g.facing = in.Move
		eng.MoveInDirection(in.Move)
	default:
		eng.StopMoving()
	}

	p := eng.State.Player
	switch {
	case in.Ability >= 0:
		if in.Ability >= len(p.Abilities) {
			res = engine.Result{Message: engine.MsgNoAbility}
			break
		}
		res = eng.UseAbility(p.Abilities[in.Ability].Name)
	case in.PickUp:
		res = eng.PickUp()
	case in.UsePortal:
		res = eng.UsePortal()
	case in.OpenChest:
		res = eng.OpenChest()
	case in.UseItem:
		res = g.useFirstItem()
	case in.EquipItem:
		res = g.equipFirstItem()
	default:
		return
	}
	if res.Message != "" {
		g.say(res.Message)
	}
}

func (g *Game) useFirstItem() engine.Result {
	eng := g.ss.engine
	for i, item := range eng.State.Player.Inventory {
		if item.Spec.Category == content.CategoryConsumable {
			return eng.UseItem(i)
		}
	}
	return engine.Result{Message: "nothing to use"}
}

func (g *Game) equipFirstItem() engine.Result {
	eng := g.ss.engine
	for i, item := range eng.State.Player.Inventory {
		if item.Spec.Category.Equippable() {
			return eng.Equip(i, item.Spec.Category)
		}
	}
	return engine.Result{Message: "nothing to equip"}
}

func (g *Game) drainFeedback() {
	for _, f := range g.ss.engine.State.Feedback.Drain() {
		g.log.Debug("feedback", "cue", f.Cue, "msg", f.Message, "at", f.At)
		switch f.Cue {
		case game.CueLevelUp:
			g.say(fmt.Sprintf("reached level %d", g.ss.engine.State.Player.Level))
		}
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageT = messageMs
}

func (g *Game) restart() {
	if err := g.ss.restart(); err != nil {
		g.log.Error("restart failed", "err", err)
		g.say("restart failed: " + err.Error())
		return
	}
	g.dead = false
	g.observe()
	g.message = ""
}

// pollWatcher applies any content changes without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.ss.contentChanged(change)
			if g.ss.engine != g.observed {
				g.dead = false
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("content watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g)
	drawHUD(screen, g)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.View.Width, g.cfg.View.Height
}
