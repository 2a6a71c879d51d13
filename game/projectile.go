package game

import (
	"github.com/milk9111/ashvale/common"
	"github.com/milk9111/ashvale/ecs"
)

// ProjectileController gives a projectile its behaviour. The hit callbacks
// return true when the projectile should be removed; once that happens no
// further callbacks run for it.
type ProjectileController interface {
	MaxAgeMs() int
	OnTick(s *GameState, p *Projectile, elapsedMs int)
	OnEnemyHit(s *GameState, p *Projectile, npc *NPC) bool
	OnSummonHit(s *GameState, p *Projectile, npc *NPC) bool
	OnPlayerHit(s *GameState, p *Projectile, player *Player) bool
	OnWallHit(s *GameState, p *Projectile) bool
}

// ProjectileBase is embedded by controllers that ignore some targets. It
// passes through everything except walls.
type ProjectileBase struct {
	MaxAge int
}

func (b ProjectileBase) MaxAgeMs() int {
	return b.MaxAge
}

func (ProjectileBase) OnTick(*GameState, *Projectile, int) {}

func (ProjectileBase) OnEnemyHit(*GameState, *Projectile, *NPC) bool {
	return false
}

func (ProjectileBase) OnSummonHit(*GameState, *Projectile, *NPC) bool {
	return false
}

func (ProjectileBase) OnPlayerHit(*GameState, *Projectile, *Player) bool {
	return false
}

func (ProjectileBase) OnWallHit(*GameState, *Projectile) bool {
	return true
}

type Projectile struct {
	ID         ecs.Entity
	Entity     WorldEntity
	Controller ProjectileController
	Owner      ecs.Entity
	AgeMs      int
	Collided   bool
}

// Expired reports whether the projectile outlived its controller's max age.
func (p *Projectile) Expired() bool {
	return p.AgeMs >= p.Controller.MaxAgeMs()
}

// SpawnProjectile launches a projectile owned by owner from r in direction
// dir at speed units per second.
func (s *GameState) SpawnProjectile(owner ecs.Entity, r common.Rect, sprite string, dir common.Direction, speed float64, ctrl ProjectileController) *Projectile {
	p := &Projectile{
		Entity:     NewWorldEntity(r, sprite, speed),
		Controller: ctrl,
		Owner:      owner,
	}
	p.Entity.Face(dir)
	p.ID = s.Projectiles.Insert(p)
	return p
}

// LaunchRect returns a w x h box centred on the edge of from facing dir, so
// a projectile starts just outside its shooter.
func LaunchRect(from common.Rect, dir common.Direction, w, h int) common.Rect {
	c := from.Center()
	switch dir {
	case common.Up:
		return common.NewRect(c.X-w/2, from.Y-h, w, h)
	case common.Down:
		return common.NewRect(c.X-w/2, from.Y+from.H, w, h)
	case common.Left:
		return common.NewRect(from.X-w, c.Y-h/2, w, h)
	default:
		return common.NewRect(from.X+from.W, c.Y-h/2, w, h)
	}
}
