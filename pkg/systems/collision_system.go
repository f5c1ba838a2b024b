package systems

import (
	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
)

// CollisionSystem 玩家与下落物体的碰撞结算
//
// 结算顺序：障碍物 → 核心 → 道具，同种类按生成顺序。
// 每个物体在第一次被结算时立即删除，不会重复结算；
// 一旦进入游戏结束，本 tick 剩余的物体不再结算。
type CollisionSystem struct {
	cfg      config.PlayerConfig
	em       *ecs.EntityManager
	registry *entities.Registry
	state    *game.RunState
	playerID ecs.EntityID

	combo    *ComboSystem
	powerUps *PowerUpSystem
	health   *HealthSystem
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(cfg config.PlayerConfig, registry *entities.Registry, state *game.RunState, playerID ecs.EntityID,
	combo *ComboSystem, powerUps *PowerUpSystem, health *HealthSystem) *CollisionSystem {
	return &CollisionSystem{
		cfg:      cfg,
		em:       registry.EntityManager(),
		registry: registry,
		state:    state,
		playerID: playerID,
		combo:    combo,
		powerUps: powerUps,
		health:   health,
	}
}

// Overlaps 两个中心对齐的矩形是否重叠（边缘相接不算）
func Overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax-aw/2 < bx+bw/2 &&
		ax+aw/2 > bx-bw/2 &&
		ay-ah/2 < by+bh/2 &&
		ay+ah/2 > by-bh/2
}

// Update 检测并结算本 tick 的所有碰撞
func (c *CollisionSystem) Update() {
	if c.state.IsGameOver {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](c.em, c.playerID)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](c.em, c.playerID)
	if !ok {
		return
	}
	px, py := pos.X+col.OffsetX, pos.Y+col.OffsetY

	hit := func(e entities.Entity) bool {
		return Overlaps(px, py, col.Width, col.Height, e.X, e.Y, e.Width, e.Height)
	}

	c.registry.ForEach(func(e entities.Entity) bool {
		if !hit(e) || !c.registry.Remove(e.ID) {
			return true
		}
		c.resolveObstacle()
		return !c.state.IsGameOver
	}, components.KindObstacle)

	if c.state.IsGameOver {
		return
	}

	c.registry.ForEach(func(e entities.Entity) bool {
		if hit(e) && c.registry.Remove(e.ID) {
			c.combo.CollectCore(e.X, e.Y)
		}
		return true
	}, components.KindCore)

	c.registry.ForEach(func(e entities.Entity) bool {
		if hit(e) && c.registry.Remove(e.ID) {
			c.powerUps.Collect(e.Variant)
		}
		return true
	}, components.KindPowerUp)
}

func (c *CollisionSystem) resolveObstacle() {
	if c.powerUps.ConsumeShield() {
		return
	}
	c.health.ApplyDamage(c.cfg.ObstacleDamage)
}
