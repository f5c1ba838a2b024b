package entities

import (
	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体
// 玩家不带 FallingObjectComponent，因此不会出现在注册表的遍历中
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.GameConfig) ecs.EntityID {
	p := cfg.Player
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: p.StartX, Y: p.StartY})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, &components.CollisionComponent{Width: p.Width, Height: p.Height})
	em.AddComponent(id, &components.PlayerComponent{
		MinX: p.Width / 2,
		MaxX: cfg.Playfield.Width - p.Width/2,
	})
	return id
}

// NewObstacle 生成障碍物
// scaleX / scaleY 用于 Boss 模式中放大或压扁的障碍物，普通障碍物传 1
func NewObstacle(r *Registry, cfg *config.GameConfig, x, y, vx, vy, scaleX, scaleY float64, fromBoss bool) ecs.EntityID {
	size := cfg.Spawn.ObstacleSize
	return r.Spawn(SpawnSpec{
		Kind:     components.KindObstacle,
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Width:    size.Width * scaleX,
		Height:   size.Height * scaleY,
		FromBoss: fromBoss,
	})
}

// NewCore 生成能量核心
func NewCore(r *Registry, cfg *config.GameConfig, x, y, vy float64) ecs.EntityID {
	size := cfg.Spawn.CoreSize
	return r.Spawn(SpawnSpec{
		Kind:   components.KindCore,
		X:      x,
		Y:      y,
		VY:     vy,
		Width:  size.Width,
		Height: size.Height,
	})
}

// NewPowerUp 生成道具
func NewPowerUp(r *Registry, cfg *config.GameConfig, variant components.PowerUpVariant, x, y, vy float64) ecs.EntityID {
	size := cfg.Spawn.PowerUpSize
	return r.Spawn(SpawnSpec{
		Kind:    components.KindPowerUp,
		Variant: variant,
		X:       x,
		Y:       y,
		VY:      vy,
		Width:   size.Width,
		Height:  size.Height,
	})
}
