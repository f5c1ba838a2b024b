package systems

import (
	"time"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
)

// MovementSystem 玩家移动与下落物体位置积分
type MovementSystem struct {
	cfg      config.PlayerConfig
	em       *ecs.EntityManager
	registry *entities.Registry
	state    *game.RunState
	playerID ecs.EntityID
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(cfg config.PlayerConfig, registry *entities.Registry, state *game.RunState, playerID ecs.EntityID) *MovementSystem {
	return &MovementSystem{
		cfg:      cfg,
		em:       registry.EntityManager(),
		registry: registry,
		state:    state,
		playerID: playerID,
	}
}

// PlayerSpeed 当前水平速度（加速期间更快）
func (m *MovementSystem) PlayerSpeed() float64 {
	if m.state.SpeedBoostActive {
		return m.cfg.BoostSpeed
	}
	return m.cfg.BaseSpeed
}

// MovePlayer 按本 tick 的输入意图移动玩家，位置限制在游戏区域内
func (m *MovementSystem) MovePlayer(intent game.Intent, dt time.Duration) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](m.em, m.playerID)
	if !ok || player.Frozen {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](m.em, m.playerID)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](m.em, m.playerID)
	if !ok {
		return
	}

	vel.VX = intent.Direction() * m.PlayerSpeed()
	pos.X += vel.VX * dt.Seconds()
	pos.X = min(max(pos.X, player.MinX), player.MaxX)
}

// IntegrateEntities 按速度推进所有下落物体
func (m *MovementSystem) IntegrateEntities(dt time.Duration) {
	sec := dt.Seconds()
	ids := ecs.GetEntitiesWith3[*components.FallingObjectComponent, *components.PositionComponent, *components.VelocityComponent](m.em)
	for _, id := range ids {
		obj, _ := ecs.GetComponent[*components.FallingObjectComponent](m.em, id)
		if !obj.Alive {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](m.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](m.em, id)
		pos.X += vel.VX * sec
		pos.Y += vel.VY * sec
	}
}
