package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
)

// SpawnSystem 常规下落物体生成器
//
// 每次定时器触发生成一个物体：
//   - 种类: 1~5 均匀抽取，1~2 障碍物，3~4 能量核心，5 道具（加速/护盾各半）
//   - X: [MinX, MaxX] 均匀整数
//   - 速度: 障碍物为当前分数对应的下落速度，核心和道具再快 ItemSpeedBonus
type SpawnSystem struct {
	cfg        *config.GameConfig
	timers     *TimerService
	registry   *entities.Registry
	difficulty *DifficultySystem
	state      *game.RunState
	rng        *rand.Rand

	handle    TimerHandle
	cadenceMs int
}

// NewSpawnSystem 创建生成器，rng 由调用方提供以便测试时固定种子
func NewSpawnSystem(cfg *config.GameConfig, timers *TimerService, registry *entities.Registry,
	difficulty *DifficultySystem, state *game.RunState, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		cfg:        cfg,
		timers:     timers,
		registry:   registry,
		difficulty: difficulty,
		state:      state,
		rng:        rng,
	}
}

// Start 以指定间隔开始周期生成
func (s *SpawnSystem) Start(delayMs int) {
	s.Reschedule(delayMs)
	log.Printf("[SpawnSystem] Started with delay=%dms, x=[%d,%d]", delayMs, s.cfg.Spawn.MinX, s.cfg.Spawn.MaxX)
}

// Reschedule 先取消旧定时器再按新间隔安排（不修改已有定时器）
func (s *SpawnSystem) Reschedule(delayMs int) {
	s.timers.Cancel(s.handle)
	s.cadenceMs = delayMs
	s.handle = s.timers.ScheduleRepeating(config.Ms(delayMs), s.spawnTick)
}

// Stop 停止生成
func (s *SpawnSystem) Stop() {
	s.timers.Cancel(s.handle)
	s.handle = TimerHandle{}
	s.cadenceMs = 0
}

// Running 生成定时器是否仍在运行
func (s *SpawnSystem) Running() bool {
	return s.timers.Active(s.handle)
}

// CadenceMs 当前生成间隔（毫秒），未运行时为 0
func (s *SpawnSystem) CadenceMs() int {
	if !s.Running() {
		return 0
	}
	return s.cadenceMs
}

func (s *SpawnSystem) spawnTick() {
	if s.state.IsGameOver {
		return
	}
	s.SpawnOnce()
}

// SpawnOnce 立即生成一个物体，返回其ID
func (s *SpawnSystem) SpawnOnce() ecs.EntityID {
	sp := s.cfg.Spawn
	x := float64(sp.MinX + s.rng.Intn(sp.MaxX-sp.MinX+1))
	fallSpeed := s.difficulty.FallSpeed(s.state.Score)

	roll := s.rng.Intn(5) + 1
	switch {
	case roll <= 2:
		return entities.NewObstacle(s.registry, s.cfg, x, sp.Y, 0, fallSpeed, 1, 1, false)
	case roll <= 4:
		return entities.NewCore(s.registry, s.cfg, x, sp.Y, fallSpeed+sp.ItemSpeedBonus)
	default:
		variant := components.PowerUpShield
		if s.rng.Intn(2) == 1 {
			variant = components.PowerUpBoost
		}
		return entities.NewPowerUp(s.registry, s.cfg, variant, x, sp.Y, fallSpeed+sp.ItemSpeedBonus)
	}
}
