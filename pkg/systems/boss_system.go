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

// BossPattern Boss 攻击模式
type BossPattern int

const (
	BossMeteorShower BossPattern = iota // 流星雨：大号障碍物间隔落下
	BossLaserWall                       // 激光墙：三道横向窄墙
	BossDroneAttack                     // 无人机：带横向漂移的障碍物
)

// String 返回模式名称
func (p BossPattern) String() string {
	switch p {
	case BossMeteorShower:
		return "Meteor Shower"
	case BossLaserWall:
		return "Laser Wall"
	case BossDroneAttack:
		return "Drone Attack"
	default:
		return "Unknown"
	}
}

// BossSystem Boss 事件调度
//
// 分数每到 Milestone 的整数倍（且大于 0）并且当前没有 Boss 时触发。
// Boss 窗口固定为 DurationMs，与攻击模式本身的持续时间无关；
// 窗口结束时 BossSurvivedCount +1 并奖励 Bonus 分。
type BossSystem struct {
	cfg      *config.GameConfig
	timers   *TimerService
	registry *entities.Registry
	state    *game.RunState
	cues     *game.CueQueue
	rng      *rand.Rand
	playerID ecs.EntityID

	pattern      BossPattern
	patternTimer TimerHandle
	window       TimerHandle
}

// NewBossSystem 创建 Boss 系统
func NewBossSystem(cfg *config.GameConfig, timers *TimerService, registry *entities.Registry,
	state *game.RunState, cues *game.CueQueue, rng *rand.Rand, playerID ecs.EntityID) *BossSystem {
	return &BossSystem{
		cfg:      cfg,
		timers:   timers,
		registry: registry,
		state:    state,
		cues:     cues,
		rng:      rng,
		playerID: playerID,
	}
}

// ShouldTrigger 是否满足触发条件
func (b *BossSystem) ShouldTrigger() bool {
	rs := b.state
	return !rs.IsGameOver && !rs.BossActive && rs.Score > 0 && rs.Score%b.cfg.Boss.Milestone == 0
}

// Update 每个 tick 检查一次触发条件，返回本次是否开始了 Boss
func (b *BossSystem) Update() bool {
	if !b.ShouldTrigger() {
		return false
	}
	b.Start(BossPattern(b.rng.Intn(3)))
	return true
}

// Start 以指定模式开始 Boss 事件
func (b *BossSystem) Start(pattern BossPattern) {
	b.state.BossActive = true
	b.pattern = pattern
	log.Printf("[BossSystem] Boss started at score %d: %s", b.state.Score, pattern)

	switch pattern {
	case BossMeteorShower:
		b.meteorShower()
	case BossLaserWall:
		b.laserWall()
	case BossDroneAttack:
		b.droneAttack()
	}

	b.window = b.timers.ScheduleOnce(config.Ms(b.cfg.Boss.DurationMs), b.finish)
	b.cues.Push(game.Cue{Type: game.CueBossStarted, Text: pattern.String()})
}

// Pattern 最近一次 Boss 的模式
func (b *BossSystem) Pattern() BossPattern {
	return b.pattern
}

// Stop 取消 Boss 相关的所有定时器（会话销毁时调用）
func (b *BossSystem) Stop() {
	b.timers.Cancel(b.patternTimer)
	b.timers.Cancel(b.window)
	b.patternTimer = TimerHandle{}
	b.window = TimerHandle{}
}

func (b *BossSystem) finish() {
	b.window = TimerHandle{}
	rs := b.state
	rs.BossActive = false
	rs.BossSurvivedCount++
	rs.AddScore(b.cfg.Boss.Bonus)
	log.Printf("[BossSystem] Boss survived (%d total), score=%d", rs.BossSurvivedCount, rs.Score)

	cue := game.Cue{Type: game.CueBossCleared}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](b.registry.EntityManager(), b.playerID); ok {
		cue.X, cue.Y = pos.X, pos.Y
	}
	b.cues.Push(cue)
}

// repeatSpawn 每 intervalMs 执行一次 spawn，共 count 次，第一次在 intervalMs 之后
func (b *BossSystem) repeatSpawn(count, intervalMs int, spawn func()) {
	if count <= 0 {
		return
	}
	remaining := count
	b.timers.Cancel(b.patternTimer)
	b.patternTimer = b.timers.ScheduleRepeating(config.Ms(intervalMs), func() {
		spawn()
		remaining--
		if remaining <= 0 {
			b.timers.Cancel(b.patternTimer)
			b.patternTimer = TimerHandle{}
		}
	})
}

func (b *BossSystem) randomX() float64 {
	sp := b.cfg.Spawn
	return float64(sp.MinX + b.rng.Intn(sp.MaxX-sp.MinX+1))
}

func (b *BossSystem) meteorShower() {
	m := b.cfg.Boss.Meteor
	b.repeatSpawn(m.Count, m.IntervalMs, func() {
		entities.NewObstacle(b.registry, b.cfg, b.randomX(), b.cfg.Spawn.Y, 0, m.Speed, m.Scale, m.Scale, true)
	})
}

func (b *BossSystem) laserWall() {
	l := b.cfg.Boss.Laser
	for i := 0; i < l.Count; i++ {
		entities.NewObstacle(b.registry, b.cfg, l.X, -l.Spacing*float64(i), 0, l.Speed, l.ScaleX, l.ScaleY, true)
	}
}

func (b *BossSystem) droneAttack() {
	d := b.cfg.Boss.Drone
	b.repeatSpawn(d.Count, d.IntervalMs, func() {
		x := b.randomX()
		vx := float64(b.rng.Intn(2*d.MaxDrift+1) - d.MaxDrift)
		entities.NewObstacle(b.registry, b.cfg, x, b.cfg.Spawn.Y, vx, d.Speed, d.Scale, d.Scale, true)
	})
}
