// Package engine 组装一局游戏的全部系统，并对外提供固定步长的 tick 接口
//
// 渲染层（ebiten 窗口或终端）只做三件事：每帧采样输入调用 Tick，
// 读取 RunState / Entities / PlayerBox 绘制画面，消费 DrainCues 返回的提示播放效果。
package engine

import (
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/systems"
)

// Dependencies 外部注入的协作者，全部可选
type Dependencies struct {
	// Submitter 分数上报目标，nil 时不上报
	Submitter game.ScoreSubmitter
	// Rand 随机源，nil 时使用基于当前时间的种子
	Rand *rand.Rand
}

// Box 中心对齐的矩形
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Engine 一局游戏
// 每局新建一个 Engine，不与其他局共享任何状态
type Engine struct {
	cfg      *config.GameConfig
	em       *ecs.EntityManager
	registry *entities.Registry
	timers   *systems.TimerService
	state    *game.RunState
	cues     *game.CueQueue
	reporter *game.ScoreReporter
	playerID ecs.EntityID

	difficulty *systems.DifficultySystem
	spawner    *systems.SpawnSystem
	movement   *systems.MovementSystem
	combo      *systems.ComboSystem
	powerUps   *systems.PowerUpSystem
	boss       *systems.BossSystem
	health     *systems.HealthSystem
	collision  *systems.CollisionSystem

	started bool
	elapsed time.Duration
}

// New 创建一局新游戏，cfg 为 nil 时使用默认配置
func New(cfg *config.GameConfig, deps Dependencies) *Engine {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	em := ecs.NewEntityManager()
	e := &Engine{
		cfg:      cfg,
		em:       em,
		registry: entities.NewRegistry(em),
		timers:   systems.NewTimerService(),
		state:    game.NewRunState(cfg.Player.MaxHealth),
		cues:     game.NewCueQueue(),
		reporter: game.NewScoreReporter(deps.Submitter),
	}
	e.playerID = entities.NewPlayerEntity(em, cfg)

	e.difficulty = systems.NewDifficultySystem(cfg.Difficulty, e.state)
	e.spawner = systems.NewSpawnSystem(cfg, e.timers, e.registry, e.difficulty, e.state, rng)
	e.movement = systems.NewMovementSystem(cfg.Player, e.registry, e.state, e.playerID)
	e.combo = systems.NewComboSystem(cfg.Combo, e.timers, e.state, e.cues, e.reporter)
	e.powerUps = systems.NewPowerUpSystem(cfg.PowerUps, e.timers, e.state, e.cues)
	e.boss = systems.NewBossSystem(cfg, e.timers, e.registry, e.state, e.cues, rng, e.playerID)
	e.health = systems.NewHealthSystem(em, e.playerID, e.timers, e.state, e.cues)
	e.collision = systems.NewCollisionSystem(cfg.Player, e.registry, e.state, e.playerID, e.combo, e.powerUps, e.health)

	return e
}

// Config 返回本局使用的配置
func (e *Engine) Config() *config.GameConfig {
	return e.cfg
}

// Start 开始生成下落物体，重复调用无效
func (e *Engine) Start() {
	if e.started || e.state.IsGameOver {
		return
	}
	e.started = true
	e.spawner.Start(e.difficulty.SpawnDelayMs(e.state.Score))
	log.Printf("[Engine] Run started (tick=%v)", e.cfg.TickDuration())
}

// Started 是否已调用过 Start
func (e *Engine) Started() bool {
	return e.started
}

// Tick 推进一个逻辑帧
//
// 顺序：玩家移动 → 物体积分 → 定时器 → 难度调整 → 剔除 → Boss 检查 → 碰撞结算。
// 游戏结束后调用无效。
func (e *Engine) Tick(dt time.Duration, intent game.Intent) {
	if e.state.IsGameOver {
		return
	}
	e.elapsed += dt

	e.movement.MovePlayer(intent, dt)
	e.movement.IntegrateEntities(dt)
	e.timers.Advance(dt)
	e.difficulty.Update(e.spawner)
	e.registry.Cull(e.cfg.Playfield.CullY)
	e.boss.Update()
	e.collision.Update()

	e.registry.Flush()
}

// Elapsed 已经模拟的时间
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// RunState 返回当前状态的只读副本
func (e *Engine) RunState() game.RunStateSnapshot {
	return e.state.Snapshot()
}

// OnGameOver 注册游戏结束回调，回调恰好被调用一次
func (e *Engine) OnGameOver(fn func(game.FinalStats)) {
	e.health.OnGameOver(fn)
}

// IsGameOver 是否已经结束
func (e *Engine) IsGameOver() bool {
	return e.state.IsGameOver
}

// Entities 遍历存活的下落物体（只读）
func (e *Engine) Entities(fn func(entities.Entity) bool) {
	e.registry.ForEach(fn)
}

// PlayerBox 返回玩家的碰撞盒
func (e *Engine) PlayerBox() Box {
	pos, _ := ecs.GetComponent[*components.PositionComponent](e.em, e.playerID)
	col, _ := ecs.GetComponent[*components.CollisionComponent](e.em, e.playerID)
	if pos == nil || col == nil {
		return Box{}
	}
	return Box{X: pos.X + col.OffsetX, Y: pos.Y + col.OffsetY, Width: col.Width, Height: col.Height}
}

// DrainCues 取出本帧产生的展示层提示
func (e *Engine) DrainCues() []game.Cue {
	return e.cues.Drain()
}

// BossPattern 最近一次 Boss 的模式
func (e *Engine) BossPattern() systems.BossPattern {
	return e.boss.Pattern()
}

// SubmitFinalScore 结算后的最终分数提交，只有第一次调用会真正提交
func (e *Engine) SubmitFinalScore() bool {
	return e.reporter.ReportFinal(e.state.Score)
}

// PendingTimers 等待中的定时器数量
func (e *Engine) PendingTimers() int {
	return e.timers.Pending()
}

// Shutdown 销毁本局：取消所有定时器并清空实体
// 进行中的分数提交不会被取消，需要等待时调用 WaitSubmissions
func (e *Engine) Shutdown() {
	e.spawner.Stop()
	e.boss.Stop()
	e.timers.CancelAll()
	e.registry.Clear()
	log.Printf("[Engine] Run shut down after %v", e.elapsed)
}

// WaitSubmissions 等待所有进行中的分数提交结束
func (e *Engine) WaitSubmissions() {
	e.reporter.Wait()
}
