package systems

import (
	"log"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/game"
)

// HealthSystem 生命值与游戏结束
//
// 生命值降到 0 或以下是单向的终止转换：冻结玩家、取消所有定时器、
// 并且只调用一次 OnGameOver 回调。
type HealthSystem struct {
	em       *ecs.EntityManager
	playerID ecs.EntityID
	timers   *TimerService
	state    *game.RunState
	cues     *game.CueQueue

	listeners []func(game.FinalStats)
	ended     bool
}

// NewHealthSystem 创建生命值系统
func NewHealthSystem(em *ecs.EntityManager, playerID ecs.EntityID, timers *TimerService,
	state *game.RunState, cues *game.CueQueue) *HealthSystem {
	return &HealthSystem{
		em:       em,
		playerID: playerID,
		timers:   timers,
		state:    state,
		cues:     cues,
	}
}

// OnGameOver 注册游戏结束回调
// 在游戏已经结束后注册的回调会立即被调用一次
func (h *HealthSystem) OnGameOver(fn func(game.FinalStats)) {
	if fn == nil {
		return
	}
	h.listeners = append(h.listeners, fn)
	if h.ended {
		fn(h.state.FinalStats())
	}
}

// ApplyDamage 扣除生命值，返回是否因此进入游戏结束
func (h *HealthSystem) ApplyDamage(amount int) bool {
	if h.state.IsGameOver || amount <= 0 {
		return false
	}
	h.state.Health -= amount
	h.cues.Emit(game.CueObstacleHit)
	log.Printf("[HealthSystem] Hit for %d, health=%d", amount, h.state.Health)

	if h.state.Health <= 0 {
		h.GameOver()
		return true
	}
	return false
}

// GameOver 进入游戏结束状态，重复调用无效
func (h *HealthSystem) GameOver() {
	if h.ended {
		return
	}
	h.ended = true
	h.state.IsGameOver = true

	if player, ok := ecs.GetComponent[*components.PlayerComponent](h.em, h.playerID); ok {
		player.Frozen = true
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](h.em, h.playerID); ok {
		vel.VX, vel.VY = 0, 0
	}

	h.timers.CancelAll()

	stats := h.state.FinalStats()
	log.Printf("[HealthSystem] Game over: score=%d maxCombo=%d powerups=%d bosses=%d",
		stats.Score, stats.MaxCombo, stats.PowerupsCollected, stats.BossSurvivedCount)
	h.cues.Emit(game.CueGameOver)

	for _, fn := range h.listeners {
		fn(stats)
	}
}

// Ended 是否已经结束
func (h *HealthSystem) Ended() bool {
	return h.ended
}
