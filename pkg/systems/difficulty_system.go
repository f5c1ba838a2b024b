package systems

import (
	"log"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/game"
)

// DifficultySystem 难度控制
// 根据当前分数计算生成间隔和下落速度，并在间隔变化时让生成器换节奏
type DifficultySystem struct {
	cfg   config.DifficultyConfig
	state *game.RunState
}

// NewDifficultySystem 创建难度系统
func NewDifficultySystem(cfg config.DifficultyConfig, state *game.RunState) *DifficultySystem {
	return &DifficultySystem{cfg: cfg, state: state}
}

// SpawnDelayMs 计算生成间隔（毫秒）
// 公式: max(MinDelayMs, BaseDelayMs - floor(score/DelayScoreStep) * DelayStepMs)
func (d *DifficultySystem) SpawnDelayMs(score int) int {
	if score < 0 {
		score = 0
	}
	delay := d.cfg.BaseDelayMs - (score/d.cfg.DelayScoreStep)*d.cfg.DelayStepMs
	return max(d.cfg.MinDelayMs, delay)
}

// FallSpeed 计算障碍物下落速度（像素/秒）
// 公式: BaseFallSpeed + floor(score/FallScoreStep) * FallSpeedStep
func (d *DifficultySystem) FallSpeed(score int) float64 {
	if score < 0 {
		score = 0
	}
	return d.cfg.BaseFallSpeed + float64(score/d.cfg.FallScoreStep)*d.cfg.FallSpeedStep
}

// Update 每个 tick 调用一次
// 目标间隔与生成器当前节奏不同时，取消并重新安排生成定时器
func (d *DifficultySystem) Update(spawner *SpawnSystem) {
	if d.state.IsGameOver || spawner == nil || !spawner.Running() {
		return
	}
	want := d.SpawnDelayMs(d.state.Score)
	if want == spawner.CadenceMs() {
		return
	}
	log.Printf("[DifficultySystem] Score %d: spawn delay %dms -> %dms", d.state.Score, spawner.CadenceMs(), want)
	spawner.Reschedule(want)
}
