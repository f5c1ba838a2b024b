package systems

import (
	"log"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/game"
)

// ComboSystem 连击与计分
//
// 每收集一个核心：连击 +1，得分 = BaseGain + StepGain × 连击数
// （即 floor(10 × (1 + 0.2 × combo))，用整数运算避免浮点截断误差）。
// 连击在最后一次收集 DecayMs 后归零，任意时刻最多只有一个衰减定时器。
type ComboSystem struct {
	cfg      config.ComboConfig
	timers   *TimerService
	state    *game.RunState
	cues     *game.CueQueue
	reporter *game.ScoreReporter

	decay TimerHandle
}

// NewComboSystem 创建连击系统，reporter 可以为 nil
func NewComboSystem(cfg config.ComboConfig, timers *TimerService, state *game.RunState,
	cues *game.CueQueue, reporter *game.ScoreReporter) *ComboSystem {
	return &ComboSystem{
		cfg:      cfg,
		timers:   timers,
		state:    state,
		cues:     cues,
		reporter: reporter,
	}
}

// Gain 返回指定连击数下收集一个核心的得分
func (c *ComboSystem) Gain(comboCount int) int {
	return c.cfg.BaseGain + c.cfg.StepGain*comboCount
}

// CollectCore 结算一次核心收集，返回本次得分
// x / y 是核心位置，用于粒子效果
func (c *ComboSystem) CollectCore(x, y float64) int {
	rs := c.state
	rs.ComboCount++
	rs.MaxCombo = max(rs.MaxCombo, rs.ComboCount)

	c.timers.Cancel(c.decay)
	c.decay = c.timers.ScheduleOnce(config.Ms(c.cfg.DecayMs), c.resetCombo)

	gained := c.Gain(rs.ComboCount)
	rs.AddScore(gained)

	c.cues.Push(game.Cue{Type: game.CueCoreCollected, X: x, Y: y})
	c.cues.Push(game.Cue{Type: game.CueComboChanged, Text: game.ComboText(rs.ComboCount)})

	// 每次收集都上报当前分数，失败不影响游戏
	c.reporter.Report(rs.Score)
	return gained
}

func (c *ComboSystem) resetCombo() {
	c.decay = TimerHandle{}
	if c.state.ComboCount == 0 {
		return
	}
	log.Printf("[ComboSystem] Combo x%d expired", c.state.ComboCount)
	c.state.ComboCount = 0
	c.cues.Emit(game.CueComboCleared)
}

// DecayPending 是否有等待中的连击衰减定时器
func (c *ComboSystem) DecayPending() bool {
	return c.timers.Active(c.decay)
}
