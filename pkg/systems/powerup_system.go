package systems

import (
	"log"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/game"
)

// PowerUpSystem 道具效果
// 加速和护盾各自只保留一个到期定时器，重复拾取时重新计时
type PowerUpSystem struct {
	cfg    config.PowerUpConfig
	timers *TimerService
	state  *game.RunState
	cues   *game.CueQueue

	boostExpiry  TimerHandle
	shieldExpiry TimerHandle
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(cfg config.PowerUpConfig, timers *TimerService, state *game.RunState, cues *game.CueQueue) *PowerUpSystem {
	return &PowerUpSystem{
		cfg:    cfg,
		timers: timers,
		state:  state,
		cues:   cues,
	}
}

// Collect 拾取道具：计数并激活效果
func (p *PowerUpSystem) Collect(variant components.PowerUpVariant) {
	p.state.PowerupsCollected++
	switch variant {
	case components.PowerUpBoost:
		p.activateBoost()
	case components.PowerUpShield:
		p.activateShield()
	default:
		log.Printf("[PowerUpSystem] Warning: unknown power-up variant %d", variant)
	}
}

func (p *PowerUpSystem) activateBoost() {
	p.timers.Cancel(p.boostExpiry)
	p.state.SpeedBoostActive = true
	p.boostExpiry = p.timers.ScheduleOnce(config.Ms(p.cfg.BoostMs), func() {
		p.boostExpiry = TimerHandle{}
		p.state.SpeedBoostActive = false
		p.cues.Emit(game.CueBoostOff)
	})
	p.cues.Emit(game.CueBoostOn)
}

func (p *PowerUpSystem) activateShield() {
	p.timers.Cancel(p.shieldExpiry)
	p.state.ShieldActive = true
	p.shieldExpiry = p.timers.ScheduleOnce(config.Ms(p.cfg.ShieldMs), func() {
		p.shieldExpiry = TimerHandle{}
		p.state.ShieldActive = false
		p.cues.Emit(game.CueShieldOff)
	})
	p.cues.Emit(game.CueShieldOn)
}

// ConsumeShield 护盾抵消一次撞击
// 同时取消护盾的到期定时器，避免它在之后新拾取的护盾上触发
func (p *PowerUpSystem) ConsumeShield() bool {
	if !p.state.ShieldActive {
		return false
	}
	p.state.ShieldActive = false
	p.timers.Cancel(p.shieldExpiry)
	p.shieldExpiry = TimerHandle{}
	p.cues.Emit(game.CueShieldAbsorbed)
	return true
}

// ShieldExpiryPending 护盾到期定时器是否在等待
func (p *PowerUpSystem) ShieldExpiryPending() bool {
	return p.timers.Active(p.shieldExpiry)
}
