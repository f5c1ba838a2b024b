package game

import (
	"fmt"
	"image/color"
)

// HealthBand 生命条颜色档位
type HealthBand int

const (
	HealthBandGreen  HealthBand = iota // > 60
	HealthBandYellow                   // 31 ~ 60
	HealthBandRed                      // <= 30
)

// 生命条颜色
var (
	HealthGreen  = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	HealthYellow = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	HealthRed    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
)

// HealthBandFor 根据生命值返回颜色档位
func HealthBandFor(health int) HealthBand {
	switch {
	case health <= 30:
		return HealthBandRed
	case health <= 60:
		return HealthBandYellow
	default:
		return HealthBandGreen
	}
}

// Color 返回档位对应的颜色
func (b HealthBand) Color() color.RGBA {
	switch b {
	case HealthBandRed:
		return HealthRed
	case HealthBandYellow:
		return HealthYellow
	default:
		return HealthGreen
	}
}

// HealthBarWidth 把 0~maxHealth 的生命值映射到生命条宽度
//
// 参数：
//   - health: 当前生命值（负数按 0 处理）
//   - maxHealth: 满血值
//   - frameWidth: 生命条边框宽度（像素）
func HealthBarWidth(health, maxHealth int, frameWidth float64) float64 {
	if maxHealth <= 0 {
		return 0
	}
	if health < 0 {
		health = 0
	}
	if health > maxHealth {
		health = maxHealth
	}
	return frameWidth * float64(health) / float64(maxHealth)
}

// ScoreText HUD 分数文字
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// ComboMultiplierTenths 返回连击倍率 ×10 的整数值（combo=2 时为 14，即 x1.4）
func ComboMultiplierTenths(comboCount int) int {
	return 10 + 2*comboCount
}

// ComboText HUD 连击文字，未连击时为空
func ComboText(comboCount int) string {
	if comboCount <= 0 {
		return ""
	}
	tenths := ComboMultiplierTenths(comboCount)
	return fmt.Sprintf("Combo x%d.%d", tenths/10, tenths%10)
}

// SummaryLines 结算面板的统计文字
func SummaryLines(s FinalStats) []string {
	return []string{
		fmt.Sprintf("Final Score: %d", s.Score),
		fmt.Sprintf("Max Combo: %d", s.MaxCombo),
		fmt.Sprintf("Power-ups: %d", s.PowerupsCollected),
		fmt.Sprintf("Boss Survived: %d", s.BossSurvivedCount),
	}
}
