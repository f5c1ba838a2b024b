// Package tty 终端前端：用 tcell 把同一个游戏核心画成字符画面，用 beep 播放合成音效
package tty

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/engine"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
)

// hudRows 顶部 HUD 占用的行数
const hudRows = 2

// healthCells 生命条宽度（字符）
const healthCells = 10

// World 渲染需要的只读视图，*engine.Engine 满足该接口
type World interface {
	Entities(fn func(entities.Entity) bool)
	PlayerBox() engine.Box
	RunState() game.RunStateSnapshot
}

var (
	styleDefault  = tcell.StyleDefault
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleCore     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBoost    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleShield   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHit      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// Renderer 把游戏区域坐标映射到终端字符格
type Renderer struct {
	screen         tcell.Screen
	fieldW, fieldH float64
	comboText      string
	playerName     string
}

// NewRenderer 创建渲染器
func NewRenderer(screen tcell.Screen, fieldW, fieldH float64, playerName string) *Renderer {
	return &Renderer{screen: screen, fieldW: fieldW, fieldH: fieldH, playerName: playerName}
}

// SetComboText 更新 HUD 上的连击文字（空字符串表示清除）
func (r *Renderer) SetComboText(text string) {
	r.comboText = text
}

// Cell 把游戏坐标转换为字符格坐标，ok=false 表示不在可见区域
func (r *Renderer) Cell(x, y float64) (col, row int, ok bool) {
	w, h := r.screen.Size()
	rows := h - hudRows
	if w <= 0 || rows <= 0 || x < 0 || y < 0 || x >= r.fieldW || y >= r.fieldH {
		return 0, 0, false
	}
	col = int(x * float64(w) / r.fieldW)
	row = hudRows + int(y*float64(rows)/r.fieldH)
	return col, row, true
}

// Draw 绘制一帧
func (r *Renderer) Draw(world World) {
	r.screen.Clear()
	rs := world.RunState()

	world.Entities(func(e entities.Entity) bool {
		col, row, ok := r.Cell(e.X, e.Y)
		if !ok {
			return true
		}
		ch, style := glyphFor(e)
		r.screen.SetContent(col, row, ch, nil, style)
		return true
	})

	box := world.PlayerBox()
	if col, row, ok := r.Cell(box.X, box.Y); ok {
		style := stylePlayer
		switch {
		case rs.IsGameOver:
			style = styleHit
		case rs.ShieldActive:
			style = styleShield.Bold(true)
		}
		r.screen.SetContent(col, row, 'A', nil, style)
	}

	r.drawHUD(rs)
	r.screen.Show()
}

// glyphFor 每种实体的字符和颜色
func glyphFor(e entities.Entity) (rune, tcell.Style) {
	switch e.Kind {
	case components.KindObstacle:
		if e.FromBoss {
			return '@', styleBoss
		}
		return '#', styleObstacle
	case components.KindCore:
		return '*', styleCore
	case components.KindPowerUp:
		if e.Variant == components.PowerUpShield {
			return 'S', styleShield
		}
		return 'B', styleBoost
	}
	return '?', styleDefault
}

func (r *Renderer) drawHUD(rs game.RunStateSnapshot) {
	w, _ := r.screen.Size()

	line := game.ScoreText(rs.Score)
	if r.comboText != "" {
		line += "  " + r.comboText
	}
	if rs.SpeedBoostActive {
		line += "  [B]"
	}
	if rs.ShieldActive {
		line += "  [S]"
	}
	r.drawText(0, 0, line, styleDefault)
	if r.playerName != "" {
		r.drawText(w-len(r.playerName), 0, r.playerName, styleDefault)
	}

	filled := int(game.HealthBarWidth(rs.Health, rs.MaxHealth, healthCells))
	bar := "HP [" + strings.Repeat("=", filled) + strings.Repeat(" ", healthCells-filled) + "]"
	band := game.HealthBandFor(rs.Health).Color()
	r.drawText(0, 1, bar, styleDefault.Foreground(tcell.NewRGBColor(int32(band.R), int32(band.G), int32(band.B))))
	if rs.BossActive {
		r.drawText(len(bar)+2, 1, "!! BOSS !!", styleBoss.Bold(true))
	}

	for x := len(bar) + 14; x < w; x++ {
		r.screen.SetContent(x, 1, '-', nil, styleBorder)
	}
}

// DrawLines 在屏幕中央绘制一组文字（结算和排行榜）
func (r *Renderer) DrawLines(title string, lines []string, footer string) {
	w, h := r.screen.Size()
	all := append([]string{title, ""}, lines...)
	all = append(all, "", footer)

	top := (h - len(all)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range all {
		left := (w - len(line)) / 2
		if left < 0 {
			left = 0
		}
		style := styleDefault
		if i == 0 {
			style = styleBoss.Bold(true)
		}
		r.drawText(left, top+i, line, style)
	}
	r.screen.Show()
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// SummaryTitle 结算标题
func SummaryTitle(stats game.FinalStats) string {
	return fmt.Sprintf("GAME OVER - %d", stats.Score)
}
