package scenes

import (
	"fmt"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MenuScene 主菜单
type MenuScene struct {
	session *Session
	lines   []string
	blink   float64
}

// NewMenuScene 创建主菜单
func NewMenuScene(session *Session) *MenuScene {
	identity := session.Identity.Normalize()
	lines := []string{
		fmt.Sprintf("Player: %s (%s)", identity.PlayerName, identity.PlayerID),
		fmt.Sprintf("Group:  %s", identity.GroupID),
	}
	if session.Profile != nil {
		lines = append(lines, fmt.Sprintf("Best:   %d", session.Profile.Profile().BestScore))
	}
	return &MenuScene{session: session, lines: lines}
}

// Update 处理开始游戏 / 查看排行榜
func (m *MenuScene) Update(deltaTime float64) {
	m.blink += deltaTime

	clicked, _, _ := isJustClicked()
	switch {
	case anyKeyJustPressed(ebiten.KeyEnter, ebiten.KeySpace) || clicked:
		m.session.StartRun()
	case anyKeyJustPressed(ebiten.KeyL):
		m.session.ShowLeaderboard(nil)
	}
}

// Draw 绘制主菜单
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	vector.StrokeRect(screen, 60, 120, config.GameWindowWidth-120, 80, 3, colorMagenta, false)
	ebitenutil.DebugPrintAt(screen, "N E O N   R U N", 150, 152)

	for i, line := range m.lines {
		ebitenutil.DebugPrintAt(screen, line, 110, 260+i*20)
	}

	// 提示文字闪烁
	if int(m.blink*2)%2 == 0 {
		ebitenutil.DebugPrintAt(screen, "Press ENTER or tap to start", 110, 400)
	}
	ebitenutil.DebugPrintAt(screen, "L: leaderboard   F11: fullscreen", 95, 430)
	ebitenutil.DebugPrintAt(screen, "Move: <- -> / A D / touch", 115, 460)
}
