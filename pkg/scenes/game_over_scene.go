package scenes

import (
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 结算面板按钮区域
const (
	panelX      = 20
	panelY      = 90
	panelWidth  = 360
	panelHeight = 420
	buttonX     = 120
	restartY    = 320
	boardY      = 360
	buttonW     = 160
	buttonH     = 28
)

// GameOverScene 结算面板，叠加在冻结的游戏画面上
type GameOverScene struct {
	session *Session
	play    *PlayScene
	stats   game.FinalStats
	lines   []string
}

// NewGameOverScene 创建结算场景
func NewGameOverScene(session *Session, play *PlayScene, stats game.FinalStats) *GameOverScene {
	return &GameOverScene{
		session: session,
		play:    play,
		stats:   stats,
		lines:   game.SummaryLines(stats),
	}
}

// Update 处理重新开始 / 查看排行榜
func (g *GameOverScene) Update(deltaTime float64) {
	clicked, x, y := isJustClicked()
	inButton := func(top int) bool {
		return clicked && x >= buttonX && x <= buttonX+buttonW && y >= top && y <= top+buttonH
	}

	switch {
	case anyKeyJustPressed(ebiten.KeyR, ebiten.KeyEnter, ebiten.KeySpace) || inButton(restartY):
		g.session.StartRun()
	case anyKeyJustPressed(ebiten.KeyL) || inButton(boardY):
		g.openLeaderboard()
	case anyKeyJustPressed(ebiten.KeyEscape):
		g.session.ShowMenu()
	}
}

// openLeaderboard 先做一次最终提交（只会提交一次），等它结束后再拉取排行榜
func (g *GameOverScene) openLeaderboard() {
	eng := g.play.Engine()
	eng.SubmitFinalScore()
	g.session.ShowLeaderboard(eng.WaitSubmissions)
}

// Close 离开结算时销毁本局
func (g *GameOverScene) Close() {
	g.play.Close()
}

// Draw 绘制结算面板
func (g *GameOverScene) Draw(screen *ebiten.Image) {
	g.play.Draw(screen)

	vector.DrawFilledRect(screen, panelX, panelY, panelWidth, panelHeight, colorPanel, false)
	vector.StrokeRect(screen, panelX, panelY, panelWidth, panelHeight, 2, colorMagenta, false)
	ebitenutil.DebugPrintAt(screen, "GAME OVER", 165, 130)

	for i, line := range g.lines {
		ebitenutil.DebugPrintAt(screen, line, 100, 180+i*30)
	}

	vector.StrokeRect(screen, buttonX, restartY, buttonW, buttonH, 2, colorGreen, false)
	ebitenutil.DebugPrintAt(screen, "[ Restart ]  R", buttonX+20, restartY+6)
	vector.StrokeRect(screen, buttonX, boardY, buttonW, buttonH, 2, colorCyan, false)
	ebitenutil.DebugPrintAt(screen, "[ Leaderboard ]  L", buttonX+10, boardY+6)
}
