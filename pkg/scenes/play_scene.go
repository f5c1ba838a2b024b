package scenes

import (
	"image/color"
	"time"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/engine"
	"github.com/gonewx/neonrun/pkg/entities"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 布局
const (
	healthBarX      = 10
	healthBarY      = 70
	healthBarWidth  = 200
	healthBarHeight = 15
	bannerSeconds   = 2.0
)

// PlayScene 进行中的一局
type PlayScene struct {
	session *Session
	engine  *engine.Engine
	tick    time.Duration

	effects    Effects
	comboText  string
	banner     string
	bannerLeft float64

	over  bool
	stats game.FinalStats
}

// NewPlayScene 创建并开始一局新游戏
func NewPlayScene(session *Session) *PlayScene {
	p := &PlayScene{
		session: session,
		engine:  session.NewEngine(),
	}
	p.tick = p.engine.Config().TickDuration()
	p.engine.OnGameOver(func(stats game.FinalStats) {
		p.over = true
		p.stats = stats
	})
	p.engine.Start()
	return p
}

// Engine 返回本局的 Engine
func (p *PlayScene) Engine() *engine.Engine {
	return p.engine
}

// Update 每帧推进一个固定步长
func (p *PlayScene) Update(deltaTime float64) {
	if anyKeyJustPressed(ebiten.KeyEscape) {
		p.session.ShowMenu()
		return
	}

	p.engine.Tick(p.tick, SampleIntent())
	p.consumeCues(p.engine.DrainCues())
	p.effects.Update(deltaTime)
	if p.bannerLeft > 0 {
		p.bannerLeft -= deltaTime
	}

	if p.over {
		p.session.RecordGame(p.stats)
		p.session.Scenes.SwitchTo(NewGameOverScene(p.session, p, p.stats))
	}
}

// consumeCues 把核心产生的提示转换为画面效果
func (p *PlayScene) consumeCues(cues []game.Cue) {
	for _, c := range cues {
		switch c.Type {
		case game.CueComboChanged:
			p.comboText = c.Text
		case game.CueComboCleared:
			p.comboText = ""
		case game.CueCoreCollected:
			p.effects.AddBurst(c.X, c.Y, 0.5, 40, colorCyan, colorMagenta, colorGreen)
		case game.CueShieldAbsorbed:
			box := p.engine.PlayerBox()
			p.effects.AddBurst(box.X, box.Y, 0.4, 30, colorGreen)
		case game.CueObstacleHit:
			box := p.engine.PlayerBox()
			p.effects.AddBurst(box.X, box.Y, 0.3, 25, colorRed)
		case game.CueBossStarted:
			p.showBanner("BOSS: " + c.Text)
		case game.CueBossCleared:
			p.effects.AddBurst(c.X, c.Y, 0.8, 120, colorCyan, colorMagenta, colorYellow)
			p.showBanner("BOSS SURVIVED +100")
		}
	}
}

func (p *PlayScene) showBanner(text string) {
	p.banner = text
	p.bannerLeft = bannerSeconds
}

// Close 离开场景时销毁本局
func (p *PlayScene) Close() {
	p.engine.Shutdown()
}

// Draw 绘制游戏画面和 HUD
func (p *PlayScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	p.drawWorld(screen)
	p.effects.Draw(screen)
	p.drawHUD(screen)
}

func (p *PlayScene) drawWorld(screen *ebiten.Image) {
	p.engine.Entities(func(e entities.Entity) bool {
		x := float32(e.X - e.Width/2)
		y := float32(e.Y - e.Height/2)
		w, h := float32(e.Width), float32(e.Height)

		switch e.Kind {
		case components.KindObstacle:
			c := colorOrange
			if e.FromBoss {
				c = colorMagenta
			}
			vector.DrawFilledRect(screen, x, y, w, h, c, false)
		case components.KindCore:
			vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), w/2, colorCyan, true)
		case components.KindPowerUp:
			c, label := colorYellow, "B"
			if e.Variant == components.PowerUpShield {
				c, label = colorGreen, "S"
			}
			vector.StrokeRect(screen, x, y, w, h, 2, c, false)
			ebitenutil.DebugPrintAt(screen, label, int(e.X)-3, int(e.Y)-8)
		}
		return true
	})

	box := p.engine.PlayerBox()
	rs := p.engine.RunState()
	var playerColor color.Color = colorCyan
	if rs.ShieldActive {
		playerColor = colorGreen
	}
	if rs.IsGameOver {
		playerColor = colorRed
	}
	vector.DrawFilledRect(screen,
		float32(box.X-box.Width/2), float32(box.Y-box.Height/2),
		float32(box.Width), float32(box.Height), playerColor, false)
}

func (p *PlayScene) drawHUD(screen *ebiten.Image) {
	rs := p.engine.RunState()

	ebitenutil.DebugPrintAt(screen, game.ScoreText(rs.Score), 10, 10)
	if p.comboText != "" {
		ebitenutil.DebugPrintAt(screen, p.comboText, 10, 40)
	}

	identity := p.session.Identity.Normalize()
	ebitenutil.DebugPrintAt(screen, identity.PlayerName, config.GameWindowWidth-120, 50)

	if rs.SpeedBoostActive {
		vector.StrokeRect(screen, 340, 20, 20, 20, 2, colorYellow, false)
		ebitenutil.DebugPrintAt(screen, "B", 347, 22)
	}
	if rs.ShieldActive {
		vector.StrokeRect(screen, 370, 20, 20, 20, 2, colorGreen, false)
		ebitenutil.DebugPrintAt(screen, "S", 377, 22)
	}

	barWidth := game.HealthBarWidth(rs.Health, rs.MaxHealth, healthBarWidth)
	band := game.HealthBandFor(rs.Health)
	vector.DrawFilledRect(screen, healthBarX, healthBarY, float32(barWidth), healthBarHeight, band.Color(), false)
	vector.StrokeRect(screen, healthBarX, healthBarY, healthBarWidth, healthBarHeight, 2, colorCyan, false)

	if p.bannerLeft > 0 && p.banner != "" {
		ebitenutil.DebugPrintAt(screen, p.banner, config.GameWindowWidth/2-len(p.banner)*3, 120)
	}
}
