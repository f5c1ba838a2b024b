// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/embedded"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
	"github.com/gonewx/neonrun/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EmbeddedConfigPath 嵌入的默认数值配置
const EmbeddedConfigPath = "data/game_config.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameConfig 数值配置，为 nil 时读取嵌入的配置文件，再退回内置默认值
	GameConfig *config.GameConfig
	// Identity 玩家身份，缺失字段会被补全
	Identity game.PlayerIdentity
	// Submitter 分数上报目标，可为 nil
	Submitter game.ScoreSubmitter
	// Board 排行榜来源，可为 nil
	Board leaderboard.Source
	// Profile 本机档案，可为 nil
	Profile *game.ProfileManager
	// Seed 随机种子，0 表示每局使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	deltaTime                float64
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig := cfg.GameConfig
	if gameConfig == nil {
		loaded, err := loadEmbeddedConfig()
		if err != nil {
			return nil, fmt.Errorf("数值配置加载失败: %w", err)
		}
		gameConfig = loaded
	}

	sceneManager := scenes.NewSceneManager()
	session := &scenes.Session{
		Config:    gameConfig,
		Identity:  cfg.Identity.Normalize(),
		Submitter: cfg.Submitter,
		Board:     cfg.Board,
		Profile:   cfg.Profile,
		Seed:      cfg.Seed,
		Scenes:    sceneManager,
	}
	log.Printf("[App] Player %s in group %s", session.Identity.PlayerID, session.Identity.GroupID)

	session.ShowMenu()

	return &App{
		sceneManager: sceneManager,
		deltaTime:    gameConfig.TickDuration().Seconds(),
		verbose:      cfg.Verbose,
	}, nil
}

// loadEmbeddedConfig 读取嵌入的配置，未嵌入时使用内置默认值
func loadEmbeddedConfig() (*config.GameConfig, error) {
	if !embedded.Exists(EmbeddedConfigPath) {
		log.Printf("[App] No embedded %s, using default game config", EmbeddedConfigPath)
		return config.DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(EmbeddedConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseGameConfig(data)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(a.deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时结束当前对局
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// Close 结束当前场景（取消定时器，放弃排行榜请求）
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
