package tty

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/engine"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/gonewx/neonrun/pkg/leaderboard"
)

const fetchTimeout = 5 * time.Second

// Config 终端前端配置
type Config struct {
	Game      *config.GameConfig
	Identity  game.PlayerIdentity
	Submitter game.ScoreSubmitter
	// Board 排行榜来源，可为 nil
	Board leaderboard.Source
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Sound 为 nil 时不播放音效
	Sound *Sound
}

type mode int

const (
	modePlaying mode = iota
	modeGameOver
	modeLeaderboard
)

// Game 终端版的一次会话（可以连续玩多局）
type Game struct {
	screen   tcell.Screen
	cfg      Config
	identity game.PlayerIdentity
	renderer *Renderer
	input    *Input

	engine *engine.Engine
	runs   int
	mode   mode
	stats  game.FinalStats
	board  []string
}

// NewGame 创建终端会话，screen 必须已经 Init
func NewGame(screen tcell.Screen, cfg Config) *Game {
	if cfg.Game == nil {
		cfg.Game = config.DefaultGameConfig()
	}
	identity := cfg.Identity.Normalize()
	g := &Game{
		screen:   screen,
		cfg:      cfg,
		identity: identity,
		renderer: NewRenderer(screen, cfg.Game.Playfield.Width, cfg.Game.Playfield.Height, identity.PlayerName),
		input:    NewInput(DefaultHold),
	}
	g.restart()
	return g
}

// restart 丢弃当前对局并开始新的一局
func (g *Game) restart() {
	if g.engine != nil {
		g.engine.Shutdown()
	}

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(g.runs)
	}
	g.runs++

	g.engine = engine.New(g.cfg.Game, engine.Dependencies{
		Submitter: g.cfg.Submitter,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	g.engine.OnGameOver(func(stats game.FinalStats) {
		g.stats = stats
		g.mode = modeGameOver
	})
	g.renderer.SetComboText("")
	g.input.Release()
	g.mode = modePlaying
	g.engine.Start()
	log.Printf("[TTY] Run %d started (seed %d)", g.runs, seed)
}

// Step 推进一个 tick 并绘制
func (g *Game) Step(dt time.Duration) {
	if g.mode == modePlaying {
		g.engine.Tick(dt, g.input.Intent(g.engine.Elapsed()))
		cues := g.engine.DrainCues()
		for _, c := range cues {
			switch c.Type {
			case game.CueComboChanged:
				g.renderer.SetComboText(c.Text)
			case game.CueComboCleared:
				g.renderer.SetComboText("")
			}
		}
		if g.cfg.Sound != nil {
			g.cfg.Sound.Play(cues)
		}
	}
	g.draw()
}

func (g *Game) draw() {
	switch g.mode {
	case modePlaying:
		g.renderer.Draw(g.engine)
	case modeGameOver:
		g.renderer.Draw(g.engine)
		g.renderer.DrawLines(SummaryTitle(g.stats), game.SummaryLines(g.stats), "r: restart   b: leaderboard   q: quit")
	case modeLeaderboard:
		g.screen.Clear()
		lines := g.board
		if len(lines) == 0 {
			lines = []string{"No scores yet"}
		}
		g.renderer.DrawLines("LEADERBOARD - "+g.identity.GroupID, lines, "esc: back   r: restart")
	}
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (g *Game) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch g.input.HandleKey(ev, g.engine.Elapsed()) {
		case ActionQuit:
			return false
		case ActionRestart:
			if g.mode != modePlaying {
				g.restart()
			}
		case ActionLeaderboard:
			if g.mode == modeGameOver {
				g.showLeaderboard(ctx)
			}
		case ActionBack:
			switch g.mode {
			case modeLeaderboard:
				g.mode = modeGameOver
			case modePlaying:
				return false
			}
		case ActionToggleSound:
			if g.cfg.Sound != nil {
				g.cfg.Sound.ToggleMute()
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

// showLeaderboard 最终提交（只提交一次）后拉取排行榜
// 终端版没有动画需要保持，直接同步等待
func (g *Game) showLeaderboard(ctx context.Context) {
	g.engine.SubmitFinalScore()
	g.engine.WaitSubmissions()

	g.board = nil
	if g.cfg.Board != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		entries, err := g.cfg.Board.Fetch(fetchCtx, g.identity.GroupID)
		cancel()
		if err != nil {
			log.Printf("[TTY] Warning: failed to fetch leaderboard: %v", err)
			g.board = []string{"Failed to load leaderboard"}
		} else {
			g.board = leaderboard.FormatRows(entries)
		}
	} else {
		g.board = []string{"Leaderboard unavailable"}
	}
	g.mode = modeLeaderboard
}

// Close 结束当前对局
func (g *Game) Close() {
	g.engine.Shutdown()
	g.engine.WaitSubmissions()
}

// Run 主循环：固定频率推进，事件由单独的 goroutine 读取
func Run(ctx context.Context, screen tcell.Screen, cfg Config) error {
	g := NewGame(screen, cfg)
	defer g.Close()

	dt := g.cfg.Game.TickDuration()
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !g.HandleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			g.Step(dt)
		}
	}
}
