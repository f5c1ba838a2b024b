package scenes

import (
	"context"
	"time"

	"github.com/gonewx/neonrun/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const fetchTimeout = 5 * time.Second

// fetchResult 后台拉取的结果
type fetchResult struct {
	entries []leaderboard.Entry
	err     error
}

// LeaderboardScene 排行榜
//
// 拉取在后台 goroutine 中进行，Update 通过 channel 非阻塞地接收结果，
// 保证网络请求不会卡住渲染循环。
type LeaderboardScene struct {
	session *Session
	groupID string
	result  chan fetchResult
	cancel  context.CancelFunc

	loading bool
	rows    []string
	message string
}

// NewLeaderboardScene 创建排行榜场景并开始拉取
// before 在拉取前于同一个后台 goroutine 中执行，用于等待最终分数提交完成
func NewLeaderboardScene(session *Session, before func()) *LeaderboardScene {
	l := &LeaderboardScene{
		session: session,
		groupID: session.Identity.Normalize().GroupID,
		result:  make(chan fetchResult, 1),
	}

	if session.Board == nil {
		l.message = "Leaderboard unavailable"
		return l
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	l.cancel = cancel
	l.loading = true
	go func() {
		if before != nil {
			before()
		}
		entries, err := session.Board.Fetch(ctx, l.groupID)
		l.result <- fetchResult{entries: entries, err: err}
	}()
	return l
}

// Update 接收拉取结果，Esc / Enter 返回主菜单
func (l *LeaderboardScene) Update(deltaTime float64) {
	if l.loading {
		select {
		case res := <-l.result:
			l.apply(res)
		default:
		}
	}

	clicked, _, _ := isJustClicked()
	if anyKeyJustPressed(ebiten.KeyEscape, ebiten.KeyEnter, ebiten.KeySpace) || clicked {
		l.session.ShowMenu()
	}
}

func (l *LeaderboardScene) apply(res fetchResult) {
	l.loading = false
	if res.err != nil {
		logWarning("failed to fetch leaderboard for %s: %v", l.groupID, res.err)
		l.message = "Failed to load leaderboard"
		return
	}
	l.rows = leaderboard.FormatRows(res.entries)
	if len(l.rows) == 0 {
		l.message = "No scores yet"
	}
}

// Close 放弃尚未完成的拉取
func (l *LeaderboardScene) Close() {
	if l.cancel != nil {
		l.cancel()
	}
}

// Draw 绘制排行榜
func (l *LeaderboardScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	vector.StrokeRect(screen, 20, 40, 360, 520, 2, colorCyan, false)
	ebitenutil.DebugPrintAt(screen, "LEADERBOARD - "+l.groupID, 40, 55)

	switch {
	case l.loading:
		ebitenutil.DebugPrintAt(screen, "Loading...", 40, 100)
	case l.message != "":
		ebitenutil.DebugPrintAt(screen, l.message, 40, 100)
	}
	for i, row := range l.rows {
		ebitenutil.DebugPrintAt(screen, row, 40, 90+i*22)
	}

	ebitenutil.DebugPrintAt(screen, "ESC / ENTER: back", 40, 530)
}
