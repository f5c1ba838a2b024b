package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/neonrun/pkg/game"
)

// DefaultHold 一次按键维持移动意图的时间
// 终端收不到按键释放事件，按住方向键时依靠自动重复不断刷新
const DefaultHold = 150 * time.Millisecond

// Action 非移动类按键
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRestart
	ActionLeaderboard
	ActionBack
	ActionToggleSound
)

// Input 把离散的按键事件转换为每个 tick 的移动意图
type Input struct {
	hold   time.Duration
	intent game.Intent
	until  time.Duration
}

// NewInput 创建输入状态，hold <= 0 时使用 DefaultHold
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{hold: hold}
}

// HandleKey 处理一次按键，now 为本局已运行时间
func (in *Input) HandleKey(ev *tcell.EventKey, now time.Duration) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionBack
	case tcell.KeyEnter:
		return ActionLeaderboard
	case tcell.KeyLeft:
		in.press(game.IntentLeft, now)
		return ActionNone
	case tcell.KeyRight:
		in.press(game.IntentRight, now)
		return ActionNone
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			in.press(game.IntentLeft, now)
		case 'd', 'D', 'l':
			in.press(game.IntentRight, now)
		case ' ':
			in.Release()
		case 'q':
			return ActionQuit
		case 'r', 'R':
			return ActionRestart
		case 'b', 'B':
			return ActionLeaderboard
		case 'm', 'M':
			return ActionToggleSound
		}
	}
	return ActionNone
}

func (in *Input) press(intent game.Intent, now time.Duration) {
	in.intent = intent
	in.until = now + in.hold
}

// Release 立即停止移动
func (in *Input) Release() {
	in.intent = game.IntentNeutral
	in.until = 0
}

// Intent 返回 now 时刻的移动意图
func (in *Input) Intent(now time.Duration) game.Intent {
	if now >= in.until {
		return game.IntentNeutral
	}
	return in.intent
}
