package scenes

import (
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IntentFromKeys 把左右按键状态转换为移动意图，同时按下时不动
func IntentFromKeys(left, right bool) game.Intent {
	switch {
	case left && !right:
		return game.IntentLeft
	case right && !left:
		return game.IntentRight
	default:
		return game.IntentNeutral
	}
}

// IntentFromPointer 触摸或按住鼠标时，按指针在屏幕左半边还是右半边决定方向
func IntentFromPointer(pressed bool, x int) game.Intent {
	if !pressed {
		return game.IntentNeutral
	}
	if x < config.GameWindowWidth/2 {
		return game.IntentLeft
	}
	return game.IntentRight
}

// SampleIntent 采样本帧的移动意图
// 键盘优先（方向键或 A/D），其次是触摸或鼠标
func SampleIntent() game.Intent {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	if intent := IntentFromKeys(left, right); intent != game.IntentNeutral {
		return intent
	}

	pressed, x, _ := pointerState()
	return IntentFromPointer(pressed, x)
}

// pointerState 获取指针状态（触摸优先，其次鼠标左键）
func pointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// isJustClicked 检查是否刚刚发生点击或触摸，返回点击位置
func isJustClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// anyKeyJustPressed 任一按键刚被按下
func anyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
