package components

// PlayerComponent 标记玩家控制的角色
// 水平移动范围被限制在 [MinX, MaxX]，游戏结束后 Frozen 为 true
type PlayerComponent struct {
	MinX   float64
	MaxX   float64
	Frozen bool
}
