package components

// PositionComponent 存储实体在游戏世界中的位置（像素，中心点）
// y 轴向下为正，下落物体的 Y 只增不减
type PositionComponent struct {
	X float64
	Y float64
}
