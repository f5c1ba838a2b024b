package components

// VelocityComponent 存储实体的速度（像素/秒）
// 下落物体的 VY 始终 >= 0；VX 仅无人机攻击模式使用（横向漂移）
type VelocityComponent struct {
	VX float64
	VY float64
}
