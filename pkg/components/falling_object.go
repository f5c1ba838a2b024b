package components

// ObjectKind 下落物体的种类
type ObjectKind int

const (
	// KindObstacle 障碍物：碰到会扣血（有护盾时消耗护盾）
	KindObstacle ObjectKind = iota
	// KindCore 能量核心：收集后加分并推进连击
	KindCore
	// KindPowerUp 道具：收集后激活加速或护盾
	KindPowerUp
)

// String 返回种类名称（日志与渲染使用）
func (k ObjectKind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCore:
		return "core"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// PowerUpVariant 道具子类型，仅 KindPowerUp 有意义
type PowerUpVariant int

const (
	PowerUpNone PowerUpVariant = iota
	PowerUpBoost
	PowerUpShield
)

// String 返回道具名称
func (v PowerUpVariant) String() string {
	switch v {
	case PowerUpBoost:
		return "boost"
	case PowerUpShield:
		return "shield"
	default:
		return "none"
	}
}

// FallingObjectComponent 标记实体为下落物体（障碍物、核心、道具）
// 注意：遵循 ECS 原则，组件仅存储数据
type FallingObjectComponent struct {
	Kind    ObjectKind
	Variant PowerUpVariant
	// Alive 为 false 表示已被消耗或剔除，等待本帧末清理
	Alive bool
	// FromBoss 是否由 Boss 事件生成（渲染时使用不同外观）
	FromBoss bool
}
