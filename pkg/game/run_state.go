package game

// RunState 单局游戏的全部可变状态
//
// 不再使用全局单例：每个 Engine 拥有自己的 RunState，
// 并以指针传给各个系统。只有碰撞、连击、道具、Boss、生命值系统会修改它，
// 渲染与输入只能通过 Snapshot() 读取副本。
type RunState struct {
	Score             int
	ComboCount        int
	MaxCombo          int
	Health            int
	MaxHealth         int
	SpeedBoostActive  bool
	ShieldActive      bool
	BossActive        bool
	BossSurvivedCount int
	PowerupsCollected int
	IsGameOver        bool
}

// NewRunState 创建一局新游戏的状态
func NewRunState(maxHealth int) *RunState {
	return &RunState{
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
}

// AddScore 增加分数，负数被忽略（分数只增不减）
func (rs *RunState) AddScore(amount int) {
	if amount <= 0 {
		return
	}
	rs.Score += amount
}

// DisplayHealth 返回用于显示的生命值，限制在 [0, MaxHealth]
func (rs *RunState) DisplayHealth() int {
	if rs.Health < 0 {
		return 0
	}
	if rs.MaxHealth > 0 && rs.Health > rs.MaxHealth {
		return rs.MaxHealth
	}
	return rs.Health
}

// RunStateSnapshot RunState 的只读副本
type RunStateSnapshot struct {
	Score             int
	ComboCount        int
	MaxCombo          int
	Health            int // 已限制为非负
	MaxHealth         int
	SpeedBoostActive  bool
	ShieldActive      bool
	BossActive        bool
	BossSurvivedCount int
	PowerupsCollected int
	IsGameOver        bool
}

// Snapshot 返回当前状态的副本
func (rs *RunState) Snapshot() RunStateSnapshot {
	return RunStateSnapshot{
		Score:             rs.Score,
		ComboCount:        rs.ComboCount,
		MaxCombo:          rs.MaxCombo,
		Health:            rs.DisplayHealth(),
		MaxHealth:         rs.MaxHealth,
		SpeedBoostActive:  rs.SpeedBoostActive,
		ShieldActive:      rs.ShieldActive,
		BossActive:        rs.BossActive,
		BossSurvivedCount: rs.BossSurvivedCount,
		PowerupsCollected: rs.PowerupsCollected,
		IsGameOver:        rs.IsGameOver,
	}
}

// FinalStats 游戏结束时交给展示层的统计数据
type FinalStats struct {
	Score             int
	MaxCombo          int
	PowerupsCollected int
	BossSurvivedCount int
}

// FinalStats 从当前状态生成结算数据
func (rs *RunState) FinalStats() FinalStats {
	return FinalStats{
		Score:             rs.Score,
		MaxCombo:          rs.MaxCombo,
		PowerupsCollected: rs.PowerupsCollected,
		BossSurvivedCount: rs.BossSurvivedCount,
	}
}
