package game

// CueType 展示层提示类型
// 核心只决定"发生了什么"，由渲染协作者决定怎么表现
type CueType int

const (
	CueComboChanged   CueType = iota // 连击数变化，Text 为新的连击文字
	CueComboCleared                  // 连击超时归零
	CueCoreCollected                 // 收集核心（粒子效果位置 X/Y）
	CueObstacleHit                   // 被障碍物击中并扣血
	CueShieldAbsorbed                // 护盾抵消了一次撞击
	CueBoostOn
	CueBoostOff
	CueShieldOn
	CueShieldOff
	CueBossStarted   // Text 为 Boss 模式名称
	CueBossCleared   // Boss 结束奖励（庆祝效果位置 X/Y）
	CueGameOver
)

// String 返回提示名称（日志使用）
func (c CueType) String() string {
	switch c {
	case CueComboChanged:
		return "combo_changed"
	case CueComboCleared:
		return "combo_cleared"
	case CueCoreCollected:
		return "core_collected"
	case CueObstacleHit:
		return "obstacle_hit"
	case CueShieldAbsorbed:
		return "shield_absorbed"
	case CueBoostOn:
		return "boost_on"
	case CueBoostOff:
		return "boost_off"
	case CueShieldOn:
		return "shield_on"
	case CueShieldOff:
		return "shield_off"
	case CueBossStarted:
		return "boss_started"
	case CueBossCleared:
		return "boss_cleared"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cue 一条展示层提示
type Cue struct {
	Type CueType
	X, Y float64
	Text string
}

// CueQueue 按发生顺序缓存提示，渲染层每帧 Drain 一次
type CueQueue struct {
	cues []Cue
}

// NewCueQueue 创建提示队列
func NewCueQueue() *CueQueue {
	return &CueQueue{cues: make([]Cue, 0, 16)}
}

// Push 追加一条提示
func (q *CueQueue) Push(cue Cue) {
	q.cues = append(q.cues, cue)
}

// Emit 追加一条无位置信息的提示
func (q *CueQueue) Emit(t CueType) {
	q.Push(Cue{Type: t})
}

// Drain 取出并清空所有提示
func (q *CueQueue) Drain() []Cue {
	if len(q.cues) == 0 {
		return nil
	}
	out := make([]Cue, len(q.cues))
	copy(out, q.cues)
	q.cues = q.cues[:0]
	return out
}

// Len 当前缓存的提示数量
func (q *CueQueue) Len() int {
	return len(q.cues)
}
