package game

// Intent 玩家当前的水平移动意图，每个 tick 采样一次
type Intent int8

const (
	IntentLeft    Intent = -1
	IntentNeutral Intent = 0
	IntentRight   Intent = 1
)

// Direction 返回 -1 / 0 / 1，用于乘以移动速度
func (i Intent) Direction() float64 {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	default:
		return 0
	}
}
