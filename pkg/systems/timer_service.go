package systems

import (
	"time"
)

// TimerHandle 定时器句柄
//
// 句柄同时携带ID和代数（generation）：CancelAll 之后代数递增，
// 旧句柄即使ID相同也不会再匹配任何定时器。零值句柄表示"没有定时器"。
type TimerHandle struct {
	id  uint64
	gen uint64
}

// Valid 句柄是否指向过一个定时器（不代表它仍在等待）
func (h TimerHandle) Valid() bool {
	return h.id != 0
}

type timerEntry struct {
	id       uint64
	gen      uint64
	due      time.Duration
	interval time.Duration // 0 表示一次性定时器
	callback func()
}

// TimerService 单线程协作式定时服务
//
// 游戏中所有延时行为（生成节奏、连击衰减、道具到期、Boss 模式）都挂在这里。
// 回调只在 Advance 内部、在 tick 所在的 goroutine 上执行，因此回调可以直接修改 RunState。
// 服务本身不是并发安全的。
type TimerService struct {
	now        time.Duration
	nextID     uint64
	generation uint64
	timers     map[uint64]*timerEntry
}

// NewTimerService 创建定时服务，逻辑时钟从 0 开始
func NewTimerService() *TimerService {
	return &TimerService{
		nextID: 1,
		timers: make(map[uint64]*timerEntry),
	}
}

// Now 当前逻辑时间（所有 Advance 的累加）
func (ts *TimerService) Now() time.Duration {
	return ts.now
}

// ScheduleOnce 在 delay 之后执行一次回调，负的 delay 按 0 处理
func (ts *TimerService) ScheduleOnce(delay time.Duration, callback func()) TimerHandle {
	if delay < 0 {
		delay = 0
	}
	return ts.add(delay, 0, callback)
}

// ScheduleRepeating 每隔 interval 执行一次回调，第一次在 interval 之后
// interval 至少为 1ms
func (ts *TimerService) ScheduleRepeating(interval time.Duration, callback func()) TimerHandle {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return ts.add(interval, interval, callback)
}

func (ts *TimerService) add(delay, interval time.Duration, callback func()) TimerHandle {
	entry := &timerEntry{
		id:       ts.nextID,
		gen:      ts.generation,
		due:      ts.now + delay,
		interval: interval,
		callback: callback,
	}
	ts.nextID++
	ts.timers[entry.id] = entry
	return TimerHandle{id: entry.id, gen: entry.gen}
}

// Cancel 取消定时器，之后它永远不会再触发
// 对已触发的一次性定时器、已取消的句柄、零值句柄调用都是安全的
func (ts *TimerService) Cancel(h TimerHandle) {
	entry, ok := ts.timers[h.id]
	if !ok || entry.gen != h.gen {
		return
	}
	delete(ts.timers, h.id)
}

// Active 句柄对应的定时器是否仍在等待
func (ts *TimerService) Active(h TimerHandle) bool {
	entry, ok := ts.timers[h.id]
	return ok && entry.gen == h.gen
}

// Interval 返回重复定时器的间隔，一次性或已失效的句柄返回 0
func (ts *TimerService) Interval(h TimerHandle) time.Duration {
	entry, ok := ts.timers[h.id]
	if !ok || entry.gen != h.gen {
		return 0
	}
	return entry.interval
}

// Pending 等待中的定时器数量
func (ts *TimerService) Pending() int {
	return len(ts.timers)
}

// CancelAll 取消所有定时器（游戏结束、会话销毁时调用）
func (ts *TimerService) CancelAll() {
	clear(ts.timers)
	ts.generation++
}

// Advance 推进逻辑时钟 dt，并按到期时间顺序触发所有到期的定时器
//
// 同一时刻到期的定时器按创建顺序触发。重复定时器在 dt 跨越多个间隔时会补触发多次。
// 回调中新建的定时器，只要到期时间落在本次窗口内，也会在本次 Advance 中触发。
func (ts *TimerService) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := ts.now + dt

	for {
		entry := ts.nextDue(target)
		if entry == nil {
			break
		}
		ts.now = entry.due

		if entry.interval > 0 {
			entry.due += entry.interval
		} else {
			delete(ts.timers, entry.id)
		}
		entry.callback()
	}

	ts.now = target
}

// nextDue 找出最早到期（且不晚于 target）的定时器
func (ts *TimerService) nextDue(target time.Duration) *timerEntry {
	var best *timerEntry
	for _, e := range ts.timers {
		if e.due > target {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.id < best.id) {
			best = e
		}
	}
	return best
}
