package systems

import (
	"testing"
	"time"
)

func TestTimerServiceScheduleOnce(t *testing.T) {
	ts := NewTimerService()
	fired := 0
	ts.ScheduleOnce(100*time.Millisecond, func() { fired++ })

	ts.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired too early")
	}
	ts.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected 1 firing at 100ms, got %d", fired)
	}
	ts.Advance(time.Second)
	if fired != 1 {
		t.Errorf("one-shot timer fired again: %d", fired)
	}
	if ts.Pending() != 0 {
		t.Errorf("pending after one-shot: %d", ts.Pending())
	}
}

func TestTimerServiceRepeatingCatchUp(t *testing.T) {
	ts := NewTimerService()
	fired := 0
	h := ts.ScheduleRepeating(100*time.Millisecond, func() { fired++ })

	ts.Advance(350 * time.Millisecond)
	if fired != 3 {
		t.Errorf("repeating timer should catch up to 3 firings, got %d", fired)
	}
	if got := ts.Interval(h); got != 100*time.Millisecond {
		t.Errorf("Interval: got %v", got)
	}

	ts.Cancel(h)
	ts.Advance(time.Second)
	if fired != 3 {
		t.Errorf("cancelled timer fired: %d", fired)
	}
	if ts.Interval(h) != 0 {
		t.Error("Interval of cancelled handle should be 0")
	}
}

func TestTimerServiceOrderAndTies(t *testing.T) {
	ts := NewTimerService()
	var order []string
	ts.ScheduleOnce(200*time.Millisecond, func() { order = append(order, "c") })
	ts.ScheduleOnce(100*time.Millisecond, func() { order = append(order, "a") })
	ts.ScheduleOnce(100*time.Millisecond, func() { order = append(order, "b") })

	ts.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: got %s, want %s", i, order[i], want[i])
		}
	}
}

func TestTimerServiceCancelWithinSameAdvance(t *testing.T) {
	ts := NewTimerService()
	fired := false
	var victim TimerHandle
	ts.ScheduleOnce(10*time.Millisecond, func() { ts.Cancel(victim) })
	victim = ts.ScheduleOnce(20*time.Millisecond, func() { fired = true })

	ts.Advance(50 * time.Millisecond)
	if fired {
		t.Error("timer cancelled by an earlier callback in the same Advance must not fire")
	}
}

func TestTimerServiceScheduleFromCallback(t *testing.T) {
	ts := NewTimerService()
	var at []time.Duration
	ts.ScheduleOnce(10*time.Millisecond, func() {
		ts.ScheduleOnce(10*time.Millisecond, func() { at = append(at, ts.Now()) })
		ts.ScheduleOnce(100*time.Millisecond, func() { at = append(at, ts.Now()) })
	})

	ts.Advance(50 * time.Millisecond)
	if len(at) != 1 || at[0] != 20*time.Millisecond {
		t.Fatalf("nested timer within window should fire at 20ms, got %v", at)
	}
	ts.Advance(60 * time.Millisecond)
	if len(at) != 2 || at[1] != 110*time.Millisecond {
		t.Errorf("nested timer outside window should fire later at 110ms, got %v", at)
	}
}

func TestTimerServiceCancelAll(t *testing.T) {
	ts := NewTimerService()
	fired := 0
	h := ts.ScheduleRepeating(10*time.Millisecond, func() { fired++ })
	ts.ScheduleOnce(10*time.Millisecond, func() { fired++ })

	ts.CancelAll()
	if ts.Pending() != 0 {
		t.Errorf("pending after CancelAll: %d", ts.Pending())
	}
	ts.Advance(time.Second)
	if fired != 0 {
		t.Errorf("timers fired after CancelAll: %d", fired)
	}
	if ts.Active(h) {
		t.Error("old handle should be inactive after CancelAll")
	}

	// 旧句柄不能取消新代的定时器
	h2 := ts.ScheduleOnce(10*time.Millisecond, func() { fired++ })
	ts.Cancel(h)
	ts.Advance(10 * time.Millisecond)
	if fired != 1 || ts.Active(h2) {
		t.Errorf("new-generation timer should fire once, fired=%d", fired)
	}
}

func TestTimerHandleZeroValue(t *testing.T) {
	ts := NewTimerService()
	var h TimerHandle
	if h.Valid() {
		t.Error("zero handle should not be valid")
	}
	ts.Cancel(h)
	if ts.Active(h) {
		t.Error("zero handle should never be active")
	}
}
