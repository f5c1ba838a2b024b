package systems

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/game"
)

type countingSubmitter struct {
	mu     sync.Mutex
	scores []int
}

func (s *countingSubmitter) SubmitScore(_ context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, score)
	return nil
}

func (s *countingSubmitter) max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := 0
	for _, v := range s.scores {
		best = max(best, v)
	}
	return best
}

func TestBoostExpiresAfterFiveSeconds(t *testing.T) {
	w := newTestWorld(t, 1)
	w.powerUps.Collect(components.PowerUpBoost)

	if !w.state.SpeedBoostActive || w.movement.PlayerSpeed() != 300 {
		t.Fatal("boost should be active with speed 300")
	}
	w.timers.Advance(4999 * time.Millisecond)
	if !w.state.SpeedBoostActive {
		t.Fatal("boost expired early")
	}
	w.timers.Advance(time.Millisecond)
	if w.state.SpeedBoostActive || w.movement.PlayerSpeed() != 160 {
		t.Error("boost should expire at 5s")
	}
	if w.state.PowerupsCollected != 1 {
		t.Errorf("powerupsCollected: got %d", w.state.PowerupsCollected)
	}
}

func TestBoostRecollectRestartsTimer(t *testing.T) {
	w := newTestWorld(t, 1)
	w.powerUps.Collect(components.PowerUpBoost)
	w.timers.Advance(4 * time.Second)
	w.powerUps.Collect(components.PowerUpBoost)

	w.timers.Advance(2 * time.Second)
	if !w.state.SpeedBoostActive {
		t.Error("first expiry must not cut the second boost short")
	}
	w.timers.Advance(3 * time.Second)
	if w.state.SpeedBoostActive {
		t.Error("second boost should end 5s after re-collect")
	}
}

func TestShieldConsumedCancelsExpiry(t *testing.T) {
	w := newTestWorld(t, 1)
	w.powerUps.Collect(components.PowerUpShield)
	if !w.powerUps.ShieldExpiryPending() {
		t.Fatal("shield expiry should be scheduled")
	}

	if !w.powerUps.ConsumeShield() {
		t.Fatal("active shield should be consumable")
	}
	if w.state.ShieldActive || w.powerUps.ShieldExpiryPending() {
		t.Error("consumed shield must be inactive with its expiry cancelled")
	}
	if w.powerUps.ConsumeShield() {
		t.Error("no shield left to consume")
	}

	// 新护盾不会被旧的到期定时器提前关闭
	w.timers.Advance(2 * time.Second)
	w.powerUps.Collect(components.PowerUpShield)
	w.timers.Advance(7 * time.Second)
	if !w.state.ShieldActive {
		t.Error("second shield should still be active 7s after pickup")
	}
	w.timers.Advance(time.Second)
	if w.state.ShieldActive {
		t.Error("second shield should expire 8s after pickup")
	}
	if !w.hasCue(game.CueShieldOff) {
		t.Error("expiry should emit shield off cue")
	}
}
