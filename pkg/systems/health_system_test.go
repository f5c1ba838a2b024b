package systems

import (
	"testing"
	"time"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/ecs"
	"github.com/gonewx/neonrun/pkg/game"
)

func TestHealthSystemGameOverOnce(t *testing.T) {
	w := newTestWorld(t, 1)
	w.spawner.Start(500)
	w.combo.CollectCore(0, 0)

	calls := 0
	var stats game.FinalStats
	w.health.OnGameOver(func(s game.FinalStats) {
		calls++
		stats = s
	})

	for i := 0; i < 4; i++ {
		if w.health.ApplyDamage(20) {
			t.Fatalf("game over too early at hit %d", i+1)
		}
	}
	if !w.health.ApplyDamage(20) {
		t.Fatal("fifth hit should end the game")
	}
	if w.health.ApplyDamage(20) {
		t.Error("damage after game over must be ignored")
	}
	w.health.GameOver()

	if calls != 1 {
		t.Errorf("OnGameOver called %d times, want 1", calls)
	}
	if stats.Score != 12 || stats.MaxCombo != 1 {
		t.Errorf("final stats: %+v", stats)
	}
	if w.timers.Pending() != 0 {
		t.Errorf("all timers must be cancelled, pending=%d", w.timers.Pending())
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, w.playerID)
	if !player.Frozen {
		t.Error("player should be frozen")
	}

	before := w.registry.Count()
	w.timers.Advance(10 * time.Second)
	if w.registry.Count() != before {
		t.Error("spawner kept running after game over")
	}
}

func TestHealthSystemLateListener(t *testing.T) {
	w := newTestWorld(t, 1)
	w.health.GameOver()

	called := false
	w.health.OnGameOver(func(game.FinalStats) { called = true })
	if !called {
		t.Error("listener registered after game over should be called immediately")
	}
}

func TestHealthDisplayClamped(t *testing.T) {
	w := newTestWorld(t, 1)
	w.health.ApplyDamage(150)
	if w.state.Snapshot().Health != 0 {
		t.Errorf("display health should clamp to 0, got %d", w.state.Snapshot().Health)
	}
}
