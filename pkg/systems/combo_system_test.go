package systems

import (
	"testing"
	"time"

	"github.com/gonewx/neonrun/pkg/game"
)

func TestComboGainSequence(t *testing.T) {
	w := newTestWorld(t, 1)

	wantGains := []int{12, 14, 16, 18, 20}
	for i, want := range wantGains {
		if got := w.combo.CollectCore(0, 0); got != want {
			t.Errorf("core %d: gained %d, want %d", i+1, got, want)
		}
		w.timers.Advance(500 * time.Millisecond)
	}
	if w.state.Score != 80 {
		t.Errorf("score: got %d, want 80", w.state.Score)
	}
	if w.state.ComboCount != 5 || w.state.MaxCombo != 5 {
		t.Errorf("combo=%d maxCombo=%d, want 5/5", w.state.ComboCount, w.state.MaxCombo)
	}
}

func TestComboGainMatchesFloatFormula(t *testing.T) {
	w := newTestWorld(t, 1)
	for combo := 1; combo <= 50; combo++ {
		// floor(10 * (1 + combo*0.2)) 在精确算术下等于 10 + 2*combo
		if got := w.combo.Gain(combo); got != 10+2*combo {
			t.Errorf("Gain(%d) = %d", combo, got)
		}
	}
}

func TestComboDecay(t *testing.T) {
	w := newTestWorld(t, 1)
	w.combo.CollectCore(0, 0)
	w.combo.CollectCore(0, 0)
	w.cues.Drain()

	w.timers.Advance(2999 * time.Millisecond)
	if w.state.ComboCount != 2 {
		t.Fatalf("combo reset too early: %d", w.state.ComboCount)
	}
	w.timers.Advance(time.Millisecond)
	if w.state.ComboCount != 0 {
		t.Errorf("combo should reset 3s after last core, got %d", w.state.ComboCount)
	}
	if w.state.MaxCombo != 2 {
		t.Errorf("maxCombo must survive decay, got %d", w.state.MaxCombo)
	}
	if !w.hasCue(game.CueComboCleared) {
		t.Error("decay should emit a combo cleared cue")
	}
}

func TestComboSingleDecayTimer(t *testing.T) {
	w := newTestWorld(t, 1)
	for i := 0; i < 10; i++ {
		w.combo.CollectCore(0, 0)
		w.timers.Advance(time.Second)
	}
	if got := w.timers.Pending(); got != 1 {
		t.Errorf("exactly one decay timer should be pending, got %d", got)
	}
	if w.state.ComboCount != 10 {
		t.Errorf("collections 1s apart should keep the combo alive, got %d", w.state.ComboCount)
	}
}

func TestComboReportsScore(t *testing.T) {
	w := newTestWorld(t, 1)
	sub := &countingSubmitter{}
	reporter := game.NewScoreReporter(sub)
	w.combo = NewComboSystem(w.cfg.Combo, w.timers, w.state, w.cues, reporter)

	w.combo.CollectCore(0, 0)
	w.combo.CollectCore(0, 0)
	reporter.Wait()

	if got := sub.max(); got != 26 {
		t.Errorf("highest reported score: got %d, want 26", got)
	}
}
