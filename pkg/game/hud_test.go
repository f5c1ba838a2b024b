package game

import "testing"

func TestHealthBandFor(t *testing.T) {
	tests := []struct {
		health int
		want   HealthBand
	}{
		{100, HealthBandGreen},
		{61, HealthBandGreen},
		{60, HealthBandYellow},
		{31, HealthBandYellow},
		{30, HealthBandRed},
		{0, HealthBandRed},
		{-20, HealthBandRed},
	}

	for _, tt := range tests {
		if got := HealthBandFor(tt.health); got != tt.want {
			t.Errorf("HealthBandFor(%d): got %v, want %v", tt.health, got, tt.want)
		}
	}

	if HealthBandRed.Color() != HealthRed || HealthBandGreen.Color() != HealthGreen {
		t.Error("band colors mismatch")
	}
}

func TestHealthBarWidth(t *testing.T) {
	tests := []struct {
		name   string
		health int
		want   float64
	}{
		{"full", 100, 200},
		{"half", 50, 100},
		{"negative clamps to zero", -20, 0},
		{"overflow clamps to frame", 150, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthBarWidth(tt.health, 100, 200); got != tt.want {
				t.Errorf("got %.1f, want %.1f", got, tt.want)
			}
		})
	}

	if got := HealthBarWidth(50, 0, 200); got != 0 {
		t.Errorf("zero max health should give 0 width, got %.1f", got)
	}
}

func TestComboText(t *testing.T) {
	tests := []struct {
		combo int
		want  string
	}{
		{0, ""},
		{1, "Combo x1.2"},
		{3, "Combo x1.6"},
		{5, "Combo x2.0"},
		{12, "Combo x3.4"},
	}

	for _, tt := range tests {
		if got := ComboText(tt.combo); got != tt.want {
			t.Errorf("ComboText(%d): got %q, want %q", tt.combo, got, tt.want)
		}
	}

	if ScoreText(70) != "Score: 70" {
		t.Errorf("ScoreText mismatch: %q", ScoreText(70))
	}
}

func TestIntentDirection(t *testing.T) {
	if IntentLeft.Direction() != -1 || IntentRight.Direction() != 1 || IntentNeutral.Direction() != 0 {
		t.Error("intent directions mismatch")
	}
	if Intent(5).Direction() != 1 {
		t.Error("positive intent should map to right")
	}
}

func TestCueQueueDrain(t *testing.T) {
	q := NewCueQueue()
	q.Emit(CueBoostOn)
	q.Push(Cue{Type: CueCoreCollected, X: 10, Y: 20})

	cues := q.Drain()
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Type != CueBoostOn || cues[1].X != 10 {
		t.Errorf("cue order or content mismatch: %+v", cues)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Error("queue should be empty after drain")
	}
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines(FinalStats{Score: 80, MaxCombo: 5, PowerupsCollected: 2, BossSurvivedCount: 1})
	want := []string{"Final Score: 80", "Max Combo: 5", "Power-ups: 2", "Boss Survived: 1"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
