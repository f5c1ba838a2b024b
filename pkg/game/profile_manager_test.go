package game

import "testing"

// TestDefaultProfile 测试默认档案为访客身份
func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.Identity.GroupID != DefaultGroupID {
		t.Errorf("GroupID: got %q, want %q", p.Identity.GroupID, DefaultGroupID)
	}
	if p.Identity.PlayerID != GuestPlayerID {
		t.Errorf("PlayerID: got %q, want %q", p.Identity.PlayerID, GuestPlayerID)
	}
	if p.BestScore != 0 {
		t.Errorf("BestScore: got %d, want 0", p.BestScore)
	}
}

// TestNewProfileManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewProfileManagerNilGdata(t *testing.T) {
	pm := NewProfileManager(nil)
	if pm == nil {
		t.Fatal("NewProfileManager(nil) returned nil")
	}

	if pm.Identity().PlayerID != GuestPlayerID {
		t.Errorf("Degraded mode should use guest identity, got %q", pm.Identity().PlayerID)
	}

	// 降级模式下保存不报错
	pm.RecordGame(120)
	if err := pm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestProfileLoadSave 测试档案持久化往返
func TestProfileLoadSave(t *testing.T) {
	manager := openTestGdataManager(t, "profile")

	pm1 := NewProfileManager(manager)
	pm1.SetIdentity(PlayerIdentity{GroupID: "g-42", PlayerID: "p-7", PlayerName: "Neo"})
	pm1.RecordGame(250)
	if err := pm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	pm2 := NewProfileManager(manager)
	id := pm2.Identity()
	if id.GroupID != "g-42" || id.PlayerID != "p-7" || id.PlayerName != "Neo" {
		t.Errorf("Loaded identity mismatch: %+v", id)
	}
	if pm2.Profile().BestScore != 250 {
		t.Errorf("Loaded BestScore: got %d, want 250", pm2.Profile().BestScore)
	}
	if pm2.Profile().Games != 1 {
		t.Errorf("Loaded Games: got %d, want 1", pm2.Profile().Games)
	}
}

// TestSetIdentityKeepsExistingFields 测试只覆盖非空字段
func TestSetIdentityKeepsExistingFields(t *testing.T) {
	pm := NewProfileManager(nil)
	pm.SetIdentity(PlayerIdentity{GroupID: "club", PlayerID: "alice", PlayerName: "Alice"})
	pm.SetIdentity(PlayerIdentity{GroupID: "league"})

	id := pm.Identity()
	if id.GroupID != "league" {
		t.Errorf("GroupID: got %q, want league", id.GroupID)
	}
	if id.PlayerID != "alice" || id.PlayerName != "Alice" {
		t.Errorf("Existing fields should be kept, got %+v", id)
	}
}

// TestRecordGame 测试最高分只升不降
func TestRecordGame(t *testing.T) {
	pm := NewProfileManager(nil)

	tests := []struct {
		score    int
		improved bool
		best     int
	}{
		{100, true, 100},
		{80, false, 100},
		{-5, false, 100},
		{140, true, 140},
	}

	for _, tt := range tests {
		if got := pm.RecordGame(tt.score); got != tt.improved {
			t.Errorf("RecordGame(%d): got improved=%v, want %v", tt.score, got, tt.improved)
		}
		if pm.Profile().BestScore != tt.best {
			t.Errorf("after RecordGame(%d): best=%d, want %d", tt.score, pm.Profile().BestScore, tt.best)
		}
	}
	if pm.Profile().Games != len(tests) {
		t.Errorf("Games: got %d, want %d", pm.Profile().Games, len(tests))
	}
}
