package entities

import (
	"testing"

	"github.com/gonewx/neonrun/pkg/components"
	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/ecs"
)

func TestNewPlayerEntity(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	r := NewRegistry(em)

	id := NewPlayerEntity(em, cfg)

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("player should have a position")
	}
	if pos.X != cfg.Player.StartX || pos.Y != cfg.Player.StartY {
		t.Errorf("start position: got (%.0f,%.0f)", pos.X, pos.Y)
	}

	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok {
		t.Fatal("player component missing")
	}
	if player.MinX != 16 || player.MaxX != 384 {
		t.Errorf("movement range: got [%.0f,%.0f], want [16,384]", player.MinX, player.MaxX)
	}

	if got := r.Count(); got != 0 {
		t.Errorf("player must not be listed as a falling object, count=%d", got)
	}
}

func TestFactoriesApplySizesAndScale(t *testing.T) {
	cfg := config.DefaultGameConfig()
	r := NewRegistry(ecs.NewEntityManager())

	tests := []struct {
		name       string
		spawn      func() ecs.EntityID
		wantKind   components.ObjectKind
		wantW      float64
		wantH      float64
		wantBoss   bool
		wantVarint components.PowerUpVariant
	}{
		{
			name:     "plain obstacle",
			spawn:    func() ecs.EntityID { return NewObstacle(r, cfg, 100, -50, 0, 100, 1, 1, false) },
			wantKind: components.KindObstacle, wantW: 32, wantH: 32,
		},
		{
			name:     "laser segment",
			spawn:    func() ecs.EntityID { return NewObstacle(r, cfg, 200, 0, 0, 180, 2, 0.25, true) },
			wantKind: components.KindObstacle, wantW: 64, wantH: 8, wantBoss: true,
		},
		{
			name:     "core",
			spawn:    func() ecs.EntityID { return NewCore(r, cfg, 100, -50, 120) },
			wantKind: components.KindCore, wantW: 24, wantH: 24,
		},
		{
			name:       "shield",
			spawn:      func() ecs.EntityID { return NewPowerUp(r, cfg, components.PowerUpShield, 100, -50, 120) },
			wantKind:   components.KindPowerUp, wantW: 24, wantH: 24,
			wantVarint: components.PowerUpShield,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := r.Get(tt.spawn())
			if !ok {
				t.Fatal("entity not registered")
			}
			if e.Kind != tt.wantKind {
				t.Errorf("kind: got %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Width != tt.wantW || e.Height != tt.wantH {
				t.Errorf("size: got %.1fx%.1f, want %.1fx%.1f", e.Width, e.Height, tt.wantW, tt.wantH)
			}
			if e.FromBoss != tt.wantBoss {
				t.Errorf("FromBoss: got %v, want %v", e.FromBoss, tt.wantBoss)
			}
			if e.Variant != tt.wantVarint {
				t.Errorf("variant: got %v, want %v", e.Variant, tt.wantVarint)
			}
		})
	}
}
