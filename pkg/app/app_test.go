package app

import (
	"testing"
	"testing/fstest"

	"github.com/gonewx/neonrun/pkg/config"
	"github.com/gonewx/neonrun/pkg/embedded"
	"github.com/gonewx/neonrun/pkg/scenes"
)

func TestLoadEmbeddedConfig(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })

	t.Run("not embedded falls back to defaults", func(t *testing.T) {
		embedded.Init(nil)
		cfg, err := loadEmbeddedConfig()
		if err != nil {
			t.Fatalf("loadEmbeddedConfig() error = %v", err)
		}
		if cfg.TickRate != config.DefaultGameConfig().TickRate {
			t.Errorf("TickRate = %d, want default", cfg.TickRate)
		}
	})

	t.Run("embedded overrides", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			EmbeddedConfigPath: {Data: []byte("tickRate: 30\n")},
		})
		cfg, err := loadEmbeddedConfig()
		if err != nil {
			t.Fatalf("loadEmbeddedConfig() error = %v", err)
		}
		if cfg.TickRate != 30 {
			t.Errorf("TickRate = %d, want 30", cfg.TickRate)
		}
	})

	t.Run("invalid embedded config is an error", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			EmbeddedConfigPath: {Data: []byte("tickRate: 0\n")},
		})
		if _, err := loadEmbeddedConfig(); err == nil {
			t.Error("expected error for tickRate 0")
		}
	})
}

func TestNewAppStartsAtMenu(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, GameConfig: config.DefaultGameConfig()})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	defer a.Close()

	if _, ok := a.GetSceneManager().GetCurrentScene().(*scenes.MenuScene); !ok {
		t.Errorf("initial scene = %T, want *scenes.MenuScene", a.GetSceneManager().GetCurrentScene())
	}
	if w, h := a.Layout(1920, 1080); w != config.GameWindowWidth || h != config.GameWindowHeight {
		t.Errorf("Layout() = %dx%d", w, h)
	}
	if a.deltaTime <= 0 {
		t.Errorf("deltaTime = %v", a.deltaTime)
	}
}
