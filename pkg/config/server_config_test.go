package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults without env file", func(t *testing.T) {
		for _, key := range []string{EnvServerAddr, EnvAppName, EnvTopN, EnvAllowedOrigin} {
			t.Setenv(key, "")
		}
		cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != ":8080" || cfg.TopN != 20 {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("env file values", func(t *testing.T) {
		for _, key := range []string{EnvServerAddr, EnvAppName, EnvTopN, EnvAllowedOrigin} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
		path := filepath.Join(t.TempDir(), "test.env")
		content := "NEONRUN_ADDR=127.0.0.1:9090\nNEONRUN_TOP_N=5\nNEONRUN_APP_NAME=neonrun_test\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		cfg, err := LoadServerConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != "127.0.0.1:9090" {
			t.Errorf("expected addr from env file, got %q", cfg.Addr)
		}
		if cfg.TopN != 5 {
			t.Errorf("expected TopN = 5, got %d", cfg.TopN)
		}
		if cfg.AppName != "neonrun_test" {
			t.Errorf("expected app name from env file, got %q", cfg.AppName)
		}
	})

	t.Run("invalid top n", func(t *testing.T) {
		t.Setenv(EnvTopN, "zero")
		if _, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Error("expected error for non-numeric TopN")
		}
		t.Setenv(EnvTopN, "-3")
		if _, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Error("expected error for negative TopN")
		}
	})
}
