package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Dashboard.UpcomingLimit != 5 {
		t.Errorf("upcoming_limit = %d, want 5", cfg.Dashboard.UpcomingLimit)
	}
	if !cfg.Remote.Enabled {
		t.Error("remote.enabled should default to true")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Store.Path = "/tmp/studio.db"
	cfg.Dashboard.UpcomingLimit = 8
	cfg.Backup.Schedule = "0 3 * * *"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Store.Path != "/tmp/studio.db" || got.Dashboard.UpcomingLimit != 8 || got.Backup.Schedule != "0 3 * * *" {
		t.Errorf("round-tripped config = %+v", got)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PHOTODESK_STORE_PATH", "/env/photodesk.db")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Path != "/env/photodesk.db" {
		t.Errorf("store.path = %q, want env override", cfg.Store.Path)
	}
}
