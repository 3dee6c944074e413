package configfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database != "arete.db" {
		t.Errorf("Database = %q, want arete.db", cfg.Database)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	areteDir := filepath.Join(tmpDir, ".arete")
	if err := os.MkdirAll(areteDir, 0750); err != nil {
		t.Fatalf("failed to create .arete directory: %v", err)
	}

	cfg := &Config{Database: "custom.db"}

	if err := cfg.Save(areteDir); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(areteDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded == nil {
		t.Fatal("Load() returned nil config")
	}

	if loaded.Database != cfg.Database {
		t.Errorf("Database = %q, want %q", loaded.Database, cfg.Database)
	}
}

func TestLoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg != nil {
		t.Errorf("expected nil config for missing metadata file, got %+v", cfg)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{Database: "custom.db"}
	got := cfg.DatabasePath("/home/u/.arete")
	want := filepath.Join("/home/u/.arete", "custom.db")
	if got != want {
		t.Errorf("DatabasePath = %q, want %q", got, want)
	}

	empty := &Config{}
	if got := empty.DatabasePath("/d/.arete"); got != filepath.Join("/d/.arete", "arete.db") {
		t.Errorf("empty Database should fall back to arete.db, got %q", got)
	}
}
