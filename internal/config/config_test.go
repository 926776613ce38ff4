package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.HashSizeMB != 64 {
		t.Errorf("expected default hash size 64, got %d", cfg.Engine.HashSizeMB)
	}
	if cfg.Engine.MultiPV != 1 {
		t.Errorf("expected default MultiPV 1, got %d", cfg.Engine.MultiPV)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected Default(), got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zurigen.toml")
	body := `
[engine]
hash_size_mb = 256
multi_pv = 4

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.HashSizeMB != 256 {
		t.Errorf("expected hash size 256, got %d", cfg.Engine.HashSizeMB)
	}
	if cfg.Engine.MultiPV != 4 {
		t.Errorf("expected MultiPV 4, got %d", cfg.Engine.MultiPV)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logging.Level)
	}
	// Fields absent from the file keep their default.
	if cfg.Engine.Ponder != true {
		t.Errorf("expected ponder to keep default true, got %v", cfg.Engine.Ponder)
	}
}
