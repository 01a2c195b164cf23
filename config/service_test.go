package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rice.yaml")
	content := `
debug: true
server:
  port: 9090
storage:
  backend: sqlite
  sqlite_path: /tmp/test.db
catalog:
  csv_path: data/movies.csv
  watch: true
recommendation:
  default_n: 5
  rule: "item.score > 0.05"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadService(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug || cfg.Server.Port != 9090 || cfg.Storage.Backend != "sqlite" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("unset host should default, got %q", cfg.Server.Host)
	}
	if cfg.Rec.DefaultN != 5 || cfg.Rec.Rule == "" {
		t.Errorf("rec = %+v", cfg.Rec)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.CSVPath != "data/movies.csv" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
}

func TestLoadService_MissingFile(t *testing.T) {
	if _, err := LoadService("/nonexistent/rice.yaml"); err == nil {
		t.Errorf("missing file must fail")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Service
	cfg.ApplyDefaults()
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8000 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend default = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Rec.DefaultN != 10 {
		t.Errorf("default_n = %d, want 10", cfg.Rec.DefaultN)
	}
}
