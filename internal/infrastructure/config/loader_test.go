package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/sqai-go/internal/domain"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Preferences.DefaultModel != "llama3.2" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if len(cfg.Models) == 0 || cfg.Models[0].GetBinary() != "ollama" {
		t.Fatalf("Models = %+v", cfg.Models)
	}
	if cfg.Database.DSNEnv != "SQAI_DSN" {
		t.Fatalf("DSNEnv = %q", cfg.Database.DSNEnv)
	}
}

func TestLoadHydratesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
models:
  - name: pg-coder
    backend: http
    model_id: sqlcoder
database:
  driver: postgres
  dsn: postgres://localhost/dvdrental
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.DefaultModel != "pg-coder" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if cfg.Preferences.Dialect != "PostgreSQL" {
		t.Fatalf("Dialect = %q", cfg.Preferences.Dialect)
	}
	if cfg.Preferences.MaxRows != domain.DefaultMaxRows || cfg.Preferences.TimeoutSeconds != domain.DefaultTimeoutSeconds {
		t.Fatalf("Preferences = %+v", cfg.Preferences)
	}
	if !filepath.IsAbs(cfg.History.Path) || !filepath.IsAbs(cfg.Glossary.Path) {
		t.Fatalf("paths should be absolute: %q %q", cfg.History.Path, cfg.Glossary.Path)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("models: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPathHonoursEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)
	if got := NewFileLoader("").Path(); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestResolveDSN(t *testing.T) {
	db := domain.DatabaseSettings{DSN: "from-file", DSNEnv: "SQAI_TEST_DSN"}
	if got := ResolveDSN(db); got != "from-file" {
		t.Fatalf("ResolveDSN() = %q", got)
	}
	t.Setenv("SQAI_TEST_DSN", "from-env")
	if got := ResolveDSN(db); got != "from-env" {
		t.Fatalf("ResolveDSN() = %q", got)
	}
}

func TestDefaultRoundTrips(t *testing.T) {
	raw, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Models) != len(Default().Models) {
		t.Fatalf("models lost in round trip: %+v", cfg.Models)
	}
}

func TestSaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	cfg.Preferences.MaxRows = 7
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Preferences.MaxRows != 7 {
		t.Fatalf("MaxRows = %d after save", reloaded.Preferences.MaxRows)
	}

	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	reset, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if reset.Preferences.MaxRows != domain.DefaultMaxRows {
		t.Fatalf("MaxRows after reset = %d", reset.Preferences.MaxRows)
	}
}
