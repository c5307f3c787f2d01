package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetupReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.env")
	content := "SERVER_PORT=9090\nREDIS_URL=redis:6379\nTICK_INTERVAL_MS=250\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MONGO_DATABASE", "from_env")

	cfg, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.ServerPort != "9090" || cfg.RedisUrl != "redis:6379" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.MongoDatabase != "from_env" {
		t.Fatalf("env must override defaults, got %q", cfg.MongoDatabase)
	}
	if cfg.TickInterval() != 250*time.Millisecond {
		t.Fatalf("tick interval = %v", cfg.TickInterval())
	}
	if cfg.BotServiceAddr != "" || cfg.SessionTTL() != 24*time.Hour {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestSetupWithoutFile(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults, got %v", err)
	}
	if cfg.ServerPort != "8080" || cfg.TickInterval() != 500*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
