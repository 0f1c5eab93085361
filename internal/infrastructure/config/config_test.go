package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/debtnet/internal/infrastructure/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("DEBTNET_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"STORE_BACKEND", "STORAGE_KEY", "DATA_DIR", "SQLITE_PATH", "REDIS_URL", "RECENT_LIMIT", "UPCOMING_WINDOW", "CURRENCY_SYMBOL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("HOME", "/home/ann")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreBackend != config.BackendFile {
		t.Fatalf("expected file backend by default, got %s", cfg.StoreBackend)
	}

	if cfg.StorageKey != "SavedDebts" {
		t.Fatalf("expected default storage key, got %s", cfg.StorageKey)
	}

	if cfg.DataDir != "/home/ann/.debtnet" {
		t.Fatalf("expected data dir under HOME, got %s", cfg.DataDir)
	}

	if cfg.SQLitePath != "/home/ann/.debtnet/debtnet.db" {
		t.Fatalf("expected sqlite file inside data dir, got %s", cfg.SQLitePath)
	}

	if cfg.UpcomingWindow != 7*24*time.Hour {
		t.Fatalf("expected one week upcoming window, got %s", cfg.UpcomingWindow)
	}

	if cfg.RecentLimit != 5 {
		t.Fatalf("expected recent limit 5, got %d", cfg.RecentLimit)
	}
}

func TestLoadWithoutHome(t *testing.T) {
	isolate(t)
	t.Setenv("HOME", "")
	os.Unsetenv("HOME")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DataDir != ".debtnet" {
		t.Fatalf("expected relative data dir without HOME, got %s", cfg.DataDir)
	}

	if cfg.SQLitePath != filepath.Join(".debtnet", "debtnet.db") {
		t.Fatalf("expected sqlite file inside relative data dir, got %s", cfg.SQLitePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("STORAGE_KEY", "Debts")
	t.Setenv("CONNECT_TIMEOUT", "45s")
	t.Setenv("CURRENCY_SYMBOL", "$")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreBackend != config.BackendRedis {
		t.Fatalf("expected redis backend, got %s", cfg.StoreBackend)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.StorageKey != "Debts" {
		t.Fatalf("expected storage key override, got %s", cfg.StorageKey)
	}

	if cfg.ConnectTimeout != 45*time.Second {
		t.Fatalf("expected connect timeout override, got %s", cfg.ConnectTimeout)
	}

	if cfg.CurrencySymbol != "$" {
		t.Fatalf("expected currency override, got %s", cfg.CurrencySymbol)
	}
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("STORE_BACKEND=sqlite\nRECENT_LIMIT=9\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("DEBTNET_ENV_FILE", path)
	t.Cleanup(func() {
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("RECENT_LIMIT")
	})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StoreBackend != config.BackendSQLite || cfg.RecentLimit != 9 {
		t.Fatalf("expected values from env file, got backend=%s limit=%d", cfg.StoreBackend, cfg.RecentLimit)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	isolate(t)
	t.Setenv("UPCOMING_WINDOW", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_BACKEND", "mongo")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
