package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"EXPENSE_TRACKER_DATA",
		"EXPENSE_TRACKER_CURRENCY",
		"EXPENSE_TRACKER_CYCLE_DAYS",
		"EXPENSE_TRACKER_LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Data != DefaultDataPath() {
		t.Errorf("Data = %q, want %q", cfg.Data, DefaultDataPath())
	}
	if cfg.CycleDays != DefaultCycleDays {
		t.Errorf("CycleDays = %d, want %d", cfg.CycleDays, DefaultCycleDays)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data: /tmp/mine.json
currency: usd
cycle_days: 30
log_level: info
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Data != "/tmp/mine.json" || cfg.CycleDays != 30 || cfg.LogLevel != "info" {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.ResolveCurrency().Code; got != "USD" {
		t.Errorf("currency = %q, want USD", got)
	}

	t.Setenv("EXPENSE_TRACKER_DATA", "sqlite:/tmp/other.db")
	t.Setenv("EXPENSE_TRACKER_CYCLE_DAYS", "15")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig with env error: %v", err)
	}
	if cfg.Data != "sqlite:/tmp/other.db" {
		t.Errorf("Data = %q, want env override", cfg.Data)
	}
	if cfg.CycleDays != 15 {
		t.Errorf("CycleDays = %d, want 15", cfg.CycleDays)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want file value kept", cfg.LogLevel)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `cycle_days: -3
currency: reais
log_level: loud
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error")
	}
	// Every problem is reported at once
	for _, want := range []string{"cycle_days", "currency", "loud"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cycle_days: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("EXPENSE_TRACKER_CYCLE_DAYS", "monthly")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for non-numeric cycle days")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Data: "/tmp/x.json", Currency: "BRL", CycleDays: 25, LogLevel: "debug"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}
