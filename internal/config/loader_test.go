package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_Defaults verifies defaults apply when nothing else is set.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "hipat.db" {
		t.Errorf("DBPath = %q, want hipat.db", cfg.DBPath)
	}
	if cfg.OutboxIntervalSeconds != 60 {
		t.Errorf("OutboxIntervalSeconds = %d, want 60", cfg.OutboxIntervalSeconds)
	}
}

// TestLoad_EnvOverrides verifies HIPAT_ env vars take precedence.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HIPAT_ADDR", ":9999")
	t.Setenv("HIPAT_DB_PATH", "/tmp/test.db")
	t.Setenv("HIPAT_MENTOR_NAME", "Jordan Lee")
	t.Setenv("HIPAT_OUTBOX_INTERVAL_SECONDS", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MentorName != "Jordan Lee" {
		t.Errorf("MentorName = %q", cfg.MentorName)
	}
	if cfg.OutboxIntervalSeconds != 15 {
		t.Errorf("OutboxIntervalSeconds = %d", cfg.OutboxIntervalSeconds)
	}
}

// TestLoad_YAMLFileThenEnv verifies env wins over the YAML file.
func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hipat.yaml")
	yaml := "addr: \":7070\"\nemail_from: \"Coach <coach@example.com>\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HIPAT_CONFIG", path)
	t.Setenv("HIPAT_ADDR", ":6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EmailFrom != "Coach <coach@example.com>" {
		t.Errorf("EmailFrom = %q, want file value", cfg.EmailFrom)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("Addr = %q, want env override", cfg.Addr)
	}
}

// TestLoad_RejectsBadValues verifies validation failures.
func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("HIPAT_OUTBOX_INTERVAL_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero outbox interval")
	}
}
