package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv(EnvPersona, "Mobile")
	t.Setenv(EnvPlatform, "xbox")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvSessionID, "env-sid")
	t.Setenv(EnvCron, "0 * * * *")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{"platform": true}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	if cfg.Persona != "Mobile" {
		t.Errorf("Persona = %v, want Mobile", cfg.Persona)
	}
	if cfg.Platform != "ps" {
		t.Errorf("Platform = %v, want ps (flag was set)", cfg.Platform)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.SessionID != "env-sid" {
		t.Errorf("SessionID = %v, want env-sid", cfg.SessionID)
	}
	if cfg.Cron != "0 * * * *" {
		t.Errorf("Cron = %v, want 0 * * * *", cfg.Cron)
	}
}

func TestApplyEnvConfig_InvalidDuration(t *testing.T) {
	t.Setenv(EnvTimeout, "fast")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyEnvConfig() expected error for invalid timeout")
	}
}

// Precedence order: flag > env > file.
func TestConfigPrecedence(t *testing.T) {
	fileConf := FileConfig{
		Persona:   "Mobile",
		Platform:  "xbox",
		Transport: "fasthttp",
		NucleusID: "file-nucleus",
	}

	t.Setenv(EnvPlatform, "ps")
	t.Setenv(EnvNucleusID, "env-nucleus")

	changed := map[string]bool{"nucleus-id": true}
	cfg := DefaultConfig()
	cfg.NucleusID = "flag-nucleus"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.NucleusID != "flag-nucleus" {
		t.Errorf("NucleusID = %v, want flag-nucleus (flag should win)", cfg.NucleusID)
	}
	if cfg.Platform != "ps" {
		t.Errorf("Platform = %v, want ps (env should override file)", cfg.Platform)
	}
	if cfg.Persona != "Mobile" {
		t.Errorf("Persona = %v, want Mobile (file should set)", cfg.Persona)
	}
	if cfg.Transport != "fasthttp" {
		t.Errorf("Transport = %v, want fasthttp (file should set)", cfg.Transport)
	}
}

func TestPinnedKeys(t *testing.T) {
	t.Setenv(EnvPersona, "")
	t.Setenv(EnvPlatform, "xbox")

	pinned := PinnedKeys(map[string]bool{"sid": true})

	if !pinned["sid"] || !pinned["platform"] {
		t.Errorf("PinnedKeys() = %v, want sid and platform", pinned)
	}
	if pinned["persona"] {
		t.Errorf("persona pinned without a flag or env var")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.env")
	content := "UTFORGE_SID=dotenv-sid\nUTFORGE_NUCLEUS_ID=dotenv-nucleus\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// Variables already present win over the file.
	t.Setenv(EnvNucleusID, "process-nucleus")
	t.Setenv(EnvSessionID, "")
	os.Unsetenv(EnvSessionID)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv(EnvSessionID); got != "dotenv-sid" {
		t.Errorf("%s = %q, want dotenv-sid", EnvSessionID, got)
	}
	if got := os.Getenv(EnvNucleusID); got != "process-nucleus" {
		t.Errorf("%s = %q, want process-nucleus", EnvNucleusID, got)
	}
}

func TestLoadDotEnv_MissingExplicitFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadDotEnv() expected error for a missing explicit file")
	}
}
