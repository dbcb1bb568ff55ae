package cliconfig

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnvConfig.
const (
	EnvPersona       = "UTFORGE_PERSONA"
	EnvPlatform      = "UTFORGE_PLATFORM"
	EnvTransport     = "UTFORGE_TRANSPORT"
	EnvTimeout       = "UTFORGE_TIMEOUT"
	EnvLogLevel      = "UTFORGE_LOG_LEVEL"
	EnvSessionID     = "UTFORGE_SID"
	EnvNucleusID     = "UTFORGE_NUCLEUS_ID"
	EnvPhishingToken = "UTFORGE_PHISHING_TOKEN"
	EnvPowID         = "UTFORGE_POW_ID"
	EnvRoute         = "UTFORGE_ROUTE"
	EnvCron          = "UTFORGE_CRON"
	EnvMetricsAddr   = "UTFORGE_METRICS_ADDR"
)

// ApplyEnvConfig applies configuration from environment variables (UTFORGE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("persona", os.Getenv(EnvPersona), &cfg.Persona)
	s.setString("platform", os.Getenv(EnvPlatform), &cfg.Platform)
	s.setString("transport", os.Getenv(EnvTransport), &cfg.Transport)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)

	s.setString("sid", os.Getenv(EnvSessionID), &cfg.SessionID)
	s.setString("nucleus-id", os.Getenv(EnvNucleusID), &cfg.NucleusID)
	s.setString("phishing", os.Getenv(EnvPhishingToken), &cfg.PhishingToken)
	s.setString("pow-id", os.Getenv(EnvPowID), &cfg.PowID)
	s.setString("route", os.Getenv(EnvRoute), &cfg.Route)

	s.setString("cron", os.Getenv(EnvCron), &cfg.Cron)
	s.setString("metrics-addr", os.Getenv(EnvMetricsAddr), &cfg.MetricsAddr)

	return s.setDuration("timeout", os.Getenv(EnvTimeout), &cfg.Timeout)
}

// PinnedKeys returns the changed flags plus the persona and platform keys
// whose environment variable is set. A config reload must not touch them.
func PinnedKeys(changed map[string]bool) map[string]bool {
	pinned := make(map[string]bool, len(changed)+2)
	for k, v := range changed {
		pinned[k] = v
	}
	if os.Getenv(EnvPersona) != "" {
		pinned["persona"] = true
	}
	if os.Getenv(EnvPlatform) != "" {
		pinned["platform"] = true
	}
	return pinned
}

// LoadDotEnv loads a .env file into the process environment. Variables
// already set are kept. An explicit path must exist; without one, ./.env is
// loaded when present.
func LoadDotEnv(path string) error {
	if path == "" {
		if !FileExists(".env") {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
