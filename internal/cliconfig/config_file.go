package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Persona   string `toml:"persona"`
	Platform  string `toml:"platform"`
	Transport string `toml:"transport"`
	Timeout   string `toml:"timeout"`
	LogLevel  string `toml:"log_level"`
	EnvFile   string `toml:"env_file"`

	SessionID     string `toml:"session_id"`
	NucleusID     string `toml:"nucleus_id"`
	PhishingToken string `toml:"phishing_token"`
	PowID         string `toml:"pow_id"`
	Route         string `toml:"route"`

	Cron        string `toml:"cron"`
	MetricsAddr string `toml:"metrics_addr"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.utforge/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".utforge", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("persona", fc.Persona, &cfg.Persona)
	s.setString("platform", fc.Platform, &cfg.Platform)
	s.setString("transport", fc.Transport, &cfg.Transport)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("env-file", fc.EnvFile, &cfg.EnvFile)

	s.setString("sid", fc.SessionID, &cfg.SessionID)
	s.setString("nucleus-id", fc.NucleusID, &cfg.NucleusID)
	s.setString("phishing", fc.PhishingToken, &cfg.PhishingToken)
	s.setString("pow-id", fc.PowID, &cfg.PowID)
	s.setString("route", fc.Route, &cfg.Route)

	s.setString("cron", fc.Cron, &cfg.Cron)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	return s.setDuration("timeout", fc.Timeout, &cfg.Timeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
