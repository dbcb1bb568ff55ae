package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/rs/zerolog"

	"github.com/utkit/utforge/internal/domain"
)

// Transport names accepted by --transport.
const (
	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"
)

// DefaultCron is the poll schedule used when none is configured.
const DefaultCron = "*/5 * * * *"

// Config holds CLI configuration for utforge.
type Config struct {
	Persona   string
	Platform  string
	Transport string
	Timeout   time.Duration
	LogLevel  string
	EnvFile   string

	SessionID     string
	NucleusID     string
	PhishingToken string
	PowID         string
	Route         string

	Cron        string
	MetricsAddr string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Persona:   domain.WebApp.String(),
		Platform:  domain.PlayStation.String(),
		Transport: TransportNetHTTP,
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		Cron:      DefaultCron,
	}
}

// Validate checks the configuration and normalizes persona and platform
// to their canonical names.
func (c *Config) Validate() error {
	persona, err := domain.ParsePersona(c.Persona)
	if err != nil {
		return err
	}
	c.Persona = persona.String()

	platform, err := domain.ParsePlatform(c.Platform)
	if err != nil {
		return err
	}
	c.Platform = platform.String()

	c.Transport = strings.ToLower(c.Transport)
	if c.Transport != TransportNetHTTP && c.Transport != TransportFastHTTP {
		return fmt.Errorf("%w: unknown transport %q", domain.ErrInvalidConfiguration, c.Transport)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfiguration)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	if c.Cron != "" && !gronx.IsValid(c.Cron) {
		return fmt.Errorf("%w: invalid cron expression %q", domain.ErrInvalidConfiguration, c.Cron)
	}
	return nil
}

// Selection returns the validated persona and platform.
func (c Config) Selection() (domain.Persona, domain.Platform, error) {
	persona, err := domain.ParsePersona(c.Persona)
	if err != nil {
		return "", "", err
	}
	platform, err := domain.ParsePlatform(c.Platform)
	if err != nil {
		return "", "", err
	}
	return persona, platform, nil
}

// Masked returns a copy safe to log: session credentials are replaced.
func (c Config) Masked() Config {
	for _, s := range []*string{&c.SessionID, &c.PhishingToken, &c.PowID} {
		if *s != "" {
			*s = "*****"
		}
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
