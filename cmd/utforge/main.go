package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	fasthttpadapter "github.com/utkit/utforge/internal/adapters/fasthttp"
	httpadapter "github.com/utkit/utforge/internal/adapters/http"
	"github.com/utkit/utforge/internal/adapters/metrics"
	"github.com/utkit/utforge/internal/cliconfig"
	"github.com/utkit/utforge/internal/ports"
	"github.com/utkit/utforge/pkg/forge"
	"github.com/utkit/utforge/pkg/log"
)

const longHelp = `Compose, inspect and send requests the way the Ultimate Team web app
and mobile app do.

Persona and platform decide the header table and the base host. Session
credentials come from flags, UTFORGE_* variables, a .env file or the
config file, in that order of precedence.`

var exampleUsage = strings.TrimSpace(`
  utforge build GET /ut/game/fifa/user --sid $SID
  utforge --persona Mobile send POST /ut/game/fifa/item --override DELETE --field itemId=123
  utforge poll GET /ut/game/fifa/user/credits --cron "*/10 * * * *" --select credits --metrics-addr :9100
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return forge.Version
}

// cli holds what the root command resolves before any subcommand runs.
type cli struct {
	cfg      cliconfig.Config
	cfgPath  string
	changed  map[string]bool
	logger   *log.ZerologAdapter
	settings *forge.Settings
	out      io.Writer
}

func main() {
	root, c := newRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		zl := c.logger.Logger()
		zl.Error().Err(err).Msg("utforge")
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) (*cobra.Command, *cli) {
	c := &cli{
		cfg:    cliconfig.DefaultConfig(),
		logger: log.NewZerologAdapter(os.Stderr, "info"),
		out:    out,
	}

	root := &cobra.Command{
		Use:           "utforge",
		Short:         "Compose and send Ultimate Team API requests",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.utforge/config.toml)")
	f.StringVar(&c.cfg.Persona, "persona", c.cfg.Persona, "client persona: WebApp or Mobile")
	f.StringVar(&c.cfg.Platform, "platform", c.cfg.Platform, "backend platform: ps or xbox")
	f.StringVar(&c.cfg.Transport, "transport", c.cfg.Transport, "HTTP client: nethttp or fasthttp")
	f.DurationVar(&c.cfg.Timeout, "timeout", c.cfg.Timeout, "request timeout")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&c.cfg.EnvFile, "env-file", c.cfg.EnvFile, "load variables from this .env file (default: ./.env when present)")

	f.StringVar(&c.cfg.SessionID, "sid", c.cfg.SessionID, "session id (X-UT-SID)")
	f.StringVar(&c.cfg.NucleusID, "nucleus-id", c.cfg.NucleusID, "nucleus id")
	f.StringVar(&c.cfg.PhishingToken, "phishing", c.cfg.PhishingToken, "anti-phishing token")
	f.StringVar(&c.cfg.PowID, "pow-id", c.cfg.PowID, "proof-of-work id (Mobile only)")
	f.StringVar(&c.cfg.Route, "route", c.cfg.Route, "route header value; a trailing port is stripped")

	root.AddCommand(
		newBuildCommand(c),
		newSendCommand(c),
		newPollCommand(c),
		newProfilesCommand(c),
	)
	return root, c
}

// load resolves configuration with precedence flag > env > .env > file > default.
func (c *cli) load(cmd *cobra.Command) error {
	c.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { c.changed[f.Name] = true })

	if c.cfgPath == "" {
		c.cfgPath = cliconfig.DefaultConfigPath()
	}
	if c.cfgPath != "" && cliconfig.FileExists(c.cfgPath) {
		fc, err := cliconfig.LoadFileConfig(c.cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, c.changed); err != nil {
			return err
		}
	}

	if err := cliconfig.LoadDotEnv(c.cfg.EnvFile); err != nil {
		return err
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, c.changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = log.NewZerologAdapter(os.Stderr, c.cfg.LogLevel)
	zl := c.logger.Logger()
	zl.Debug().Interface("config", c.cfg.Masked()).Msg("configuration")

	persona, platform, err := c.cfg.Selection()
	if err != nil {
		return err
	}
	c.settings, err = forge.NewSettings(persona, platform)
	return err
}

// transport returns the configured transport, instrumented when reg is set.
func (c *cli) transport(reg prometheus.Registerer) (ports.Transport, error) {
	var t ports.Transport
	switch c.cfg.Transport {
	case cliconfig.TransportFastHTTP:
		t = fasthttpadapter.NewTransport(nil, c.cfg.Timeout, c.logger)
	default:
		t = httpadapter.NewDefaultTransport(c.cfg.Timeout, c.logger)
	}
	if reg == nil {
		return t, nil
	}
	m, err := metrics.NewTransport(t, reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, nil
}

func (c *cli) factory(reg prometheus.Registerer) (*forge.Factory, error) {
	t, err := c.transport(reg)
	if err != nil {
		return nil, err
	}
	return forge.NewFactory(c.settings, t, forge.WithLogger(c.logger)), nil
}
