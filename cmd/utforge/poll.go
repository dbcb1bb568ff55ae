package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/utkit/utforge/internal/app"
	"github.com/utkit/utforge/internal/cliconfig"
	"github.com/utkit/utforge/pkg/log"
)

func newPollCommand(c *cli) *cobra.Command {
	var (
		rf         requestFlags
		selectPath string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "poll METHOD URL",
		Short: "Send the request on a cron schedule",
		Long: `Send the request on a cron schedule until interrupted.

A fresh request is composed for every run, so persona and platform changes
picked up by --watch apply from the next run on. Failed runs delay the
following one with exponential backoff.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			schedule, err := app.NewCronSchedule(c.cfg.Cron)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			factory, err := c.factory(reg)
			if err != nil {
				return err
			}

			job := func(ctx context.Context) error {
				f, err := rf.forge(factory, c.cfg, args[0], args[1])
				if err != nil {
					return err
				}
				ex, err := f.Send(ctx)
				if err != nil {
					return err
				}
				c.logger.Info("poll response",
					log.String("method", ex.Request.Method),
					log.String("url", ex.Request.FullURL()),
					log.Int("status", ex.Response.StatusCode),
				)
				return printResponse(c.out, ex, selectPath)
			}

			poller, err := app.NewPoller(app.PollerConfig{
				Schedule: schedule,
				Job:      job,
				Logger:   c.logger,
			})
			if err != nil {
				return err
			}

			if c.cfg.MetricsAddr != "" {
				srv := startMetricsServer(c.cfg.MetricsAddr, reg, c.logger)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			if watch {
				if !cliconfig.FileExists(c.cfgPath) {
					c.logger.Warn("config watcher disabled: config file not found", log.String("path", c.cfgPath))
				} else {
					w := cliconfig.NewWatcher(c.cfgPath, c.settings, cliconfig.PinnedKeys(c.changed), c.logger)
					go func() {
						if err := w.Run(ctx); err != nil {
							c.logger.Error("config watcher stopped", log.Err(err))
						}
					}()
				}
			}

			if err := poller.Start(ctx); err != nil {
				return err
			}
			c.logger.Info("polling", log.String("cron", schedule.String()), log.String("url", args[1]))

			select {
			case <-ctx.Done():
				c.logger.Info("received signal, stopping...")
			case <-poller.Done():
			}
			crashed := poller.State() == app.StateCrashed
			if err := poller.Stop(); err != nil {
				return err
			}
			if crashed {
				return errors.New("poller crashed")
			}
			return nil
		},
	}
	rf.bind(cmd.Flags())
	cmd.Flags().StringVar(&selectPath, "select", "", "print only this gjson path of each JSON response")
	cmd.Flags().StringVar(&c.cfg.Cron, "cron", c.cfg.Cron, "cron expression for the poll schedule (UTC)")
	cmd.Flags().StringVar(&c.cfg.MetricsAddr, "metrics-addr", c.cfg.MetricsAddr, "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload persona and platform when the config file changes")
	return cmd
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", log.Err(err))
		}
	}()
	logger.Info("serving metrics", log.String("addr", addr))
	return srv
}
