package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
	"github.com/utkit/utforge/pkg/log"
)

// ShutdownTimeout is the default time Stop waits for an in-flight job.
const ShutdownTimeout = 30 * time.Second

// Job is one scheduled unit of work, typically building and sending a
// forged request.
type Job func(ctx context.Context) error

// PollerConfig configures a Poller.
type PollerConfig struct {
	Schedule Schedule
	Job      Job
	Logger   ports.Logger

	// BackoffInitial and BackoffMax bound the extra delay after failed
	// jobs. The next run waits for the later of the schedule tick and the
	// backoff delay.
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	ShutdownTimeout time.Duration
}

// Poller runs a Job on a Schedule until stopped. Runs never overlap.
type Poller struct {
	cfg       PollerConfig
	logger    ports.Logger
	lifecycle *Lifecycle
	backoff   *backoff
	now       func() time.Time

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	runs     int
	failures int
	lastErr  error
}

// NewPoller validates cfg and returns a stopped poller.
func NewPoller(cfg PollerConfig) (*Poller, error) {
	if cfg.Schedule == nil {
		return nil, errors.New("poller: schedule is required")
	}
	if cfg.Job == nil {
		return nil, errors.New("poller: job is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNoopLogger()
	}
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = DefaultBackoffInitial
	}
	if cfg.BackoffMax < cfg.BackoffInitial {
		cfg.BackoffMax = DefaultBackoffMax
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = ShutdownTimeout
	}

	return &Poller{
		cfg:       cfg,
		logger:    cfg.Logger,
		lifecycle: NewLifecycle(cfg.Logger),
		backoff:   newBackoff(cfg.BackoffInitial, cfg.BackoffMax),
		now:       time.Now,
	}, nil
}

// Start launches the poll loop. It returns immediately.
func (p *Poller) Start(ctx context.Context) error {
	if err := p.lifecycle.TransitionTo(StateStarting, "start requested"); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	if err := p.lifecycle.TransitionTo(StateRunning, "loop started"); err != nil {
		cancel()
		return err
	}

	go p.loop(loopCtx, done)
	return nil
}

// Stop cancels the loop and waits for an in-flight job, at most
// ShutdownTimeout.
func (p *Poller) Stop() error {
	state := p.lifecycle.State()
	if state == StateCrashed {
		return p.lifecycle.TransitionTo(StateStopped, "stop after crash")
	}
	if err := p.lifecycle.TransitionTo(StateStopping, "stop requested"); err != nil {
		return domain.ErrNotRunning
	}

	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	cancel()

	select {
	case <-done:
	case <-time.After(p.cfg.ShutdownTimeout):
		p.logger.Warn("shutdown timeout, forcing exit", log.Duration("timeout", p.cfg.ShutdownTimeout))
		_ = p.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
		return domain.ErrShutdownTimeout
	}
	return p.lifecycle.TransitionTo(StateStopped, "loop exited")
}

// Done is closed when the loop exits, on Stop, on context cancellation or
// on a schedule failure.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// State returns the lifecycle state.
func (p *Poller) State() State {
	return p.lifecycle.State()
}

// Stats returns the number of runs, failed runs and the last job error.
func (p *Poller) Stats() (runs, failures int, lastErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runs, p.failures, p.lastErr
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	var delay time.Duration
	for {
		now := p.now()
		next, err := p.cfg.Schedule.Next(now)
		if err != nil {
			p.logger.Error("schedule failed", log.Err(err))
			_ = p.lifecycle.TransitionTo(StateCrashed, err.Error())
			return
		}

		wait := next.Sub(now)
		if delay > wait {
			wait = delay
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		delay = p.runOnce(ctx)
	}
}

// runOnce executes the job and returns the backoff delay for the next run.
func (p *Poller) runOnce(ctx context.Context) time.Duration {
	start := p.now()
	err := p.cfg.Job(ctx)

	p.mu.Lock()
	p.runs++
	if err != nil {
		p.failures++
	}
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		delay := p.backoff.Next()
		p.logger.Warn("poll failed",
			log.Err(err),
			log.Duration("backoff", delay),
		)
		return delay
	}

	p.backoff.Reset()
	p.logger.Debug("poll succeeded", log.Duration("elapsed", p.now().Sub(start)))
	return 0
}
