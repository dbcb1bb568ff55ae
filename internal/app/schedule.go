package app

import (
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/utkit/utforge/internal/domain"
)

// Schedule yields the next time a poll is due.
type Schedule interface {
	Next(after time.Time) (time.Time, error)
}

// CronSchedule is a standard five-field cron expression evaluated in UTC.
type CronSchedule struct {
	expr string
}

// NewCronSchedule validates expr.
func NewCronSchedule(expr string) (*CronSchedule, error) {
	if !gronx.IsValid(expr) {
		return nil, fmt.Errorf("%w: invalid cron expression %q", domain.ErrInvalidConfiguration, expr)
	}
	return &CronSchedule{expr: expr}, nil
}

// Next returns the first tick strictly after after.
func (c *CronSchedule) Next(after time.Time) (time.Time, error) {
	return gronx.NextTickAfter(c.expr, after.UTC(), false)
}

// String returns the expression.
func (c *CronSchedule) String() string {
	return c.expr
}

// EverySchedule ticks at a fixed interval.
type EverySchedule time.Duration

// Next returns after plus the interval.
func (e EverySchedule) Next(after time.Time) (time.Time, error) {
	if e <= 0 {
		return time.Time{}, fmt.Errorf("%w: interval must be positive", domain.ErrInvalidConfiguration)
	}
	return after.Add(time.Duration(e)), nil
}
