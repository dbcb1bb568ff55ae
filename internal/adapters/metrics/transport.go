// Package metrics wraps a transport with Prometheus instrumentation.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
)

// Transport decorates another ports.Transport and records request counts,
// latencies and transport errors.
type Transport struct {
	next ports.Transport

	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewTransport registers the collectors on reg and wraps next.
func NewTransport(next ports.Transport, reg prometheus.Registerer) (*Transport, error) {
	t := &Transport{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "utforge",
			Name:      "requests_total",
			Help:      "Requests sent, by transmitted method and response status code.",
		}, []string{"method", "code"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "utforge",
			Name:      "request_errors_total",
			Help:      "Requests that failed in the transport before a response arrived.",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "utforge",
			Name:      "request_duration_seconds",
			Help:      "Time from send to fully read response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{t.requests, t.errors, t.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewRequest delegates to the wrapped transport.
func (t *Transport) NewRequest(method, url string) (*domain.Request, error) {
	return t.next.NewRequest(method, url)
}

// Send delegates to the wrapped transport. Its error is returned as is.
func (t *Transport) Send(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	start := time.Now()
	resp, err := t.next.Send(ctx, req)
	t.duration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		t.errors.WithLabelValues(req.Method).Inc()
		return nil, err
	}
	t.requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

var _ ports.Transport = (*Transport)(nil)
