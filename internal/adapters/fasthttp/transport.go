// Package fasthttp implements the forge transport on top of valyala/fasthttp.
package fasthttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
	"github.com/utkit/utforge/pkg/log"
)

// Transport implements ports.Transport using a fasthttp.Client.
type Transport struct {
	client *fasthttp.Client
	logger ports.Logger
}

// NewTransport creates a transport sending through client.
// A nil client gets a default one with the given timeout.
func NewTransport(client *fasthttp.Client, timeout time.Duration, logger ports.Logger) *Transport {
	if client == nil {
		client = &fasthttp.Client{
			Name:         "utforge",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Transport{client: client, logger: logger}
}

// NewRequest creates an empty request.
func (t *Transport) NewRequest(method, url string) (*domain.Request, error) {
	return domain.NewRequest(method, url)
}

// Send transmits req. The context deadline, if any, bounds the exchange,
// and cancelling ctx returns ctx.Err() without waiting for the response.
func (t *Transport) Send(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(freq)
		fasthttp.ReleaseResponse(fresp)
	}

	// keep header names exactly as composed
	freq.Header.DisableNormalizing()
	freq.Header.SetMethod(req.Method)
	freq.SetRequestURI(req.FullURL())

	for _, h := range req.Header {
		freq.Header.Set(h.Key, h.Value)
	}

	payload, contentType := req.Payload()
	if payload != nil {
		freq.SetBodyRaw(payload)
	}
	if contentType != "" && !req.Header.Has("Content-Type") {
		freq.Header.SetContentType(contentType)
	}

	done := make(chan error, 1)
	go func() {
		if deadline, ok := ctx.Deadline(); ok {
			done <- t.client.DoDeadline(freq, fresp, deadline)
			return
		}
		done <- t.client.Do(freq, fresp)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		// the exchange still owns freq and fresp
		go func() {
			<-done
			release()
		}()
		return nil, ctx.Err()
	}
	defer release()

	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	header := make(http.Header)
	fresp.Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})
	body := append([]byte(nil), fresp.Body()...)

	t.logger.Debug("response received",
		log.String("method", req.Method),
		log.String("url", req.URL),
		log.Int("status", fresp.StatusCode()),
		log.Int("bytes", len(body)),
	)

	return &domain.Response{
		StatusCode: fresp.StatusCode(),
		Header:     header,
		Body:       body,
	}, nil
}

var _ ports.Transport = (*Transport)(nil)
