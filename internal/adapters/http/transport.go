package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
	"github.com/utkit/utforge/pkg/log"
)

// Transport implements ports.Transport on top of an HTTPClient.
type Transport struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewTransport creates a transport sending through client.
// A nil logger discards output.
func NewTransport(client ports.HTTPClient, logger ports.Logger) *Transport {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Transport{
		client: client,
		logger: logger,
	}
}

// NewDefaultTransport creates a transport over a fresh *http.Client with
// the given timeout.
func NewDefaultTransport(timeout time.Duration, logger ports.Logger) *Transport {
	return NewTransport(&http.Client{Timeout: timeout}, logger)
}

// NewRequest creates an empty request.
func (t *Transport) NewRequest(method, url string) (*domain.Request, error) {
	return domain.NewRequest(method, url)
}

// Send transmits req and reads the whole response body.
func (t *Transport) Send(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	payload, contentType := req.Payload()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.FullURL(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Names are written as composed; http.Header.Set would canonicalize them.
	for _, h := range req.Header {
		if h.Key == "Host" {
			hreq.Host = h.Value
			continue
		}
		hreq.Header[h.Key] = []string{h.Value}
	}
	if contentType != "" && !req.Header.Has("Content-Type") {
		hreq.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	t.logger.Debug("response received",
		log.String("method", req.Method),
		log.String("url", req.URL),
		log.Int("status", resp.StatusCode),
		log.Int("bytes", len(data)),
	)

	return &domain.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

var _ ports.Transport = (*Transport)(nil)
