// Package forgetest provides a recording transport for tests of code that
// sends requests through a forge.
package forgetest

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
)

// FakeTransport records every created and sent request and answers with
// queued responses, so tests run without network access.
type FakeTransport struct {
	t testing.TB

	mu        sync.Mutex
	responses []*domain.Response
	err       error
	created   []Created
	sent      []*domain.Request
}

// Created is one NewRequest call.
type Created struct {
	Method string
	URL    string
}

// NewFakeTransport returns a FakeTransport seeded with the responses that
// Send returns in order.
func NewFakeTransport(t testing.TB, responses ...*domain.Response) *FakeTransport {
	return &FakeTransport{
		t:         t,
		responses: append([]*domain.Response(nil), responses...),
	}
}

// FailWith makes every following Send return err.
func (f *FakeTransport) FailWith(err error) *FakeTransport {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	return f
}

// NewRequest records the call and returns an empty request.
func (f *FakeTransport) NewRequest(method, url string) (*domain.Request, error) {
	f.mu.Lock()
	f.created = append(f.created, Created{Method: method, URL: url})
	f.mu.Unlock()
	return domain.NewRequest(method, url)
}

// Send records req and returns the next queued response.
func (f *FakeTransport) Send(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		f.t.Fatalf("fake transport has no responses left for request %s %s", req.Method, req.URL)
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// Created returns the NewRequest calls seen so far.
func (f *FakeTransport) Created() []Created {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Created(nil), f.created...)
}

// Sent returns the requests handed to Send so far.
func (f *FakeTransport) Sent() []*domain.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Request(nil), f.sent...)
}

// NewStringResponse builds a response with the given status and body.
func NewStringResponse(status int, body string) *domain.Response {
	return &domain.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       []byte(body),
	}
}

var _ ports.Transport = (*FakeTransport)(nil)
