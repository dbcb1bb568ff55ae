package ports

import (
	"context"

	"github.com/utkit/utforge/internal/domain"
)

// Transport is the injected HTTP client. The forge never opens
// connections itself; it asks the transport for a request object,
// decorates it and hands it back for sending.
type Transport interface {
	// NewRequest creates an empty request for method and an absolute URL.
	NewRequest(method, url string) (*domain.Request, error)

	// Send transmits req and returns the full response.
	// Non-2xx statuses are responses, not errors.
	Send(ctx context.Context, req *domain.Request) (*domain.Response, error)
}
