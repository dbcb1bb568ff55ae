package domain

import "errors"

// Domain errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidConfiguration is returned when an unknown persona or platform
	// is selected. The previous selection is left untouched.
	ErrInvalidConfiguration = errors.New("utforge: invalid configuration")

	// ErrInvalidURL is returned when a transport cannot parse a request URL.
	ErrInvalidURL = errors.New("utforge: invalid url")

	// ErrInvalidJSON is returned when a JSON projection is requested for a
	// response body that is not valid JSON.
	ErrInvalidJSON = errors.New("utforge: response is not valid json")
)

// Poller lifecycle errors.
var (
	// ErrAlreadyRunning is returned when Start is called on a running poller.
	ErrAlreadyRunning = errors.New("utforge: poller already running")

	// ErrNotRunning is returned when Stop is called on a stopped poller.
	ErrNotRunning = errors.New("utforge: poller not running")

	// ErrShutdownTimeout is returned when in-flight sends outlive the
	// shutdown timeout.
	ErrShutdownTimeout = errors.New("utforge: shutdown timeout")
)
