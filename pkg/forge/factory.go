package forge

import (
	"github.com/utkit/utforge/internal/ports"
	"github.com/utkit/utforge/pkg/log"
)

// Factory creates forges bound to one Settings and one transport.
type Factory struct {
	settings  *Settings
	transport ports.Transport
	logger    log.Logger
}

// Option configures optional behavior of a Factory.
type Option func(*Factory)

// WithLogger sets the logger handed to every forge.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory creates a factory. A nil settings selects DefaultSettings.
func NewFactory(settings *Settings, transport ports.Transport, opts ...Option) *Factory {
	if settings == nil {
		settings = DefaultSettings()
	}
	f := &Factory{
		settings:  settings,
		transport: transport,
		logger:    log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Settings returns the selection the factory reads from.
func (f *Factory) Settings() *Settings {
	return f.settings
}

// Forge starts a request for method and url. A relative url is resolved
// against the base host of the platform selected right now. The optional
// override is the method to emulate.
func (f *Factory) Forge(method, url string, override ...string) *Forge {
	var o string
	if len(override) > 0 {
		o = override[0]
	}
	return newForge(f, method, url, o)
}
