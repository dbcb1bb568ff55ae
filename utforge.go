// Package utforge composes requests for the Ultimate Team web and mobile
// API. It decides which headers a request carries, how its body is
// encoded and which method goes on the wire; an injected transport does
// the actual sending.
//
// Example usage:
//
//	settings, err := utforge.NewSettings(utforge.WebApp, utforge.PlayStation)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	factory := utforge.NewFactory(settings, utforge.NewHTTPTransport(30*time.Second, nil))
//	credits, err := factory.Forge("GET", "/ut/game/fifa/user/credits").
//	    SetSessionID(sid).
//	    JSON(ctx)
package utforge

import (
	"time"

	httpadapter "github.com/utkit/utforge/internal/adapters/http"
	"github.com/utkit/utforge/pkg/forge"
	"github.com/utkit/utforge/pkg/log"
)

type (
	// Factory creates forges bound to one Settings and one Transport.
	Factory = forge.Factory
	// Forge accumulates the overrides of one request.
	Forge = forge.Forge
	// Settings is the shared persona and platform selection.
	Settings = forge.Settings
	// Exchange is a sent request together with its response.
	Exchange = forge.Exchange
	// Option configures a Factory.
	Option = forge.Option

	Persona   = forge.Persona
	Platform  = forge.Platform
	Request   = forge.Request
	Response  = forge.Response
	Fields    = forge.Fields
	Field     = forge.Field
	Header    = forge.Header
	Transport = forge.Transport
)

const (
	WebApp      = forge.WebApp
	Mobile      = forge.Mobile
	PlayStation = forge.PlayStation
	Xbox        = forge.Xbox
)

var (
	ErrInvalidConfiguration = forge.ErrInvalidConfiguration
	ErrInvalidJSON          = forge.ErrInvalidJSON
	ErrInvalidURL           = forge.ErrInvalidURL
)

// NewSettings validates a persona and platform selection.
func NewSettings(persona Persona, platform Platform) (*Settings, error) {
	return forge.NewSettings(persona, platform)
}

// DefaultSettings selects the WebApp persona on PlayStation.
func DefaultSettings() *Settings {
	return forge.DefaultSettings()
}

// NewFactory creates a factory. A nil settings selects DefaultSettings.
func NewFactory(settings *Settings, transport Transport, opts ...Option) *Factory {
	return forge.NewFactory(settings, transport, opts...)
}

// WithLogger sets the logger used by every forge of a factory.
func WithLogger(logger log.Logger) Option {
	return forge.WithLogger(logger)
}

// NewHTTPTransport returns the default transport over net/http.
// A nil logger discards output.
func NewHTTPTransport(timeout time.Duration, logger log.Logger) Transport {
	return httpadapter.NewDefaultTransport(timeout, logger)
}

// Version is the library version.
const Version = forge.Version
