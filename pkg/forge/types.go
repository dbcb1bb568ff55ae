package forge

import (
	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/ports"
)

// Re-exported so callers outside this module can name the types the forge
// works with.
type (
	Persona   = domain.Persona
	Platform  = domain.Platform
	Request   = domain.Request
	Response  = domain.Response
	Draft     = domain.Draft
	Field     = domain.Field
	Fields    = domain.Fields
	Header    = domain.Header
	Transport = ports.Transport
)

const (
	WebApp      = domain.WebApp
	Mobile      = domain.Mobile
	PlayStation = domain.PlayStation
	Xbox        = domain.Xbox
)

var (
	ErrInvalidConfiguration = domain.ErrInvalidConfiguration
	ErrInvalidJSON          = domain.ErrInvalidJSON
	ErrInvalidURL           = domain.ErrInvalidURL
)

// ParsePersona resolves a persona name, ignoring case.
func ParsePersona(s string) (Persona, error) { return domain.ParsePersona(s) }

// ParsePlatform resolves a platform name, ignoring case.
func ParsePlatform(s string) (Platform, error) { return domain.ParsePlatform(s) }
