package domain

import (
	"fmt"
	"strings"
)

// Persona is the client shape a request imitates.
type Persona string

const (
	// WebApp is the browser-embedded web application.
	WebApp Persona = "WebApp"
	// Mobile is the native mobile application.
	Mobile Persona = "Mobile"
)

// Valid reports whether p is one of the known personas.
func (p Persona) Valid() bool {
	return p == WebApp || p == Mobile
}

func (p Persona) String() string { return string(p) }

// ParsePersona resolves a persona name, ignoring case.
func ParsePersona(s string) (Persona, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webapp":
		return WebApp, nil
	case "mobile":
		return Mobile, nil
	}
	return "", fmt.Errorf("%w: unknown persona %q", ErrInvalidConfiguration, s)
}

// Platform is the backend target. It selects the base host.
type Platform string

const (
	// PlayStation accounts are served by the s2 host.
	PlayStation Platform = "ps"
	// Xbox accounts are served by the primary host.
	Xbox Platform = "xbox"
)

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	return p == PlayStation || p == Xbox
}

func (p Platform) String() string { return string(p) }

// ParsePlatform resolves a platform name, ignoring case.
// "playstation" is accepted as an alias of "ps".
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ps", "playstation":
		return PlayStation, nil
	case "xbox":
		return Xbox, nil
	}
	return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidConfiguration, s)
}
