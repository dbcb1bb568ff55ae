package forge

import (
	"fmt"
	"sync"

	"github.com/utkit/utforge/internal/domain"
)

// Settings is the persona and platform selection shared by every forge a
// factory creates. Changes apply to forges constructed afterwards; a URL
// that was already resolved against a platform stays as it is.
type Settings struct {
	mu       sync.RWMutex
	persona  domain.Persona
	platform domain.Platform
}

// NewSettings validates the initial selection.
func NewSettings(persona domain.Persona, platform domain.Platform) (*Settings, error) {
	s := &Settings{}
	if err := s.SetPersona(persona); err != nil {
		return nil, err
	}
	if err := s.SetPlatform(platform); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultSettings selects the WebApp persona on PlayStation.
func DefaultSettings() *Settings {
	return &Settings{persona: domain.WebApp, platform: domain.PlayStation}
}

// SetPersona replaces the persona. Unknown values fail with
// domain.ErrInvalidConfiguration and keep the current selection.
func (s *Settings) SetPersona(p domain.Persona) error {
	if !p.Valid() {
		return fmt.Errorf("%w: unknown persona %q", domain.ErrInvalidConfiguration, string(p))
	}
	s.mu.Lock()
	s.persona = p
	s.mu.Unlock()
	return nil
}

// SetPlatform replaces the platform. Unknown values fail with
// domain.ErrInvalidConfiguration and keep the current selection.
func (s *Settings) SetPlatform(p domain.Platform) error {
	if !p.Valid() {
		return fmt.Errorf("%w: unknown platform %q", domain.ErrInvalidConfiguration, string(p))
	}
	s.mu.Lock()
	s.platform = p
	s.mu.Unlock()
	return nil
}

// Persona returns the current persona.
func (s *Settings) Persona() domain.Persona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persona
}

// Platform returns the current platform.
func (s *Settings) Platform() domain.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platform
}
