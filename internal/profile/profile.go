// Package profile holds the static endpoint table: which headers each
// persona sends and which host each platform talks to.
package profile

import (
	"fmt"

	"github.com/utkit/utforge/internal/domain"
)

// Rule is one header rule. Value is evaluated against the request draft;
// the rule applies only when it yields a non-empty string.
type Rule struct {
	Name string
	// Source is the literal value, or the draft attribute name in braces.
	Source string
	Value  func(d domain.Draft) string
}

// Literal returns a rule that always applies with value.
func Literal(name, value string) Rule {
	return Rule{Name: name, Source: value, Value: func(domain.Draft) string { return value }}
}

// Attribute returns a rule that reads one field of the draft.
func Attribute(name, attr string, read func(d domain.Draft) string) Rule {
	return Rule{Name: name, Source: "{" + attr + "}", Value: read}
}

// Profile is the header table of one persona.
type Profile struct {
	Persona   domain.Persona
	Mandatory []Rule
	Defaults  []Rule
}

var (
	webApp = Profile{
		Persona: domain.WebApp,
		Mandatory: []Rule{
			Literal(HeaderUserAgent, webAppUserAgent),
		},
		Defaults: []Rule{
			Literal(HeaderEmbedError, "true"),
			Literal(HeaderRequestedWith, "XMLHttpRequest"),
			Literal(HeaderContentType, contentTypeJSON),
			Literal(HeaderAccept, webAppAccept),
			Literal(HeaderReferer, webAppReferer),
			Literal(HeaderAcceptLanguage, webAppLanguage),
			Attribute(HeaderRoute, "route", func(d domain.Draft) string { return d.Route }),
			Attribute(HeaderMethodOverride, "method_override", func(d domain.Draft) string { return d.MethodOverride }),
		},
	}

	mobile = Profile{
		Persona: domain.Mobile,
		Mandatory: []Rule{
			Literal(HeaderUserAgent, mobileUserAgent),
		},
		Defaults: []Rule{
			Literal(HeaderContentType, contentTypeJSON),
			Literal(HeaderWapProfile, mobileWapProfile),
			Literal(HeaderAccept, mobileAccept),
			Attribute(HeaderPowSID, "pow_id", func(d domain.Draft) string { return d.ProofOfWorkID }),
		},
	}

	// protocol rules are evaluated for every persona and are never suppressed.
	protocol = []Rule{
		Attribute(HeaderSessionID, "sid", func(d domain.Draft) string { return d.SessionID }),
		Attribute(HeaderPhishingToken, "phishing_token", func(d domain.Draft) string { return d.PhishingToken }),
		Attribute(HeaderNucleusID, "nucleus_id", func(d domain.Draft) string { return d.NucleusID }),
	}

	baseHosts = map[domain.Platform]string{
		domain.PlayStation: "https://utas.s2.fut.ea.com",
		domain.Xbox:        "https://utas.fut.ea.com",
	}
)

// For returns the header table of persona p.
func For(p domain.Persona) (Profile, error) {
	switch p {
	case domain.WebApp:
		return webApp, nil
	case domain.Mobile:
		return mobile, nil
	}
	return Profile{}, fmt.Errorf("%w: unknown persona %q", domain.ErrInvalidConfiguration, string(p))
}

// Protocol returns the cross-persona session header rules.
func Protocol() []Rule {
	return append([]Rule(nil), protocol...)
}

// BaseHost returns the scheme and host requests for platform p are sent to.
func BaseHost(p domain.Platform) (string, error) {
	host, ok := baseHosts[p]
	if !ok {
		return "", fmt.Errorf("%w: unknown platform %q", domain.ErrInvalidConfiguration, string(p))
	}
	return host, nil
}

// Personas lists the known personas in declaration order.
func Personas() []domain.Persona {
	return []domain.Persona{domain.WebApp, domain.Mobile}
}

// Platforms lists the known platforms in declaration order.
func Platforms() []domain.Platform {
	return []domain.Platform{domain.PlayStation, domain.Xbox}
}

// Eval returns the value of r for d and whether the rule applies.
func (r Rule) Eval(d domain.Draft) (string, bool) {
	if r.Value == nil {
		return "", false
	}
	v := r.Value(d)
	return v, v != ""
}
