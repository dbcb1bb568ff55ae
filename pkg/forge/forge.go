package forge

import (
	"context"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/utkit/utforge/internal/compose"
	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/profile"
	"github.com/utkit/utforge/pkg/log"
)

var routePort = regexp.MustCompile(`:[0-9]*$`)

// Forge accumulates the overrides of one request. Builder methods return
// the same forge for chaining; they are not safe for concurrent use.
type Forge struct {
	factory  *Factory
	platform domain.Platform
	draft    domain.Draft
	err      error
}

// Exchange is a sent request together with its response.
type Exchange struct {
	Request  *domain.Request
	Response *domain.Response
}

func newForge(f *Factory, method, url, override string) *Forge {
	fg := &Forge{
		factory:  f,
		platform: f.settings.Platform(),
		draft: domain.Draft{
			Method:         normalizeMethod(method),
			MethodOverride: normalizeMethod(override),
		},
	}
	fg.draft.URL, fg.err = resolveURL(fg.platform, url)
	return fg
}

func normalizeMethod(m string) string {
	return strings.ToUpper(strings.TrimSpace(m))
}

func resolveURL(p domain.Platform, url string) (string, error) {
	if strings.HasPrefix(strings.ToLower(url), "http") {
		return url, nil
	}
	host, err := profile.BaseHost(p)
	if err != nil {
		return "", err
	}
	return host + url, nil
}

// StripPort removes a trailing ":<digits>" from a route.
func StripPort(route string) string {
	return routePort.ReplaceAllString(route, "")
}

// SetSessionID sets the session id sent as X-UT-SID.
func (f *Forge) SetSessionID(sid string) *Forge {
	f.draft.SessionID = sid
	return f
}

// SetProofOfWorkID sets the proof-of-work id sent by the Mobile persona.
func (f *Forge) SetProofOfWorkID(id string) *Forge {
	f.draft.ProofOfWorkID = id
	return f
}

// SetPhishingToken sets the anti-phishing token.
func (f *Forge) SetPhishingToken(token string) *Forge {
	f.draft.PhishingToken = token
	return f
}

// SetNucleusID sets the nucleus id.
func (f *Forge) SetNucleusID(id string) *Forge {
	f.draft.NucleusID = id
	return f
}

// SetRoute sets the route header value. A trailing port is stripped.
func (f *Forge) SetRoute(route string) *Forge {
	f.draft.Route = StripPort(route)
	return f
}

// SetRouteFromPlatform derives the route from the base host of the
// platform the forge was created with, ignoring any caller value.
func (f *Forge) SetRouteFromPlatform() *Forge {
	host, err := profile.BaseHost(f.platform)
	if err != nil {
		f.err = err
		return f
	}
	f.draft.Route = StripPort(host)
	return f
}

// SuppressPersonaHeaders skips the persona's default headers. Mandatory
// and session headers are still sent. There is no way back.
func (f *Forge) SuppressPersonaHeaders() *Forge {
	f.draft.SuppressPersonaHeaders = true
	return f
}

// SetBody sets the request body. With asRawString the whole body is sent
// as a JSON document; otherwise its top-level keys become query
// parameters for GET and form fields for any other method.
func (f *Forge) SetBody(data any, asRawString bool) *Forge {
	f.draft.Body = data
	f.draft.RawJSONBody = asRawString
	return f
}

// AddHeader sets a header that overrides any persona header of the same
// name. The last value for a name wins.
func (f *Forge) AddHeader(name, value string) *Forge {
	f.draft.AddedHeaders.Set(name, value)
	return f
}

// RemoveHeader strips name from the final request, whatever set it.
func (f *Forge) RemoveHeader(name string) *Forge {
	for _, n := range f.draft.RemovedHeaders {
		if n == name {
			return f
		}
	}
	f.draft.RemovedHeaders = append(f.draft.RemovedHeaders, name)
	return f
}

// Snapshot returns a copy of the accumulated state.
func (f *Forge) Snapshot() domain.Draft {
	return f.draft.Clone()
}

// Build materializes the request without sending it. Later builder calls
// do not affect the returned request.
func (f *Forge) Build() (*domain.Request, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := f.Snapshot()

	persona := f.factory.settings.Persona()
	prof, err := profile.For(persona)
	if err != nil {
		return nil, err
	}

	method := d.EffectiveMethod(persona)
	req, err := f.factory.transport.NewRequest(method, d.URL)
	if err != nil {
		return nil, err
	}

	skipped, err := compose.EncodeBody(req, d, method)
	if err != nil {
		return nil, err
	}
	if skipped {
		f.factory.logger.Warn("body is not a keyed collection, no fields were set",
			log.String("method", method),
			log.String("url", d.URL),
		)
	}

	compose.ComposeHeaders(req, prof, d)

	f.factory.logger.Debug("request composed",
		log.String("persona", persona.String()),
		log.String("method", req.Method),
		log.String("url", req.FullURL()),
		log.Strings("headers", req.Header.Names()),
	)
	return req, nil
}

// Send builds the request and hands it to the transport. Transport errors
// are returned unchanged.
func (f *Forge) Send(ctx context.Context) (*Exchange, error) {
	req, err := f.Build()
	if err != nil {
		return nil, err
	}
	resp, err := f.factory.transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Exchange{Request: req, Response: resp}, nil
}

// JSON sends the request and returns the decoded response body.
func (f *Forge) JSON(ctx context.Context) (gjson.Result, error) {
	ex, err := f.Send(ctx)
	if err != nil {
		return gjson.Result{}, err
	}
	return ex.Response.JSON()
}

// Body sends the request and returns the raw response body.
func (f *Forge) Body(ctx context.Context) (string, error) {
	ex, err := f.Send(ctx)
	if err != nil {
		return "", err
	}
	return ex.Response.Text(), nil
}
