package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/utkit/utforge/internal/cliconfig"
	"github.com/utkit/utforge/pkg/forge"
)

// requestFlags are the per-request options shared by build, send and poll.
type requestFlags struct {
	override          string
	headers           []string
	removeHeaders     []string
	noPersonaHeaders  bool
	routeFromPlatform bool
	fields            []string
	data              string
	raw               bool
}

func (r *requestFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&r.override, "override", "", "method to emulate (header for WebApp, real verb for Mobile)")
	fs.StringArrayVar(&r.headers, "header", nil, "extra header as name=value, overrides persona headers (repeatable)")
	fs.StringArrayVar(&r.removeHeaders, "remove-header", nil, "header name to strip from the final request (repeatable)")
	fs.BoolVar(&r.noPersonaHeaders, "no-persona-headers", false, "skip the persona default headers")
	fs.BoolVar(&r.routeFromPlatform, "route-from-platform", false, "derive the route header from the platform host")
	fs.StringArrayVar(&r.fields, "field", nil, "body value as path=value; path uses sjson syntax (repeatable)")
	fs.StringVar(&r.data, "data", "", "JSON body; --field values are merged into it")
	fs.BoolVar(&r.raw, "raw", false, "send the body as a JSON document instead of query or form fields")
}

// forge starts a request on factory and applies the configured credentials
// and the request flags.
func (r *requestFlags) forge(factory *forge.Factory, cfg cliconfig.Config, method, url string) (*forge.Forge, error) {
	f := factory.Forge(method, url, r.override).
		SetSessionID(cfg.SessionID).
		SetNucleusID(cfg.NucleusID).
		SetPhishingToken(cfg.PhishingToken).
		SetProofOfWorkID(cfg.PowID)

	if cfg.Route != "" {
		f.SetRoute(cfg.Route)
	}
	if r.routeFromPlatform {
		f.SetRouteFromPlatform()
	}
	if r.noPersonaHeaders {
		f.SuppressPersonaHeaders()
	}

	for _, h := range r.headers {
		name, value, err := splitPair(h)
		if err != nil {
			return nil, fmt.Errorf("--header: %w", err)
		}
		f.AddHeader(name, value)
	}
	for _, name := range r.removeHeaders {
		f.RemoveHeader(name)
	}

	body, err := r.body()
	if err != nil {
		return nil, err
	}
	if body != nil {
		f.SetBody(body, r.raw)
	}
	return f, nil
}

// body merges --data and --field into one JSON document. It returns nil
// when neither is set.
func (r *requestFlags) body() (json.RawMessage, error) {
	if r.data == "" && len(r.fields) == 0 {
		return nil, nil
	}

	doc := r.data
	if doc == "" {
		doc = "{}"
	}
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}

	for _, field := range r.fields {
		path, value, err := splitPair(field)
		if err != nil {
			return nil, fmt.Errorf("--field: %w", err)
		}
		doc, err = setField(doc, path, value)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", path, err)
		}
	}
	return json.RawMessage(doc), nil
}

// setField stores value at path. Values that parse as JSON keep their type,
// anything else is stored as a string.
func setField(doc, path, value string) (string, error) {
	if value != "" && gjson.Valid(value) {
		return sjson.SetRaw(doc, path, value)
	}
	return sjson.Set(doc, path, value)
}

func splitPair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("%q is not name=value", s)
	}
	return name, value, nil
}
